package entity

// QueryHTTPRequest is the body of POST /query. Field names follow the
// frontend contract.
type QueryHTTPRequest struct {
	Question     string `json:"question"`
	SystemID     string `json:"system_id"`
	ResponseType string `json:"response_type,omitempty"`
	IsNewBlock   bool   `json:"is_new_block,omitempty"`
	IsInSyllabus bool   `json:"is_in_syllabus,omitempty"`
}

// QueryHTTPResponse is the body of a successful POST /query. Image and
// Videos are present only for the diagram and youtube answer variants.
type QueryHTTPResponse struct {
	Status       string  `json:"status"`
	SystemID     string  `json:"system_id"`
	Question     string  `json:"question"`
	Answer       string  `json:"answer"`
	Image        string  `json:"image,omitempty"`
	Videos       []Video `json:"videos,omitempty"`
	IsInSyllabus bool    `json:"is_in_syllabus"`
	ResponseType string  `json:"response_type,omitempty"`
}

// ResetContextRequest is the body of POST /reset-context.
type ResetContextRequest struct {
	SystemID string `json:"system_id"`
}

// SystemStatusDTO is one entry of GET /systems.
type SystemStatusDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsSetup     bool   `json:"is_setup"`
}

// SystemsResponse is the body of GET /systems.
type SystemsResponse struct {
	Status  string            `json:"status"`
	Systems []SystemStatusDTO `json:"systems"`
}

// ChatMessage is one turn of the history supplied to quiz generation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateQuizRequest is the body of POST /generate-quiz.
type GenerateQuizRequest struct {
	ChatHistory []ChatMessage `json:"chat_history"`
}

// GenerateQuizResponse is the body of a successful POST /generate-quiz.
type GenerateQuizResponse struct {
	Status  string         `json:"status"`
	Quizzes []QuizQuestion `json:"quizzes"`
}

// VideoSearchRequest is the body of POST /youtube-search.
type VideoSearchRequest struct {
	Query string `json:"query"`
}

// VideoSearchResponse is the body of a successful POST /youtube-search.
type VideoSearchResponse struct {
	Videos []Video `json:"videos"`
}

// TopDoubtsResponse is the body of GET /get-top-doubts.
type TopDoubtsResponse struct {
	Status      string `json:"status"`
	Suggestions string `json:"suggestions"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
