package entity

// Tenant is one configured study-materials corpus (for example a grade
// level). Tenants are defined in the registry file at deployment time and
// never created or destroyed by the running process.
type Tenant struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DocumentsDir string `json:"documents_dir"`
	IndexDir     string `json:"index_dir"`
}

// TenantStatus pairs a tenant with its ingestion state.
type TenantStatus struct {
	Tenant  Tenant
	IsSetup bool
}

// ResponseMode selects the prompt template and result shape for a query.
type ResponseMode string

const (
	ModeMath      ResponseMode = "math"
	ModeYoutube   ResponseMode = "youtube"
	ModeDiagram   ResponseMode = "diagram"
	ModeExplain   ResponseMode = "explain"
	ModeExample   ResponseMode = "example"
	ModeOneMark   ResponseMode = "1M"
	ModeTwoMark   ResponseMode = "2M"
	ModeFourMark  ResponseMode = "4M"
	ModeReasoning ResponseMode = "reasoning"
)

// ConversationContext is the per-tenant short-term memory of recent
// questions within the current question block.
type ConversationContext struct {
	IsInSyllabus  bool
	QuestionBlock []string
}

// QueryRequest is the orchestrator input for a single question.
type QueryRequest struct {
	TenantID     string
	Question     string
	ResponseMode ResponseMode
	IsNewBlock   bool
	IsInSyllabus bool
}

// QueryResult is the orchestrator output: the answer payload plus the
// context flags echoed back to the caller.
type QueryResult struct {
	TenantID     string
	Question     string
	ResponseMode ResponseMode
	Answer       Answer
	IsInSyllabus bool
}

// Video is one entry returned by the external video-search provider or
// emitted by the generator in youtube mode. Only Title and URL are filled
// on the generator path.
type Video struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Channel     string `json:"channelTitle,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// Document is one source file discovered during ingestion. The content is
// extracted text; documents are not retained after chunking.
type Document struct {
	Path string
	Text string
}

// IngestReport summarizes one ingestion run for operator feedback.
type IngestReport struct {
	RunID         string
	TenantID      string
	DocumentCount int
	ChunkCount    int
	Dimension     int
}
