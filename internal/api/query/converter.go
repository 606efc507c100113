package query

import "github.com/edurag/tutor-backend/internal/entity"

// toQueryRequest maps the wire request to the orchestrator request.
func toQueryRequest(req *entity.QueryHTTPRequest) entity.QueryRequest {
	return entity.QueryRequest{
		TenantID:     req.SystemID,
		Question:     req.Question,
		ResponseMode: entity.ResponseMode(req.ResponseType),
		IsNewBlock:   req.IsNewBlock,
		IsInSyllabus: req.IsInSyllabus,
	}
}

// toQueryResponse maps the orchestrator result to the wire shape. The answer
// variant decides which optional fields appear.
func toQueryResponse(result *entity.QueryResult) entity.QueryHTTPResponse {
	resp := entity.QueryHTTPResponse{
		Status:       "success",
		SystemID:     result.TenantID,
		Question:     result.Question,
		Answer:       result.Answer.Text,
		IsInSyllabus: result.IsInSyllabus,
		ResponseType: string(result.ResponseMode),
	}

	switch result.Answer.Kind {
	case entity.AnswerKindWithImage:
		resp.Image = result.Answer.ImageBase64
	case entity.AnswerKindWithVideos:
		resp.Videos = result.Answer.Videos
	}
	return resp
}
