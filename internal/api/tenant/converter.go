package tenant

import "github.com/edurag/tutor-backend/internal/entity"

// toSystemsResponse converts tenant statuses to the wire shape.
func toSystemsResponse(statuses []entity.TenantStatus) entity.SystemsResponse {
	systems := make([]entity.SystemStatusDTO, 0, len(statuses))
	for _, s := range statuses {
		systems = append(systems, entity.SystemStatusDTO{
			ID:          s.Tenant.ID,
			Name:        s.Tenant.Name,
			Description: s.Tenant.Description,
			IsSetup:     s.IsSetup,
		})
	}
	return entity.SystemsResponse{
		Status:  "success",
		Systems: systems,
	}
}
