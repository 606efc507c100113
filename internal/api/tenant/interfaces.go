package tenant

import "github.com/edurag/tutor-backend/internal/entity"

// StatusUsecase reports configured tenants with their ingestion state.
type StatusUsecase interface {
	Status() []entity.TenantStatus
}
