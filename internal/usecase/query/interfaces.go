package query

import (
	"context"

	"github.com/edurag/tutor-backend/internal/entity"
)

// Generator is the generative text/image service. The core treats it as an
// opaque prompt-in/text-out oracle.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Translator is the language bridge around the English-only core.
type Translator interface {
	DetectAndTranslate(ctx context.Context, text string) (translated, lang string, err error)
	TranslateTo(ctx context.Context, text, targetLang string) (string, error)
}

// Retriever returns the chunks nearest to a query for a tenant.
type Retriever interface {
	Retrieve(ctx context.Context, tenantID, query string, k int) ([]string, error)
}

// VideoSearcher finds videos for a query through the external provider.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]entity.Video, error)
}

// ContextStore is the per-tenant conversation memory.
type ContextStore interface {
	Update(tenantID, question string, newBlock, inSyllabus bool) entity.ConversationContext
	Reset(tenantID string)
}

// IngestChecker reports whether a tenant has a persisted corpus.
type IngestChecker interface {
	IsIngested(tenant entity.Tenant) bool
}
