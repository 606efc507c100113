// Package conversation keeps per-tenant question-block state for the
// lifetime of the process. Records are created lazily, reset explicitly and
// never expire.
package conversation

import (
	"sync"

	"github.com/edurag/tutor-backend/internal/entity"
)

// Store maps tenant id to its conversation context. Each record is guarded
// by its own mutex so concurrent requests for one tenant serialize their
// read-modify-write without blocking other tenants.
type Store struct {
	mu      sync.Mutex
	records map[string]*record
}

type record struct {
	mu  sync.Mutex
	ctx entity.ConversationContext
}

func NewStore() *Store {
	return &Store{records: make(map[string]*record)}
}

// Update performs the per-request bookkeeping: lookup-or-create the
// tenant's record, start a fresh block when requested (clearing the
// question block and overwriting the syllabus flag), then append the
// question. It returns a snapshot of the record after mutation.
func (s *Store) Update(tenantID, question string, newBlock, inSyllabus bool) entity.ConversationContext {
	rec := s.lookupOrCreate(tenantID)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if newBlock {
		rec.ctx.QuestionBlock = nil
		rec.ctx.IsInSyllabus = inSyllabus
	}
	rec.ctx.QuestionBlock = append(rec.ctx.QuestionBlock, question)

	return snapshot(rec.ctx)
}

// Get returns a snapshot of the tenant's context, if one exists.
func (s *Store) Get(tenantID string) (entity.ConversationContext, bool) {
	s.mu.Lock()
	rec, ok := s.records[tenantID]
	s.mu.Unlock()
	if !ok {
		return entity.ConversationContext{}, false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return snapshot(rec.ctx), true
}

// Reset drops the tenant's context. Resetting an unknown tenant is a no-op.
func (s *Store) Reset(tenantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, tenantID)
}

func (s *Store) lookupOrCreate(tenantID string) *record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[tenantID]
	if !ok {
		rec = &record{}
		s.records[tenantID] = rec
	}
	return rec
}

func snapshot(ctx entity.ConversationContext) entity.ConversationContext {
	block := make([]string, len(ctx.QuestionBlock))
	copy(block, ctx.QuestionBlock)
	return entity.ConversationContext{
		IsInSyllabus:  ctx.IsInSyllabus,
		QuestionBlock: block,
	}
}
