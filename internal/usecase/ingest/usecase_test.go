package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) ExtractText(_ context.Context, path string) (string, error) {
	text, ok := f.texts[filepath.Base(path)]
	if !ok {
		return "", fmt.Errorf("no canned text for %s", path)
	}
	return text, nil
}

type fakeEmbedder struct {
	calls [][]string
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls = append(f.calls, texts)
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = []float32{float32(len(text)), float32(i)}
	}
	return vectors, nil
}

type failingEmbedder struct{}

func (failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding service down")
}

func newTestSetup(t *testing.T) (config.Tenants, entity.Tenant, *repository.ArtifactStore) {
	t.Helper()
	base := t.TempDir()
	tenant := entity.Tenant{
		ID:           "7th",
		Name:         "Class 7 Study Materials",
		DocumentsDir: filepath.Join(base, "documents"),
		IndexDir:     filepath.Join(base, "processed", "index"),
	}
	require.NoError(t, os.MkdirAll(tenant.DocumentsDir, 0o755))
	return config.Tenants{tenant.ID: tenant}, tenant, repository.NewArtifactStore(zap.NewNop())
}

func writeDoc(t *testing.T, tenant entity.Tenant, name, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(tenant.DocumentsDir, name), []byte(text), 0o644))
}

func TestIngestBuildsAlignedArtifacts(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	writeDoc(t, tenant, "b.txt", "second doc paragraph")
	writeDoc(t, tenant, "a.txt", "first doc paragraph")

	embedder := &fakeEmbedder{}
	uc := NewUsecase(tenants, &fakeExtractor{}, embedder, store, 100, zap.NewNop())

	report, err := uc.Ingest(context.Background(), tenant.ID)
	require.NoError(t, err)

	assert.Equal(t, tenant.ID, report.TenantID)
	assert.Equal(t, 2, report.DocumentCount)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Dimension)

	artifacts, err := store.Load(tenant)
	require.NoError(t, err)
	assert.Equal(t, report.ChunkCount, len(artifacts.Chunks))
	assert.Equal(t, report.ChunkCount, artifacts.Index.Len())

	// Lexical discovery order: a.txt before b.txt.
	assert.Contains(t, artifacts.Chunks[0], "first doc")
}

func TestIngestUnknownTenant(t *testing.T) {
	tenants, _, store := newTestSetup(t)
	uc := NewUsecase(tenants, &fakeExtractor{}, &fakeEmbedder{}, store, 100, zap.NewNop())

	_, err := uc.Ingest(context.Background(), "unknown")
	assert.ErrorIs(t, err, entity.ErrUnknownTenant)
}

func TestIngestNoDocuments(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	uc := NewUsecase(tenants, &fakeExtractor{}, &fakeEmbedder{}, store, 100, zap.NewNop())

	_, err := uc.Ingest(context.Background(), tenant.ID)
	assert.ErrorIs(t, err, entity.ErrNoDocuments)
	assert.False(t, store.IsIngested(tenant))
}

func TestIngestMissingDocumentsDir(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	require.NoError(t, os.RemoveAll(tenant.DocumentsDir))

	uc := NewUsecase(tenants, &fakeExtractor{}, &fakeEmbedder{}, store, 100, zap.NewNop())

	_, err := uc.Ingest(context.Background(), tenant.ID)
	assert.ErrorIs(t, err, entity.ErrNoDocuments)
}

func TestIngestIgnoresUnsupportedFiles(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	writeDoc(t, tenant, "notes.txt", "supported text")
	writeDoc(t, tenant, "image.png", "binary junk")
	writeDoc(t, tenant, "README", "no extension")

	uc := NewUsecase(tenants, &fakeExtractor{}, &fakeEmbedder{}, store, 100, zap.NewNop())

	report, err := uc.Ingest(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentCount)
}

func TestIngestUsesExtractorForPDF(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	writeDoc(t, tenant, "book.pdf", "%PDF-raw-bytes")

	extractor := &fakeExtractor{texts: map[string]string{
		"book.pdf": "extracted paragraph one\n\nextracted paragraph two",
	}}
	uc := NewUsecase(tenants, extractor, &fakeEmbedder{}, store, 100, zap.NewNop())

	report, err := uc.Ingest(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentCount)

	artifacts, err := store.Load(tenant)
	require.NoError(t, err)
	assert.Contains(t, artifacts.Chunks[0], "extracted paragraph one")
}

func TestIngestEmbeddingFailureLeavesNothing(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	writeDoc(t, tenant, "a.txt", "some text")

	uc := NewUsecase(tenants, &fakeExtractor{}, failingEmbedder{}, store, 100, zap.NewNop())

	_, err := uc.Ingest(context.Background(), tenant.ID)
	assert.Error(t, err)
	assert.False(t, store.IsIngested(tenant))
}

func TestIngestIsFullReplacement(t *testing.T) {
	tenants, tenant, store := newTestSetup(t)
	writeDoc(t, tenant, "a.txt", "original corpus text")

	uc := NewUsecase(tenants, &fakeExtractor{}, &fakeEmbedder{}, store, 100, zap.NewNop())

	_, err := uc.Ingest(context.Background(), tenant.ID)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(tenant.DocumentsDir, "a.txt")))
	writeDoc(t, tenant, "b.txt", "replacement corpus text")

	report, err := uc.Ingest(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentCount)

	artifacts, err := store.Load(tenant)
	require.NoError(t, err)
	require.Len(t, artifacts.Chunks, 1)
	assert.Contains(t, artifacts.Chunks[0], "replacement")
}

var _ ArtifactStore = (*repository.ArtifactStore)(nil)
