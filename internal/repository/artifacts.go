// Package repository persists per-tenant retrieval artifacts as flat files:
// the chunk store, the embedding sequence and the vector index. A tenant is
// considered ingested iff its index file exists.
package repository

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/rag"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	chunksFileName     = "chunks.txt"
	embeddingsFileName = "embeddings.bin"
	indexFileName      = "index.bin"

	// ChunkDelimiter joins chunks in the chunk store interchange file.
	ChunkDelimiter = "\n---CHUNK---\n"

	cacheTTL     = 15 * time.Minute
	cacheCleanup = 30 * time.Minute
)

// Artifacts is the loaded pair of chunk store and vector index. The two are
// written and replaced together; positions in Chunks align with positions
// in Index.
type Artifacts struct {
	Chunks []string
	Index  *rag.FlatIndex
}

// ArtifactStore reads and writes tenant artifacts. Loads are cached keyed
// by the index file's modification time, so a successful re-ingestion is
// picked up on the next load without an explicit invalidation call.
type ArtifactStore struct {
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewArtifactStore creates an ArtifactStore.
func NewArtifactStore(logger *zap.Logger) *ArtifactStore {
	return &ArtifactStore{
		cache:  gocache.New(cacheTTL, cacheCleanup),
		logger: logger,
	}
}

// IsIngested reports whether the tenant has a persisted index.
func (s *ArtifactStore) IsIngested(tenant entity.Tenant) bool {
	_, err := os.Stat(filepath.Join(tenant.IndexDir, indexFileName))
	return err == nil
}

// Save writes the chunk store, embedding sequence and index into a fresh
// staging directory and renames it over the previous state, so the three
// artifacts are always replaced together and never merged with prior state.
func (s *ArtifactStore) Save(tenant entity.Tenant, chunks []string, embeddings [][]float32, index *rag.FlatIndex) error {
	if len(chunks) != len(embeddings) || index.Len() != len(chunks) {
		return fmt.Errorf("artifact cardinality mismatch: %d chunks, %d embeddings, %d indexed",
			len(chunks), len(embeddings), index.Len())
	}

	parent := filepath.Dir(tenant.IndexDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, ".staging-*")
	if err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	if err := writeChunkFile(filepath.Join(staging, chunksFileName), chunks); err != nil {
		return fmt.Errorf("write chunk store: %w", err)
	}
	if err := writeEmbeddingsFile(filepath.Join(staging, embeddingsFileName), embeddings); err != nil {
		return fmt.Errorf("write embedding store: %w", err)
	}
	if err := writeIndexFile(filepath.Join(staging, indexFileName), index); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	if err := os.RemoveAll(tenant.IndexDir); err != nil {
		return fmt.Errorf("remove previous artifacts: %w", err)
	}
	if err := os.Rename(staging, tenant.IndexDir); err != nil {
		return fmt.Errorf("install artifacts: %w", err)
	}

	s.cache.Delete(tenant.ID)
	s.logger.Info("tenant artifacts persisted",
		zap.String("tenant_id", tenant.ID),
		zap.Int("chunk_count", len(chunks)),
		zap.Int("dimension", index.Dimension()),
	)
	return nil
}

// Load returns the tenant's chunk store and index, reading from the cache
// when the index file has not changed since the cached load. Returns
// entity.ErrNotIngested when no index has been persisted.
func (s *ArtifactStore) Load(tenant entity.Tenant) (*Artifacts, error) {
	indexPath := filepath.Join(tenant.IndexDir, indexFileName)
	info, err := os.Stat(indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entity.ErrNotIngested, tenant.ID)
		}
		return nil, fmt.Errorf("stat index: %w", err)
	}

	if cached, ok := s.cache.Get(tenant.ID); ok {
		entry := cached.(*cachedArtifacts)
		if entry.modTime.Equal(info.ModTime()) {
			return entry.artifacts, nil
		}
		s.cache.Delete(tenant.ID)
	}

	chunks, err := readChunkFile(filepath.Join(tenant.IndexDir, chunksFileName))
	if err != nil {
		return nil, fmt.Errorf("read chunk store: %w", err)
	}

	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	index, err := rag.ReadFlatIndex(f)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if index.Len() != len(chunks) {
		return nil, fmt.Errorf("index cardinality %d does not match chunk store %d for tenant %s",
			index.Len(), len(chunks), tenant.ID)
	}

	artifacts := &Artifacts{Chunks: chunks, Index: index}
	s.cache.Set(tenant.ID, &cachedArtifacts{artifacts: artifacts, modTime: info.ModTime()}, gocache.DefaultExpiration)
	return artifacts, nil
}

// ReadEmbeddings loads the persisted embedding sequence. Used by the
// operator CLI for corpus inspection; the query path only needs the index.
func (s *ArtifactStore) ReadEmbeddings(tenant entity.Tenant) ([][]float32, error) {
	return readEmbeddingsFile(filepath.Join(tenant.IndexDir, embeddingsFileName))
}

type cachedArtifacts struct {
	artifacts *Artifacts
	modTime   time.Time
}

func writeChunkFile(path string, chunks []string) error {
	return os.WriteFile(path, []byte(strings.Join(chunks, ChunkDelimiter)), 0o644)
}

func readChunkFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var chunks []string
	for _, raw := range strings.Split(string(data), ChunkDelimiter) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
	}
	return chunks, nil
}

func writeIndexFile(path string, index *rag.FlatIndex) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := index.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeEmbeddingsFile(path string, embeddings [][]float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)

	dim := 0
	if len(embeddings) > 0 {
		dim = len(embeddings[0])
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(dim)); err != nil {
		f.Close()
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(embeddings))); err != nil {
		f.Close()
		return err
	}
	for _, v := range embeddings {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			f.Close()
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readEmbeddingsFile(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br := bufio.NewReader(f)

	var dim, count uint32
	if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read embedding dimension: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read embedding count: %w", err)
	}

	embeddings := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		v := make([]float32, dim)
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("read embedding %d: %w", i, err)
		}
		embeddings = append(embeddings, v)
	}
	return embeddings, nil
}
