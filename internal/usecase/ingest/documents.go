package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

// Supported document extensions. PDF goes through the external extraction
// service; TXT and DOCX are handled locally.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".txt":  true,
	".docx": true,
}

// discoverDocuments lists the tenant's supported documents in lexical
// order, which fixes the document-discovery order across ingestion runs.
func (uc *Usecase) discoverDocuments(tenant entity.Tenant) ([]string, error) {
	entries, err := os.ReadDir(tenant.DocumentsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			docs = append(docs, filepath.Join(tenant.DocumentsDir, entry.Name()))
		}
	}
	return docs, nil
}

func (uc *Usecase) loadDocument(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return uc.extractor.ExtractText(ctx, path)
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".docx":
		return extractDocx(path)
	default:
		return "", fmt.Errorf("unsupported document type: %s", path)
	}
}

// extractDocx pulls paragraph text out of a DOCX file, separating
// paragraphs with blank lines so the chunker sees its usual input shape.
func extractDocx(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		for _, run := range para.Runs() {
			sb.WriteString(run.Text())
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
