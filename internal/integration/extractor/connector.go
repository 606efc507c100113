package extractor

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/integration/common"
	pkghttp "github.com/edurag/tutor-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector uploads a PDF to the external text-extraction service and
// returns the extracted text. Extraction is an opaque document-to-text
// function to the ingestion pipeline.
type Connector struct {
	config    config.ExtractorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ExtractorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.Retry, logger),
		config:    cfg,
		logger:    logger,
	}
}

// ExtractText sends the file at path as multipart/form-data.
func (c *Connector) ExtractText(ctx context.Context, path string) (string, error) {
	ctxzap.Info(ctx, "extracting text from document", zap.String("file", filepath.Base(path)))

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	prepareBody := func(writer *multipart.Writer) error {
		part, err := writer.CreateFormFile("file", filepath.Base(path))
		if err != nil {
			return fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(content); err != nil {
			return fmt.Errorf("write file content: %w", err)
		}
		return nil
	}

	var resp entity.ExtractTextResponse
	err = c.connector.DoMultipartRequest(ctx, http.MethodPost, c.config.ExtractEndpoint, prepareBody, &resp)
	if err != nil {
		ctxzap.Error(ctx, "failed to extract text", zap.Error(err))
		return "", err
	}

	ctxzap.Info(ctx, "text extracted", zap.Int("text_length", len(resp.Text)))
	return resp.Text, nil
}
