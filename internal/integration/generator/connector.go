package generator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/integration/common"
	pkghttp "github.com/edurag/tutor-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the generative text/image service. The service is an
// opaque prompt-in/text-out oracle to the core.
type Connector struct {
	config    config.GeneratorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GeneratorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.Retry, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Generate produces text for a prompt.
func (c *Connector) Generate(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "generating text", zap.Int("prompt_length", len(prompt)))

	var resp entity.GenerateResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint,
		&entity.GenerateRequest{Prompt: prompt}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("%w: empty generation result", entity.ErrGenerationFailed)
	}

	ctxzap.Debug(ctx, "text generated", zap.Int("result_length", len(resp.Text)))
	return resp.Text, nil
}

// GenerateImage produces a base64-encoded image for a prompt.
func (c *Connector) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctxzap.Debug(ctx, "generating image", zap.Int("prompt_length", len(prompt)))

	var resp entity.GenerateImageResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateImageEndpoint,
		&entity.GenerateImageRequest{Prompt: prompt}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}
	if resp.ImageBase64 == "" {
		return "", fmt.Errorf("%w: no image generated", entity.ErrGenerationFailed)
	}

	ctxzap.Debug(ctx, "image generated", zap.Int("payload_length", len(resp.ImageBase64)))
	return resp.ImageBase64, nil
}
