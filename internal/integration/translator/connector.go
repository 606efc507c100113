package translator

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

// Connector is the language bridge. Failures here are always non-fatal to
// the caller: the orchestrator falls back to identity translation.
type Connector struct {
	config    config.TranslatorConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.TranslatorConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.Retry, logger),
		config:    cfg,
		logger:    logger,
	}
}

// DetectAndTranslate detects the source language and returns the English
// rendition together with the detected language code.
func (c *Connector) DetectAndTranslate(ctx context.Context, text string) (string, string, error) {
	ctxzap.Debug(ctx, "detecting language", zap.Int("text_length", len(text)))

	var resp entity.DetectTranslateResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.DetectEndpoint,
		&entity.DetectTranslateRequest{Text: text}, &resp)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", entity.ErrTranslationFailed, err)
	}
	if resp.Lang == "" {
		resp.Lang = "en"
	}

	ctxzap.Debug(ctx, "language detected", zap.String("lang", resp.Lang))
	return resp.Text, resp.Lang, nil
}

// TranslateTo translates text into the target language.
func (c *Connector) TranslateTo(ctx context.Context, text, targetLang string) (string, error) {
	var resp entity.TranslateResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.TranslateEndpoint,
		&entity.TranslateRequest{Text: text, TargetLang: targetLang}, &resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrTranslationFailed, err)
	}
	return resp.Text, nil
}
