package videosearch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/edurag/tutor-backend/internal/config"
	"github.com/edurag/tutor-backend/internal/entity"
	"github.com/edurag/tutor-backend/internal/integration/common"
	pkghttp "github.com/edurag/tutor-backend/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector queries the external video-search provider (YouTube Data API
// shape).
type Connector struct {
	config    config.VideoSearchConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.VideoSearchConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, cfg.Retry, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search returns videos matching the query.
func (c *Connector) Search(ctx context.Context, query string) ([]entity.Video, error) {
	ctxzap.Info(ctx, "searching videos", zap.String("query", query))

	var resp entity.VideoSearchAPIResponse
	err := c.connector.DoRequest(ctx, http.MethodGet, c.config.SearchEndpoint, nil, &resp,
		pkghttp.WithQueryParam("part", "snippet"),
		pkghttp.WithQueryParam("type", "video"),
		pkghttp.WithQueryParam("maxResults", strconv.Itoa(c.config.MaxResults)),
		pkghttp.WithQueryParam("q", query),
		pkghttp.WithQueryParam("key", c.config.Token),
	)
	if err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}

	videos := make([]entity.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, entity.Video{
			ID:          item.ID.VideoID,
			Title:       item.Snippet.Title,
			URL:         "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Thumbnail:   item.Snippet.Thumbnails.High.URL,
			Channel:     item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
		})
	}

	ctxzap.Info(ctx, "videos found", zap.Int("count", len(videos)))
	return videos, nil
}
