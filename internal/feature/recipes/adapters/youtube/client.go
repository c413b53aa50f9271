// Package youtube はYouTube Data APIを使用した動画検索クライアントを提供します。
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	analysisusecase "fridge_backend/internal/feature/analysis/usecase"
	"fridge_backend/internal/feature/recipes/domain/entity"
)

// DefaultBaseURL はYouTube Data API v3のエンドポイントです。
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ErrAPIKeyMissing はAPIキーが設定されていないことを示します。
var ErrAPIKeyMissing = errors.New("youtube api key is not configured")

// Config はYouTube検索クライアントの設定です。
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LoadConfig は環境変数からYouTube検索の設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		APIKey:  os.Getenv("YOUTUBE_API_KEY"),
		BaseURL: os.Getenv("YOUTUBE_BASE_URL"),
		Timeout: 10 * time.Second,
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

// Client はYouTube Data APIの検索クライアントです。
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// ClientがVideoSearcherを実装していることをコンパイル時に検証します。
var _ analysisusecase.VideoSearcher = (*Client)(nil)

// NewClient はClientの新しいインスタンスを生成します。
func NewClient(cfg Config, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, httpClient: httpClient}
}

// searchResponse はYouTube Data APIの検索応答のうち必要な部分です。
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search はクエリに一致する動画を最大maxResults件返します。
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]entity.Video, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}
	if maxResults <= 0 {
		maxResults = 2
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build youtube request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube API returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode youtube response: %w", err)
	}

	videos := make([]entity.Video, 0, len(body.Items))
	for _, item := range body.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, entity.Video{
			Title:     item.Snippet.Title,
			VideoID:   item.ID.VideoID,
			URL:       "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Channel:   item.Snippet.ChannelTitle,
			Thumbnail: item.Snippet.Thumbnails.Medium.URL,
		})
	}
	return videos, nil
}
