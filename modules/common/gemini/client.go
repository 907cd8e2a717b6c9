package gemini

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/config"
)

// Client - google.golang.org/genai 기반 공용 클라이언트.
// The one upstream credential handle for the whole session; constructed
// once and treated as immutable afterwards.
type Client struct {
	genaiClient *genai.Client
	httpClient  *http.Client
	cfg         *config.Config
}

// NewClient - Genai 클라이언트 초기화
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genai client: %w", err)
	}

	log.Println("✅ Genai client initialized")
	return &Client{
		genaiClient: genaiClient,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		cfg: cfg,
	}, nil
}

// GenerateWithParts - 이미지 편집/합성 요청 (다중 parts)
func (c *Client) GenerateWithParts(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
	content := &genai.Content{Parts: parts}

	genConfig := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if aspectRatio != "" {
		genConfig.ImageConfig = &genai.ImageConfig{
			AspectRatio: aspectRatio,
		}
	}

	log.Printf("📤 Sending request to Gemini API (model: %s, parts: %d, aspect-ratio: %s)",
		c.cfg.GeminiImageModel, len(parts), aspectRatio)

	result, err := c.genaiClient.Models.GenerateContent(
		ctx,
		c.cfg.GeminiImageModel,
		[]*genai.Content{content},
		genConfig,
	)
	if err != nil {
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	return result, nil
}

// GenerateImages - 텍스트 기반 이미지 생성 (Imagen)
func (c *Client) GenerateImages(ctx context.Context, prompt string, aspectRatio string, outputMIMEType string) (*genai.GenerateImagesResponse, error) {
	log.Printf("🎨 Calling image synthesis (aspect-ratio: %s, format: %s)", aspectRatio, outputMIMEType)

	result, err := c.genaiClient.Models.GenerateImages(
		ctx,
		c.cfg.GeminiImageModel,
		prompt,
		&genai.GenerateImagesConfig{
			NumberOfImages: 1,
			AspectRatio:    aspectRatio,
			OutputMIMEType: outputMIMEType,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("image synthesis call failed: %w", err)
	}

	return result, nil
}

// Translate - 텍스트 번역 (텍스트 모델 사용)
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	prompt := fmt.Sprintf(
		"Translate the following text from %s to %s. Return only the translated text, nothing else.\n\n%s",
		sourceLang, targetLang, text,
	)

	result, err := c.genaiClient.Models.GenerateContent(
		ctx,
		c.cfg.GeminiTextModel,
		[]*genai.Content{{Parts: []*genai.Part{genai.NewPartFromText(prompt)}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("translation call failed: %w", err)
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				return strings.TrimSpace(part.Text), nil
			}
		}
	}

	return "", fmt.Errorf("no text in translation response")
}

// GenerateVideos - 비디오 생성 작업 제출
func (c *Client) GenerateVideos(ctx context.Context, prompt string, image *genai.Image, aspectRatio string, resolution string) (*genai.GenerateVideosOperation, error) {
	log.Printf("🎬 Submitting video job (model: %s, aspect-ratio: %s, resolution: %s)",
		c.cfg.GeminiVideoModel, aspectRatio, resolution)

	op, err := c.genaiClient.Models.GenerateVideos(
		ctx,
		c.cfg.GeminiVideoModel,
		prompt,
		image,
		&genai.GenerateVideosConfig{
			NumberOfVideos: 1,
			AspectRatio:    aspectRatio,
			Resolution:     resolution,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("video job submission failed: %w", err)
	}

	return op, nil
}

// PollVideos - 비디오 작업 상태 조회
func (c *Client) PollVideos(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	refreshed, err := c.genaiClient.Operations.GetVideosOperation(ctx, op, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to poll video operation: %w", err)
	}
	return refreshed, nil
}

// FetchBytes - 생성된 미디어 바이너리 다운로드 (인증 포함).
// Returns the HTTP status code so callers can classify non-2xx responses.
func (c *Client) FetchBytes(ctx context.Context, uri string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.cfg.GeminiAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read media data: %w", err)
	}

	log.Printf("✅ Media downloaded successfully: %d bytes", len(data))
	return data, resp.StatusCode, nil
}
