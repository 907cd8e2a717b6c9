package imagegen

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/gateway"
)

func TestEditImages(t *testing.T) {
	ctx := context.Background()

	t.Run("returns first plausible inline image as data URI", func(t *testing.T) {
		payload := make([]byte, minImageBytes+100)
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return inlineImageResponse(payload, "image/png"), nil
			},
		}
		svc := NewService(model, nil, nil)

		uri, err := svc.EditImages(ctx, []Part{
			ImagePart([]byte("img-a"), "image/png"),
			ImagePart([]byte("img-b"), "image/jpeg"),
			TextPart("combine these"),
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

		// parts 순서 보존 확인: image, image, text
		require.Len(t, model.lastParts, 3)
		assert.NotNil(t, model.lastParts[0].InlineData)
		assert.NotNil(t, model.lastParts[1].InlineData)
		assert.Equal(t, "combine these", model.lastParts[2].Text)
	})

	t.Run("skips degenerate payloads below the threshold", func(t *testing.T) {
		big := make([]byte, minImageBytes*2)
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{
					Candidates: []*genai.Candidate{
						{
							Content: &genai.Content{
								Parts: []*genai.Part{
									{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("tiny")}},
									{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: big}},
								},
							},
						},
					},
				}, nil
			},
		}
		svc := NewService(model, nil, nil)

		uri, err := svc.EditImages(ctx, []Part{TextPart("p")})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/jpeg;base64,"))
	})

	t.Run("blocked prompt surfaces GenerationBlockedError", func(t *testing.T) {
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{
					PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
						BlockReason:        genai.BlockedReasonSafety,
						BlockReasonMessage: "unsafe content",
					},
				}, nil
			},
		}
		svc := NewService(model, nil, nil)

		_, err := svc.EditImages(ctx, []Part{TextPart("p")})

		var blocked *GenerationBlockedError
		require.ErrorAs(t, err, &blocked)
		assert.Equal(t, "unsafe content", blocked.Reason)
	})

	t.Run("empty response surfaces ErrGenerationEmpty", func(t *testing.T) {
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{}, nil
			},
		}
		svc := NewService(model, nil, nil)

		_, err := svc.EditImages(ctx, []Part{TextPart("p")})
		assert.ErrorIs(t, err, ErrGenerationEmpty)
	})

	t.Run("text-only content surfaces ErrNoValidImage", func(t *testing.T) {
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return &genai.GenerateContentResponse{
					Candidates: []*genai.Candidate{
						{Content: &genai.Content{Parts: []*genai.Part{{Text: "just text"}}}},
					},
				}, nil
			},
		}
		svc := NewService(model, nil, nil)

		_, err := svc.EditImages(ctx, []Part{TextPart("p")})
		assert.ErrorIs(t, err, ErrNoValidImage)
	})

	t.Run("quota rejection is reclassified by the gateway", func(t *testing.T) {
		model := &mockModel{
			generateFunc: func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
				return nil, genai.APIError{Code: 429, Message: "RESOURCE_EXHAUSTED"}
			},
		}
		svc := NewService(model, nil, nil)

		_, err := svc.EditImages(ctx, []Part{TextPart("p")})

		var authErr *gateway.AuthError
		assert.ErrorAs(t, err, &authErr)
	})
}

func TestTextToImage(t *testing.T) {
	ctx := context.Background()

	t.Run("joins prompt and negative prompt with the fixed delimiter", func(t *testing.T) {
		synth := &mockSynth{}
		svc := NewService(nil, synth, nil)

		uri, err := svc.TextToImage(ctx, "a red car", "blurry, low quality", "16:9", "png")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
		assert.Equal(t, "a red car | Avoid: blurry, low quality", synth.lastPrompt)
		assert.Equal(t, "16:9", synth.lastAspect)
		assert.Equal(t, "image/png", synth.lastMIME)
	})

	t.Run("auto aspect falls back to square", func(t *testing.T) {
		synth := &mockSynth{}
		svc := NewService(nil, synth, nil)

		_, err := svc.TextToImage(ctx, "p", "", "auto", "jpeg")

		require.NoError(t, err)
		assert.Equal(t, "1:1", synth.lastAspect)
		assert.Equal(t, "image/jpeg", synth.lastMIME)
	})

	t.Run("empty negative prompt is not appended", func(t *testing.T) {
		synth := &mockSynth{}
		svc := NewService(nil, synth, nil)

		_, err := svc.TextToImage(ctx, "just a prompt", "", "1:1", "png")

		require.NoError(t, err)
		assert.Equal(t, "just a prompt", synth.lastPrompt)
	})

	t.Run("empty result surfaces ErrNoValidImage", func(t *testing.T) {
		synth := &mockSynth{
			synthFunc: func(ctx context.Context, prompt, aspectRatio, outputMIMEType string) (*genai.GenerateImagesResponse, error) {
				return &genai.GenerateImagesResponse{}, nil
			},
		}
		svc := NewService(nil, synth, nil)

		_, err := svc.TextToImage(ctx, "p", "", "1:1", "png")
		assert.ErrorIs(t, err, ErrNoValidImage)
	})
}

func TestParseDataURI(t *testing.T) {
	uri := toDataURI([]byte("hello"), "image/png")

	data, mimeType, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
	assert.Equal(t, "image/png", mimeType)

	_, _, err = ParseDataURI("https://example.com/img.png")
	assert.Error(t, err)
}
