package imagegen

import (
	"context"
	"sync"

	"google.golang.org/genai"
)

// --- Mocks ---

// mockModel - 변형 fan-out이 동시에 호출하므로 mutex로 보호
type mockModel struct {
	mu           sync.Mutex
	calls        int
	lastParts    []*genai.Part
	lastAspect   string
	generateFunc func(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error)
}

func (m *mockModel) GenerateWithParts(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastParts = parts
	m.lastAspect = aspectRatio
	fn := m.generateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, parts, aspectRatio)
	}
	return inlineImageResponse(make([]byte, minImageBytes+1), "image/png"), nil
}

func (m *mockModel) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockSynth struct {
	calls      int
	lastPrompt string
	lastAspect string
	lastMIME   string
	synthFunc  func(ctx context.Context, prompt, aspectRatio, outputMIMEType string) (*genai.GenerateImagesResponse, error)
}

func (m *mockSynth) GenerateImages(ctx context.Context, prompt, aspectRatio, outputMIMEType string) (*genai.GenerateImagesResponse, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastAspect = aspectRatio
	m.lastMIME = outputMIMEType
	if m.synthFunc != nil {
		return m.synthFunc(ctx, prompt, aspectRatio, outputMIMEType)
	}
	return &genai.GenerateImagesResponse{
		GeneratedImages: []*genai.GeneratedImage{
			{Image: &genai.Image{ImageBytes: []byte("fake-image"), MIMEType: outputMIMEType}},
		},
	}, nil
}

// inlineImageResponse - 단일 inline 이미지가 담긴 응답 생성
func inlineImageResponse(data []byte, mimeType string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{
						{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
					},
				},
			},
		},
	}
}
