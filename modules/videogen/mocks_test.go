package videogen

import (
	"context"
	"time"

	"google.golang.org/genai"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/imagegen"
)

// --- Mocks ---

type mockOperator struct {
	submitCalls int
	pollCalls   int

	lastPrompt     string
	lastImage      *genai.Image
	lastAspect     string
	lastResolution string

	submitFunc func(ctx context.Context, prompt string, image *genai.Image) (*genai.GenerateVideosOperation, error)
	pollFunc   func(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

func (m *mockOperator) GenerateVideos(ctx context.Context, prompt string, image *genai.Image, aspectRatio, resolution string) (*genai.GenerateVideosOperation, error) {
	m.submitCalls++
	m.lastPrompt = prompt
	m.lastImage = image
	m.lastAspect = aspectRatio
	m.lastResolution = resolution
	if m.submitFunc != nil {
		return m.submitFunc(ctx, prompt, image)
	}
	return &genai.GenerateVideosOperation{Name: "operations/test", Done: false}, nil
}

func (m *mockOperator) PollVideos(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	m.pollCalls++
	if m.pollFunc != nil {
		return m.pollFunc(ctx, op)
	}
	return doneOperation([]byte("video-bytes"), ""), nil
}

type mockFuser struct {
	calls    int
	lastLen  int
	fuseFunc func(ctx context.Context, parts []imagegen.Part) (string, error)
}

func (m *mockFuser) EditImages(ctx context.Context, parts []imagegen.Part) (string, error) {
	m.calls++
	m.lastLen = len(parts)
	if m.fuseFunc != nil {
		return m.fuseFunc(ctx, parts)
	}
	return "data:image/png;base64,Y29tcG9zaXRl", nil // "composite"
}

type mockFetcher struct {
	calls   int
	lastURI string
	data    []byte
	status  int
	err     error
}

func (m *mockFetcher) FetchBytes(ctx context.Context, uri string) ([]byte, int, error) {
	m.calls++
	m.lastURI = uri
	return m.data, m.status, m.err
}

// fakeSleeper - 실제 대기 없이 호출만 기록
type fakeSleeper struct {
	sleeps []time.Duration
	err    error
}

func (s *fakeSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.sleeps = append(s.sleeps, d)
	return s.err
}

// doneOperation - 완료된 operation 생성 (bytes 또는 URI)
func doneOperation(videoBytes []byte, uri string) *genai.GenerateVideosOperation {
	return &genai.GenerateVideosOperation{
		Name: "operations/test",
		Done: true,
		Response: &genai.GenerateVideosResponse{
			GeneratedVideos: []*genai.GeneratedVideo{
				{Video: &genai.Video{VideoBytes: videoBytes, URI: uri, MIMEType: "video/mp4"}},
			},
		},
	}
}
