package videogen

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/gateway"
	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/imagegen"
)

// VideoOperator - 비디오 작업 제출/폴링을 담당하는 업스트림
type VideoOperator interface {
	GenerateVideos(ctx context.Context, prompt string, image *genai.Image, aspectRatio string, resolution string) (*genai.GenerateVideosOperation, error)
	PollVideos(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

// ImageFuser - subject + context 이미지를 하나의 composite로 합성
type ImageFuser interface {
	EditImages(ctx context.Context, parts []imagegen.Part) (string, error)
}

// FileFetcher - 생성된 미디어 바이너리 다운로드 (HTTP status 반환)
type FileFetcher interface {
	FetchBytes(ctx context.Context, uri string) ([]byte, int, error)
}

// Sleeper - 폴링 대기. Injectable so tests can simulate time instead of
// sleeping real seconds.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realSleeper struct{}

func (realSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fusionDirective - composite 생성 지시 (subject가 context 장면 안에 자연스럽게)
const fusionDirective = `[COMPOSITE - IMAGES MUST BE COMBINED]
You are provided with a subject image and a context image.
Place the subject naturally inside the context scene as ONE single photograph.
Match lighting, perspective and color between subject and scene.
DO NOT show the images side by side. Generate ONE unified composite frame.`

// Service - 비디오 생성 상태 머신.
// Idle → Composing(optional) → Submitted → Polling → Done | Failed
type Service struct {
	operator VideoOperator
	fuser    ImageFuser
	fetcher  FileFetcher
	gw       *gateway.Gateway

	pollInterval time.Duration
	pollTimeout  time.Duration // 0 = no limit
	sleeper      Sleeper
}

// NewService - Service 생성
func NewService(operator VideoOperator, fuser ImageFuser, fetcher FileFetcher, gw *gateway.Gateway, pollInterval, pollTimeout time.Duration) *Service {
	if gw == nil {
		gw = gateway.New(nil)
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &Service{
		operator:     operator,
		fuser:        fuser,
		fetcher:      fetcher,
		gw:           gw,
		pollInterval: pollInterval,
		pollTimeout:  pollTimeout,
		sleeper:      realSleeper{},
	}
}

// SetSleeper - 테스트용 sleeper 교체
func (s *Service) SetSleeper(sleeper Sleeper) {
	s.sleeper = sleeper
}

// Generate - 비디오 작업 전체 수행 (합성 → 제출 → 폴링 → 다운로드).
// The returned Job carries the terminal state even on error.
func (s *Service) Generate(ctx context.Context, req JobRequest) (*Job, *Result, error) {
	job := &Job{
		ID:      uuid.New().String(),
		Request: req,
		State:   StateIdle,
	}

	log.Printf("🎬 [Video] Starting job %s", job.ID)

	// Phase 1: conditioning 이미지 준비 (2장이면 fusion 필수)
	conditioning, err := s.prepareConditioningImage(ctx, job)
	if err != nil {
		// Fusion 실패 시 비디오 엔드포인트는 절대 호출하지 않음
		job.State = StateFailed
		return job, nil, fmt.Errorf("image fusion failed: %w", err)
	}

	// Phase 2: 작업 제출
	op, err := gateway.Invoke(ctx, s.gw, func(ctx context.Context) (*genai.GenerateVideosOperation, error) {
		return s.operator.GenerateVideos(ctx, req.Prompt, conditioning, req.AspectRatio, req.Resolution)
	})
	if err != nil {
		job.State = StateFailed
		return job, nil, err
	}
	job.State = StateSubmitted
	job.Operation = op
	log.Printf("📤 [Video] Job %s submitted (operation: %s)", job.ID, op.Name)

	// Phase 3: 완료까지 폴링
	op, err = s.pollUntilDone(ctx, job)
	if err != nil {
		job.State = StateFailed
		return job, nil, err
	}

	// Phase 4: 결과 추출 및 다운로드
	result, err := s.extractResult(ctx, op)
	if err != nil {
		job.State = StateFailed
		return job, nil, err
	}

	job.State = StateDone
	log.Printf("✅ [Video] Job %s completed: %d bytes", job.ID, len(result.Data))
	return job, result, nil
}

// prepareConditioningImage - 소스 이미지 준비. 2장 제공 시 정확히 1회의
// fusion 호출로 composite를 만든다.
func (s *Service) prepareConditioningImage(ctx context.Context, job *Job) (*genai.Image, error) {
	req := job.Request

	if len(req.SubjectImage) > 0 && len(req.ContextImage) > 0 {
		job.State = StateComposing
		log.Printf("🎨 [Video] Job %s: fusing subject + context into composite frame", job.ID)

		dataURI, err := s.fuser.EditImages(ctx, []imagegen.Part{
			imagegen.ImagePart(req.SubjectImage, req.SubjectMIME),
			imagegen.ImagePart(req.ContextImage, req.ContextMIME),
			imagegen.TextPart(fusionDirective),
		})
		if err != nil {
			return nil, err
		}

		data, mimeType, err := imagegen.ParseDataURI(dataURI)
		if err != nil {
			return nil, fmt.Errorf("invalid composite payload: %w", err)
		}

		log.Printf("✅ [Video] Composite frame ready: %d bytes", len(data))
		return &genai.Image{ImageBytes: data, MIMEType: mimeType}, nil
	}

	if len(req.SubjectImage) > 0 {
		return &genai.Image{ImageBytes: req.SubjectImage, MIMEType: req.SubjectMIME}, nil
	}

	// 텍스트 전용 비디오
	return nil, nil
}

// pollUntilDone - 고정 간격 폴링. Long jobs legitimately take minutes, so
// there is no iteration cap; the optional wall-clock timeout and ctx
// cancellation are the only ways out of an unfinished operation.
func (s *Service) pollUntilDone(ctx context.Context, job *Job) (*genai.GenerateVideosOperation, error) {
	job.State = StatePolling
	op := job.Operation
	started := time.Now()

	for !op.Done {
		if s.pollTimeout > 0 && time.Since(started) > s.pollTimeout {
			return nil, &VideoJobError{Message: fmt.Sprintf("operation did not complete within %s", s.pollTimeout)}
		}

		if err := s.sleeper.Sleep(ctx, s.pollInterval); err != nil {
			return nil, err
		}

		refreshed, err := gateway.Invoke(ctx, s.gw, func(ctx context.Context) (*genai.GenerateVideosOperation, error) {
			return s.operator.PollVideos(ctx, op)
		})
		if err != nil {
			return nil, err
		}
		op = refreshed
		job.Operation = op
		log.Printf("⏳ [Video] Job %s polling... (done: %v)", job.ID, op.Done)
	}

	return op, nil
}

// extractResult - 완료된 operation에서 비디오 추출 후 다운로드
func (s *Service) extractResult(ctx context.Context, op *genai.GenerateVideosOperation) (*Result, error) {
	if len(op.Error) > 0 {
		msg := "unknown provider error"
		if m, ok := op.Error["message"].(string); ok && m != "" {
			msg = m
		}
		return nil, &VideoJobError{Message: msg}
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 {
		return nil, &VideoJobError{Message: "operation completed without any video"}
	}

	video := op.Response.GeneratedVideos[0].Video
	if video == nil {
		return nil, &VideoJobError{Message: "operation completed without any video"}
	}

	mimeType := video.MIMEType
	if mimeType == "" {
		mimeType = "video/mp4"
	}

	// 일부 응답은 바이트를 바로 포함함
	if len(video.VideoBytes) > 0 {
		return &Result{Data: video.VideoBytes, MIMEType: mimeType}, nil
	}

	data, status, err := s.fetcher.FetchBytes(ctx, video.URI)
	if err != nil {
		return nil, err
	}
	if status != 200 {
		return nil, &NetworkFetchError{URI: video.URI, StatusCode: status}
	}

	return &Result{Data: data, MIMEType: mimeType}, nil
}
