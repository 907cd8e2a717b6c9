package videogen

import (
	"fmt"

	"google.golang.org/genai"
)

// State - 비디오 작업 수명주기
type State string

const (
	StateIdle      State = "idle"
	StateComposing State = "composing"
	StateSubmitted State = "submitted"
	StatePolling   State = "polling"
	StateDone      State = "done"
	StateFailed    State = "failed"
)

// JobRequest - 비디오 생성 요청
type JobRequest struct {
	Prompt      string
	AspectRatio string
	Resolution  string // "720p" / "1080p"

	// Optional conditioning images. When both subject and context are set,
	// they are fused into one composite frame before the video request.
	SubjectImage []byte
	SubjectMIME  string
	ContextImage []byte
	ContextMIME  string
}

// Job - 진행 중인 비디오 작업
type Job struct {
	ID        string
	Request   JobRequest
	State     State
	Operation *genai.GenerateVideosOperation
}

// Result - 완료된 비디오 (in-memory, 재생/다운로드용)
type Result struct {
	Data     []byte
	MIMEType string
}

// VideoJobError - 완료된 operation 안의 terminal 에러
type VideoJobError struct {
	Message string
}

func (e *VideoJobError) Error() string {
	return fmt.Sprintf("video job failed: %s", e.Message)
}

// NetworkFetchError - 생성된 미디어 다운로드 실패 (non-2xx)
type NetworkFetchError struct {
	URI        string
	StatusCode int
}

func (e *NetworkFetchError) Error() string {
	return fmt.Sprintf("failed to fetch generated media: status %d", e.StatusCode)
}
