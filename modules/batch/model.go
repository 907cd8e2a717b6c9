package batch

import "fmt"

// ItemState - 배치 항목 수명주기
type ItemState string

const (
	ItemPending   ItemState = "pending"
	ItemRunning   ItemState = "running"
	ItemSucceeded ItemState = "succeeded"
	ItemFailed    ItemState = "failed"
)

// Item - 배치 항목 결과. Failed items keep the prompt so a single line can
// be re-run without redoing the whole batch.
type Item struct {
	Prompt  string
	State   ItemState
	DataURI string // on success
	Err     error  // on failure (translation or generation)
}

// Asset - 배치 전체에 고정되는 소스 이미지
type Asset struct {
	Data     []byte
	MIMEType string
}

// ValidationError - 필수 입력 누락 (네트워크 호출 전에 발생)
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("batch validation failed: %s", e.Reason)
}

// ProgressFunc - 각 항목 시도 직전에 (currentIndex, total)로 호출됨
type ProgressFunc func(current, total int)
