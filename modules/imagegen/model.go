package imagegen

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Part - one unit of a multi-modal request: inline image bytes or a text
// segment. Order matters: parts are sent exactly as given.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// TextPart - 텍스트 파트 생성
func TextPart(text string) Part {
	return Part{Text: text}
}

// ImagePart - 이미지 파트 생성
func ImagePart(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// IsImage - 이미지 파트 여부
func (p Part) IsImage() bool {
	return len(p.Data) > 0
}

// minImageBytes - inline payloads smaller than this are treated as
// degenerate (provider sometimes returns tiny placeholder blobs)
const minImageBytes = 1024

// ErrGenerationEmpty - 응답에 content parts가 전혀 없음
var ErrGenerationEmpty = errors.New("no content in generation response")

// ErrNoValidImage - content는 있으나 쓸만한 이미지가 없음
var ErrNoValidImage = errors.New("no usable image in generation response")

// GenerationBlockedError - provider safety filter가 요청을 차단함
type GenerationBlockedError struct {
	Reason string
}

func (e *GenerationBlockedError) Error() string {
	return fmt.Sprintf("generation blocked by provider: %s", e.Reason)
}

// VariantResult - 성공한 변형 생성 결과
type VariantResult struct {
	Prompt  string
	DataURI string
}

// ParseDataURI - data URI를 바이너리 + MIME 타입으로 분해
func ParseDataURI(dataURI string) ([]byte, string, error) {
	if !strings.HasPrefix(dataURI, "data:") {
		return nil, "", fmt.Errorf("not a data URI")
	}

	rest := dataURI[len("data:"):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("unsupported data URI encoding")
	}

	mimeType := rest[:sep]
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI payload: %w", err)
	}
	return data, mimeType, nil
}
