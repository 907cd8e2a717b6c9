package gateway

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// AuthError - credential/quota rejection with a fixed user-facing message
type AuthError struct {
	cause error
}

const authMessage = "API key is invalid or the quota has been exceeded. Please check your key and billing status."

func (e *AuthError) Error() string {
	return authMessage
}

func (e *AuthError) Unwrap() error {
	return e.cause
}

// StatusCoder - errors that carry an HTTP status code
type StatusCoder interface {
	StatusCode() int
}

// Classifier - decides whether an upstream error is an auth/quota rejection.
// Provider heuristics are brittle by nature, so they live here and nowhere else.
type Classifier interface {
	IsAuthError(err error) bool
}

// geminiClassifier - substring/status sniffing for the Gemini API
type geminiClassifier struct{}

// NewGeminiClassifier - default classifier for Gemini-style errors
func NewGeminiClassifier() Classifier {
	return geminiClassifier{}
}

// authStatusCodes - HTTP 상태 코드 기반 판정
var authStatusCodes = map[int]bool{
	400: true,
	403: true,
	429: true,
}

// authSubstrings - 메시지 기반 판정 (case-insensitive)
var authSubstrings = []string{
	"api key not valid",
	"api_key_invalid",
	"permission denied",
	"permission_denied",
	"resource_exhausted",
	"quota",
	"429",
}

func (geminiClassifier) IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if code, ok := statusCode(err); ok && authStatusCodes[code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, s := range authSubstrings {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

// statusCode - extract an HTTP status code from known error shapes
func statusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code, true
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}

	return 0, false
}

// Gateway - wraps remote calls and reclassifies auth/quota failures.
// Executes each action exactly once: no retry, no backoff. Retry policy
// belongs to the caller.
type Gateway struct {
	classifier Classifier
}

// New - Gateway 생성
func New(classifier Classifier) *Gateway {
	if classifier == nil {
		classifier = NewGeminiClassifier()
	}
	return &Gateway{classifier: classifier}
}

// Invoke - run fn once; on failure reclassify auth/quota errors as *AuthError,
// pass everything else through unchanged
func Invoke[T any](ctx context.Context, g *Gateway, fn func(ctx context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		if g.classifier.IsAuthError(err) {
			var zero T
			return zero, &AuthError{cause: err}
		}
		return result, err
	}
	return result, nil
}
