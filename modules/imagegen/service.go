package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"google.golang.org/genai"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/gateway"
)

// ImageModel - 이미지 편집/합성 요청을 처리하는 업스트림 모델
type ImageModel interface {
	GenerateWithParts(ctx context.Context, parts []*genai.Part, aspectRatio string) (*genai.GenerateContentResponse, error)
}

// ImageSynthesizer - 텍스트 기반 이미지 생성 (text-to-image)
type ImageSynthesizer interface {
	GenerateImages(ctx context.Context, prompt string, aspectRatio string, outputMIMEType string) (*genai.GenerateImagesResponse, error)
}

// Service - 이미지 생성 클라이언트. Every remote call goes through the
// gateway so auth/quota failures surface as *gateway.AuthError.
type Service struct {
	model ImageModel
	synth ImageSynthesizer
	gw    *gateway.Gateway
}

// NewService - Service 생성
func NewService(model ImageModel, synth ImageSynthesizer, gw *gateway.Gateway) *Service {
	if gw == nil {
		gw = gateway.New(nil)
	}
	return &Service{model: model, synth: synth, gw: gw}
}

// negativeDelimiter - prompt와 negative prompt를 합치는 고정 구분자
const negativeDelimiter = " | Avoid: "

// EditImages - 순서 보장된 image/text parts를 편집 엔드포인트로 전송하고,
// 응답에서 첫 번째 유효한 inline 이미지를 data URI로 반환
func (s *Service) EditImages(ctx context.Context, parts []Part) (string, error) {
	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsImage() {
			genaiParts = append(genaiParts, genai.NewPartFromBytes(p.Data, p.MIMEType))
		} else {
			genaiParts = append(genaiParts, genai.NewPartFromText(p.Text))
		}
	}

	result, err := gateway.Invoke(ctx, s.gw, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		return s.model.GenerateWithParts(ctx, genaiParts, "")
	})
	if err != nil {
		return "", err
	}

	return extractImageDataURI(result)
}

// TextToImage - 단일 text-to-image 요청. "auto" aspect는 정사각형으로 처리.
func (s *Service) TextToImage(ctx context.Context, prompt, negativePrompt, aspectRatio, outputFormat string) (string, error) {
	fullPrompt := prompt
	if negativePrompt != "" {
		fullPrompt = prompt + negativeDelimiter + negativePrompt
	}

	if aspectRatio == "" || aspectRatio == "auto" {
		aspectRatio = "1:1"
	}

	mimeType := mimeForFormat(outputFormat)

	result, err := gateway.Invoke(ctx, s.gw, func(ctx context.Context) (*genai.GenerateImagesResponse, error) {
		return s.synth.GenerateImages(ctx, fullPrompt, aspectRatio, mimeType)
	})
	if err != nil {
		return "", err
	}

	if result == nil || len(result.GeneratedImages) == 0 {
		return "", ErrNoValidImage
	}

	img := result.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return "", ErrNoValidImage
	}

	outMIME := img.MIMEType
	if outMIME == "" {
		outMIME = mimeType
	}

	log.Printf("✅ Received synthesized image: %d bytes", len(img.ImageBytes))
	return toDataURI(img.ImageBytes, outMIME), nil
}

// extractImageDataURI - 응답 후보에서 첫 번째 유효 이미지 추출
func extractImageDataURI(result *genai.GenerateContentResponse) (string, error) {
	if result == nil {
		return "", ErrGenerationEmpty
	}

	// Safety filter 차단 확인
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		reason := result.PromptFeedback.BlockReasonMessage
		if reason == "" {
			reason = string(result.PromptFeedback.BlockReason)
		}
		return "", &GenerationBlockedError{Reason: reason}
	}

	if len(result.Candidates) == 0 {
		return "", ErrGenerationEmpty
	}

	hasContent := false
	for _, candidate := range result.Candidates {
		if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
			continue
		}
		hasContent = true

		for _, part := range candidate.Content.Parts {
			// InlineData 확인 (이미지는 InlineData로 반환됨)
			if part.InlineData == nil {
				continue
			}
			if len(part.InlineData.Data) < minImageBytes {
				log.Printf("⚠️  Skipping degenerate inline payload: %d bytes", len(part.InlineData.Data))
				continue
			}

			log.Printf("✅ Received image from Gemini: %d bytes", len(part.InlineData.Data))
			return toDataURI(part.InlineData.Data, part.InlineData.MIMEType), nil
		}
	}

	if !hasContent {
		return "", ErrGenerationEmpty
	}
	return "", ErrNoValidImage
}

// toDataURI - 바이너리를 data URI로 인코딩
func toDataURI(data []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

// mimeForFormat - 출력 포맷명을 MIME 타입으로 변환
func mimeForFormat(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
