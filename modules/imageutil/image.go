package imageutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// ratioEpsilon - source/target ratios closer than this are treated as equal,
// so the original bytes pass through without re-encoding
const ratioEpsilon = 0.01

// ToBase64 - 이미지 바이너리를 base64로 변환
func ToBase64(imageData []byte) string {
	return base64.StdEncoding.EncodeToString(imageData)
}

// Dimensions - 이미지 크기 조회 (디코딩 없이 헤더만)
func Dimensions(imageData []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to probe image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// ParseAspectRatio - "W:H" 문자열 파싱. Malformed or non-positive input
// yields ok=false.
func ParseAspectRatio(s string) (ratio float64, ok bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}

	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, false
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, false
	}

	if w <= 0 || h <= 0 {
		return 0, false
	}
	return w / h, true
}

// ResizeToAspect - 이미지를 목표 비율 캔버스에 맞춤 (crop 없음, 중앙 정렬).
// The canvas is exactly as large as needed in one dimension and larger in
// the other, so the source fits uncropped on a solid white fill. Returns
// the original bytes unchanged on a malformed ratio, a near-matching
// ratio, or any decode/encode problem.
func ResizeToAspect(imageData []byte, targetRatio string) []byte {
	target, ok := ParseAspectRatio(targetRatio)
	if !ok {
		log.Printf("⚠️  Invalid aspect ratio %q - returning original image", targetRatio)
		return imageData
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		log.Printf("⚠️  Failed to decode image for aspect normalization: %v", err)
		return imageData
	}

	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()
	if srcWidth == 0 || srcHeight == 0 {
		return imageData
	}

	srcRatio := float64(srcWidth) / float64(srcHeight)
	if math.Abs(srcRatio-target) < ratioEpsilon {
		// 이미 목표 비율 - 재인코딩 없이 원본 그대로
		return imageData
	}

	// 한쪽은 원본 그대로, 다른 쪽만 키워서 crop 없이 맞춤
	canvasWidth := srcWidth
	canvasHeight := srcHeight
	if srcRatio < target {
		canvasWidth = int(math.Round(float64(srcHeight) * target))
	} else {
		canvasHeight = int(math.Round(float64(srcWidth) / target))
	}

	canvas := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// 중앙 정렬
	xOffset := (canvasWidth - srcWidth) / 2
	yOffset := (canvasHeight - srcHeight) / 2
	draw.Draw(canvas,
		image.Rect(xOffset, yOffset, xOffset+srcWidth, yOffset+srcHeight),
		img, bounds.Min, draw.Src)

	encoded, err := encodeAs(canvas, format)
	if err != nil {
		log.Printf("⚠️  Failed to re-encode padded image as %s: %v", format, err)
		return imageData
	}

	log.Printf("✅ Padded image %dx%d → %dx%d (target %s)", srcWidth, srcHeight, canvasWidth, canvasHeight, targetRatio)
	return encoded
}

// encodeAs - 원본 포맷으로 재인코딩 (png/jpeg/webp)
func encodeAs(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "jpeg":
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
			return nil, err
		}
	case "webp":
		options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, 90)
		if err != nil {
			return nil, err
		}
		if err := webp.Encode(&buf, img, options); err != nil {
			return nil, err
		}
	default:
		// png 및 미지 포맷은 PNG로
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// MIMEFromFormat - image.Decode 포맷명을 MIME 타입으로 변환
func MIMEFromFormat(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// ConvertPNGToWebP - PNG 바이너리를 WebP로 변환
func ConvertPNGToWebP(pngData []byte, quality float32) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("✅ PNG converted to WebP: %d bytes → %d bytes (%.1f%% reduction)",
		len(pngData), len(webpData),
		float64(len(pngData)-len(webpData))/float64(len(pngData))*100)

	return webpData, nil
}
