package batch

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/common/redisutil"
	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/imagegen"
	"github.com/minhkiet/AI-Magic-Tool-Studio/modules/presets"
)

// Generator - 배치가 사용하는 이미지 편집 클라이언트
type Generator interface {
	EditImages(ctx context.Context, parts []imagegen.Part) (string, error)
}

// Translator - 프롬프트 번역 collaborator
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Runner - 고정된 asset 쌍에 대해 프롬프트 목록을 순차 실행.
// The remote endpoint has no documented concurrency contract, so calls are
// strictly serialized: at most one generation in flight, results emitted in
// input order. Cancellation is the ctx passed to Run, checked between items.
type Runner struct {
	generator  Generator
	translator Translator
	cache      *redisutil.TranslationCache

	presetID       string
	locale         string
	generationLang string

	onProgress ProgressFunc
}

// NewRunner - Runner 생성. cache는 nil 허용 (번역 캐시 비활성).
func NewRunner(generator Generator, translator Translator, cache *redisutil.TranslationCache, presetID, locale, generationLang string) *Runner {
	return &Runner{
		generator:      generator,
		translator:     translator,
		cache:          cache,
		presetID:       presetID,
		locale:         locale,
		generationLang: generationLang,
	}
}

// SetProgressFunc - 진행 상황 콜백 등록
func (r *Runner) SetProgressFunc(fn ProgressFunc) {
	r.onProgress = fn
}

// Run - 배치 실행. 항목 i의 실패는 기록만 하고 i+1로 계속 진행한다.
// On cancellation the items completed so far are returned along with
// ctx.Err(); nothing is rolled back.
func (r *Runner) Run(ctx context.Context, subject, scene Asset, prompts []string) ([]Item, error) {
	// Preflight: 네트워크 호출 전 검증
	if len(subject.Data) == 0 || len(scene.Data) == 0 {
		return nil, &ValidationError{Reason: "both source assets are required"}
	}

	pending := make([]string, 0, len(prompts))
	for _, p := range prompts {
		if strings.TrimSpace(p) != "" {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return nil, &ValidationError{Reason: "at least one non-empty prompt is required"}
	}

	// Directive는 preset 고정이므로 한 번만 합성 (Compose는 순수 함수)
	directive, err := presets.Compose(r.presetID, presets.DirectiveOverrides{})
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	runID := uuid.New().String()
	total := len(pending)
	log.Printf("🚀 [Batch %s] Starting: %d prompts, preset %s", runID, total, r.presetID)

	results := make([]Item, 0, total)

	for i, prompt := range pending {
		// 협조적 취소: 항목 사이에서만 중단 (in-flight 호출은 끝까지)
		if ctx.Err() != nil {
			log.Printf("🛑 [Batch %s] Cancelled before item %d/%d, keeping %d results", runID, i+1, total, len(results))
			return results, ctx.Err()
		}

		if r.onProgress != nil {
			r.onProgress(i, total)
		}

		item := r.runItem(ctx, subject, scene, directive, prompt)
		if item.State == ItemFailed {
			log.Printf("⚠️  [Batch %s] Item %d/%d failed: %v", runID, i+1, total, item.Err)
		} else {
			log.Printf("✅ [Batch %s] Item %d/%d succeeded", runID, i+1, total)
		}
		results = append(results, item)
	}

	log.Printf("✅ [Batch %s] Completed: %d/%d items", runID, total, total)
	return results, nil
}

// runItem - 단일 항목 처리 (번역 → 생성)
func (r *Runner) runItem(ctx context.Context, subject, scene Asset, directive, prompt string) Item {
	item := Item{Prompt: prompt, State: ItemRunning}

	generationPrompt, err := r.translatePrompt(ctx, prompt)
	if err != nil {
		item.State = ItemFailed
		item.Err = err
		return item
	}

	dataURI, err := r.generator.EditImages(ctx, []imagegen.Part{
		imagegen.ImagePart(subject.Data, subject.MIMEType),
		imagegen.ImagePart(scene.Data, scene.MIMEType),
		imagegen.TextPart(directive),
		imagegen.TextPart(generationPrompt),
	})
	if err != nil {
		item.State = ItemFailed
		item.Err = err
		return item
	}

	item.State = ItemSucceeded
	item.DataURI = dataURI
	return item
}

// translatePrompt - 활성 locale이 생성 언어와 다르면 번역 (캐시 우선)
func (r *Runner) translatePrompt(ctx context.Context, prompt string) (string, error) {
	if r.translator == nil || r.locale == "" || r.locale == r.generationLang {
		return prompt, nil
	}

	if cached, ok := r.cache.Get(ctx, prompt, r.locale, r.generationLang); ok {
		return cached, nil
	}

	translated, err := r.translator.Translate(ctx, prompt, r.locale, r.generationLang)
	if err != nil {
		return "", err
	}

	r.cache.Set(ctx, prompt, r.locale, r.generationLang, translated)
	return translated, nil
}
