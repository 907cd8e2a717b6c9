package imagegen

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentVariants - 동시 변형 생성 제한
const maxConcurrentVariants = 2

// GenerateVariants - 하나의 원본 이미지로 여러 스타일/트렌드 변형을 동시에
// 생성. Attempt-all policy: a failing branch never cancels or blocks its
// siblings. Successes are returned in completion order, not submission
// order, along with the number of failed branches.
func (s *Service) GenerateVariants(ctx context.Context, source Part, variantPrompts []string) ([]VariantResult, int) {
	if len(variantPrompts) == 0 {
		return nil, 0
	}

	log.Printf("🎨 [Variants] Generating %d variants (max %d concurrent)", len(variantPrompts), maxConcurrentVariants)

	var mu sync.Mutex
	results := []VariantResult{}
	failed := 0

	var g errgroup.Group
	g.SetLimit(maxConcurrentVariants)

	for _, prompt := range variantPrompts {
		g.Go(func() error {
			dataURI, err := s.EditImages(ctx, []Part{source, TextPart(prompt)})

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				// 실패는 집계만 하고 다른 branch에 전파하지 않음
				log.Printf("⚠️  [Variants] Branch failed (prompt: %.40q): %v", prompt, err)
				failed++
				return nil
			}

			results = append(results, VariantResult{Prompt: prompt, DataURI: dataURI})
			return nil
		})
	}

	g.Wait()

	log.Printf("✅ [Variants] Completed: %d succeeded, %d failed", len(results), failed)
	return results, failed
}
