package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ghwns6404/ondongne/internal/domain"
	"github.com/ghwns6404/ondongne/internal/logger"
	"github.com/ghwns6404/ondongne/internal/metrics"
)

// noResultsMessage is returned without a completion call when nothing matched.
const noResultsMessage = "죄송합니다. 검색 결과를 찾지 못했습니다. 다른 키워드로 다시 검색해보세요."

const summarySystemPrompt = `당신은 친절한 온동네 챗봇입니다.
사용자 질문과 검색 결과를 바탕으로 자연스러운 한국어로 응답하세요.

규칙:
1. 친근하고 간결하게
2. 검색 결과 개수와 타입(중고거래/소식) 언급
3. 1-2문장으로 요약
4. 이모지 사용 가능`

// summarize produces the one/two-sentence reply for the result set. Empty
// results short-circuit to the fixed message, saving the network round
// trip; any completion failure degrades to the templated count message.
func (s *Service) summarize(ctx context.Context, query string, results []domain.ScoredResult) string {
	if len(results) == 0 {
		return noResultsMessage
	}

	products, news := 0, 0
	for _, r := range results {
		if r.Kind == domain.KindProduct {
			products++
		} else {
			news++
		}
	}

	userPrompt := fmt.Sprintf(`질문: "%s"
검색 결과: %d개 (중고거래 %d개, 소식 %d개)

응답 메시지를 작성해주세요.`, query, len(results), products, news)

	out, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Operation:    "summary",
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   userPrompt,
		Temperature:  0.7,
		MaxTokens:    100,
	})
	if err != nil {
		metrics.CompletionFallbacksTotal.WithLabelValues("summary").Inc()
		logger.FromContext(ctx).Warn("summary generation degraded to template",
			zap.Error(err),
		)
		return fmt.Sprintf("%d개의 결과를 찾았습니다! 아래에서 확인해보세요.", len(results))
	}
	return strings.TrimSpace(out)
}
