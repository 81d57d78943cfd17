package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ghwns6404/ondongne/internal/domain"
	"github.com/ghwns6404/ondongne/internal/logger"
	"github.com/ghwns6404/ondongne/internal/metrics"
)

const reasonSystemPrompt = `당신은 동네 중고거래 앱의 추천 문구 작성자입니다.
사용자 취향 정보와 추천 상품 목록을 받아 상품마다 짧은 추천 이유를 작성하세요.

규칙:
1. 이유는 15자 이내
2. 상품마다 하나씩, 빠짐없이
3. JSON 배열로만 응답: [{"productId": "...", "reason": "..."}, ...]`

// reasonPair is one entry of the expected completion response.
type reasonPair struct {
	ProductID string `json:"productId"`
	Reason    string `json:"reason"`
}

// assignReasons attaches a per-item rationale to every candidate with
// exactly one completion call for the whole batch. Candidates the response
// omits get the default reason; a failed call or unparsable response
// degrades every candidate to the default reason rather than failing the
// request.
func (s *Service) assignReasons(
	ctx context.Context,
	candidates []domain.Candidate,
	topCategories []string,
	avgPrice int,
) []domain.Candidate {
	reasons := s.requestReasons(ctx, candidates, topCategories, avgPrice)

	out := make([]domain.Candidate, len(candidates))
	for i, c := range candidates {
		if r, ok := reasons[c.ID]; ok && r != "" {
			c.Reason = r
		} else {
			c.Reason = domain.DefaultReason
		}
		out[i] = c
	}
	return out
}

// requestReasons returns a productId→reason map, empty on any failure.
func (s *Service) requestReasons(
	ctx context.Context,
	candidates []domain.Candidate,
	topCategories []string,
	avgPrice int,
) map[string]string {
	var b strings.Builder
	fmt.Fprintf(&b, "사용자 취향: 선호 카테고리 %s, 평균 가격 %d원\n\n추천 상품:\n",
		strings.Join(topCategories, ", "), avgPrice)
	for _, c := range candidates {
		fmt.Fprintf(&b, "- productId: %s, 제목: %s, 카테고리: %s, 가격: %d원\n",
			c.ID, c.Title, c.Category, c.Price)
	}
	b.WriteString("\n상품마다 추천 이유를 JSON 배열로 작성해주세요.")

	out, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Operation:    "reasons",
		SystemPrompt: reasonSystemPrompt,
		UserPrompt:   b.String(),
		Temperature:  0.7,
		MaxTokens:    400,
	})
	if err != nil {
		return s.reasonFallback(ctx, err)
	}

	var pairs []reasonPair
	if err := json.Unmarshal([]byte(domain.StripCodeFences(out)), &pairs); err != nil {
		return s.reasonFallback(ctx, err)
	}

	reasons := make(map[string]string, len(pairs))
	for _, p := range pairs {
		reasons[p.ProductID] = strings.TrimSpace(p.Reason)
	}
	return reasons
}

func (s *Service) reasonFallback(ctx context.Context, cause error) map[string]string {
	metrics.CompletionFallbacksTotal.WithLabelValues("reasons").Inc()
	logger.FromContext(ctx).Warn("reason assignment degraded to default reason",
		zap.Error(cause),
	)
	return nil
}
