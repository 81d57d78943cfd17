package search

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/ghwns6404/ondongne/internal/domain"
	"github.com/ghwns6404/ondongne/internal/logger"
	"github.com/ghwns6404/ondongne/internal/metrics"
)

// maxKeywords bounds the keyword set regardless of what the model returns.
const maxKeywords = 5

const keywordSystemPrompt = `당신은 검색 키워드 추출 전문가입니다.
사용자의 질문에서 핵심 검색 키워드를 추출하세요.

규칙:
1. 명사 중심으로 추출 (동사, 조사 제거)
2. 유사어도 포함 (예: "장난감" → ["장난감", "완구", "놀이감"])
3. 최대 5개 키워드
4. JSON 배열로만 응답: ["키워드1", "키워드2", ...]

예시:
질문: "자전거 팔아요 글 찾아줘"
응답: ["자전거", "싸이클", "bike", "팔아요", "판매"]`

// extractKeywords turns a query into a bounded keyword set with one
// completion call. It never fails: any transport or parse problem degrades
// to the original query as the sole keyword. An empty parsed array is
// accepted as-is.
func (s *Service) extractKeywords(ctx context.Context, query string) []string {
	out, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Operation:    "keywords",
		SystemPrompt: keywordSystemPrompt,
		UserPrompt:   query,
		Temperature:  0.3,
		MaxTokens:    100,
	})
	if err != nil {
		return s.keywordFallback(ctx, query, err)
	}

	var keywords []string
	if err := json.Unmarshal([]byte(domain.StripCodeFences(out)), &keywords); err != nil {
		return s.keywordFallback(ctx, query, err)
	}
	if keywords == nil {
		// "null" parses without error but is not an array
		return s.keywordFallback(ctx, query, nil)
	}
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func (s *Service) keywordFallback(ctx context.Context, query string, cause error) []string {
	metrics.CompletionFallbacksTotal.WithLabelValues("keywords").Inc()
	logger.FromContext(ctx).Warn("keyword extraction degraded to raw query",
		zap.Error(cause),
	)
	return []string{query}
}
