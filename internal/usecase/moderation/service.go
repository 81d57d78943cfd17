package moderation

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

// maxTextRunes bounds the text accepted for one check.
const maxTextRunes = 5000

const systemPrompt = `당신은 한국어 텍스트의 욕설, 비속어, 혐오 표현을 감지하는 전문가입니다.
다음 기준으로 판단하세요:
1. 욕설, 비속어, 성적인 표현
2. 혐오 발언 (인종, 성별, 종교 등)
3. 폭력적이거나 위협적인 표현
4. 심각한 비방이나 모욕

단, 다음은 허용합니다:
- "개발자", "개발", "개선" 등 일상 단어
- "겁나좋음", "개좋아" 등 긍정적 강조 표현 (맥락 고려)

응답은 반드시 JSON 형식으로만 하세요:
{"isClean": true} 또는 {"isClean": false, "reason": "문제가 되는 이유"}`

// Completer issues one completion-service call.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// CheckResult is the moderation verdict for one text.
type CheckResult struct {
	IsClean bool   `json:"isClean"`
	Reason  string `json:"reason,omitempty"`
}

// Service checks user-written text for abusive content via the completion
// service.
type Service struct {
	completer Completer
}

// New creates a moderation service.
func New(completer Completer) *Service {
	return &Service{completer: completer}
}

// Check classifies one text. A provider failure or unparsable verdict
// passes the text as clean: moderation outages must not block posting.
func (s *Service) Check(ctx context.Context, text string) (CheckResult, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return CheckResult{}, domain.ErrInvalidText
	}
	if len([]rune(text)) > maxTextRunes {
		return CheckResult{}, fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidText, maxTextRunes)
	}

	out, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Operation:    "moderation",
		SystemPrompt: systemPrompt,
		UserPrompt:   fmt.Sprintf("다음 텍스트를 검사해주세요: %q", text),
		Temperature:  0.3,
		MaxTokens:    150,
	})
	if err != nil {
		return s.passOpen(ctx, err), nil
	}

	var verdict CheckResult
	if err := json.Unmarshal([]byte(domain.StripCodeFences(out)), &verdict); err != nil {
		return s.passOpen(ctx, err), nil
	}
	return verdict, nil
}

func (s *Service) passOpen(ctx context.Context, cause error) CheckResult {
	metrics.CompletionFallbacksTotal.WithLabelValues("moderation").Inc()
	logger.FromContext(ctx).Warn("moderation check degraded to clean verdict",
		zap.Error(cause),
	)
	return CheckResult{IsClean: true}
}
