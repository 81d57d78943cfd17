package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghwns6404/ondongne/internal/domain"
)

const systemPrompt = `당신은 중고거래 플랫폼의 상품 등록을 돕는 AI 어시스턴트입니다.
사용자가 업로드한 상품 사진을 분석하여 다음을 제공하세요:
1. 상품명 (간결하고 명확하게, 20자 이내)
2. 상세 설명 (상품 상태, 특징, 크기/용량 등, 100자 이내)
3. 카테고리 (반드시 다음 중 하나: 디지털/가전, 가구/인테리어, 유아동/유아용품, 생활/가공식품, 스포츠/레저, 여성잡화, 남성패션/잡화, 게임/취미, 뷰티/미용, 반려동물용품, 도서/티켓/음반, 식물, 기타 중고물품)
4. 추천 가격 (원 단위, 최소값-최대값 범위)

중요: 응답은 반드시 JSON 형식으로만 작성하세요. 다른 텍스트나 마크다운 없이 순수 JSON만 출력하세요.

JSON 형식:
{
  "title": "상품명",
  "description": "상세 설명",
  "category": "카테고리명",
  "priceMin": 최소가격숫자,
  "priceMax": 최대가격숫자,
  "priceReason": "가격 추천 근거"
}

※ 주의사항:
- 무기, 위험물, 불법 물품은 등록할 수 없습니다. 이런 경우 "title"을 "등록 불가"로 하세요.
- 사진에서 상품을 식별할 수 없으면 "title"과 "description"을 빈 문자열로 하세요.`

const userPrompt = `이 상품 사진을 분석해서 등록 정보를 JSON 형식으로만 작성해주세요. 다른 설명 없이 JSON만 출력하세요.`

// prohibitedTitle is the sentinel title the prompt prescribes for items the
// marketplace does not allow.
const prohibitedTitle = "등록 불가"

// Completer issues one completion-service call.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (string, error)
}

// Suggestion is the listing draft derived from a product photo.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceMin    int    `json:"priceMin"`
	PriceMax    int    `json:"priceMax"`
	PriceReason string `json:"priceReason"`
}

// Service turns a listing photo into a suggested title, description,
// category and price range.
type Service struct {
	completer Completer
}

// New creates an analysis service.
func New(completer Completer) *Service {
	return &Service{completer: completer}
}

// AnalyzeImage analyzes one base64-encoded product photo. Unlike the search
// and recommendation stages there is no useful fallback: an unusable
// completion is surfaced as an error.
func (s *Service) AnalyzeImage(ctx context.Context, imageBase64 string) (Suggestion, error) {
	if imageBase64 == "" {
		return Suggestion{}, domain.ErrInvalidImage
	}

	out, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Operation:    "analysis",
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		ImageURL:     "data:image/jpeg;base64," + imageBase64,
		Temperature:  0.3,
		MaxTokens:    600,
		JSONMode:     true,
	})
	if err != nil {
		return Suggestion{}, err
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(domain.StripCodeFences(out)), &suggestion); err != nil {
		return Suggestion{}, fmt.Errorf("%w: %w", domain.ErrMalformedCompletion, err)
	}
	if suggestion.Title == prohibitedTitle {
		return Suggestion{}, domain.ErrProhibitedItem
	}
	if suggestion.Title == "" || suggestion.Description == "" || suggestion.Category == "" {
		return Suggestion{}, fmt.Errorf("%w: missing required fields", domain.ErrMalformedCompletion)
	}
	return suggestion, nil
}
