package moderation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ghwns6404/ondongne/internal/domain"
)

type mockCompleter struct {
	response string
	err      error
	requests []domain.CompletionRequest
}

func (m *mockCompleter) Complete(_ context.Context, req domain.CompletionRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func TestCheck_Clean(t *testing.T) {
	completer := &mockCompleter{response: `{"isClean": true}`}
	svc := New(completer)

	got, err := svc.Check(context.Background(), "좋은 물건 싸게 팝니다")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsClean || got.Reason != "" {
		t.Errorf("expected clean verdict, got %+v", got)
	}
}

func TestCheck_Abusive(t *testing.T) {
	completer := &mockCompleter{response: `{"isClean": false, "reason": "욕설 포함"}`}
	svc := New(completer)

	got, err := svc.Check(context.Background(), "나쁜 말")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsClean {
		t.Error("expected abusive verdict")
	}
	if got.Reason != "욕설 포함" {
		t.Errorf("unexpected reason: %q", got.Reason)
	}
}

func TestCheck_EmptyText(t *testing.T) {
	svc := New(&mockCompleter{})

	_, err := svc.Check(context.Background(), "   ")
	if !errors.Is(err, domain.ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestCheck_TextTooLong(t *testing.T) {
	svc := New(&mockCompleter{})

	_, err := svc.Check(context.Background(), strings.Repeat("가", maxTextRunes+1))
	if !errors.Is(err, domain.ErrInvalidText) {
		t.Fatalf("expected ErrInvalidText, got %v", err)
	}
}

func TestCheck_ProviderFailurePassesOpen(t *testing.T) {
	completer := &mockCompleter{err: domain.ErrCompletionProvider}
	svc := New(completer)

	got, err := svc.Check(context.Background(), "검사할 텍스트")
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if !got.IsClean {
		t.Error("provider failure must pass the text as clean")
	}
}

func TestCheck_MalformedVerdictPassesOpen(t *testing.T) {
	completer := &mockCompleter{response: "판단하기 어렵습니다"}
	svc := New(completer)

	got, err := svc.Check(context.Background(), "검사할 텍스트")
	if err != nil {
		t.Fatalf("expected degradation, got error: %v", err)
	}
	if !got.IsClean {
		t.Error("malformed verdict must pass the text as clean")
	}
}

func TestCheck_StripsCodeFences(t *testing.T) {
	completer := &mockCompleter{response: "```json\n{\"isClean\": false, \"reason\": \"혐오 발언\"}\n```"}
	svc := New(completer)

	got, err := svc.Check(context.Background(), "검사할 텍스트")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsClean || got.Reason != "혐오 발언" {
		t.Errorf("unexpected verdict: %+v", got)
	}
}
