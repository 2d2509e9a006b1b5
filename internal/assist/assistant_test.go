package assist

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// stubClient returns a canned response or error for every prompt.
type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return s.response, s.err
}

func TestExplain_Success(t *testing.T) {
	a := NewAssistant(&stubClient{response: "Lists are ordered, mutable sequences."})

	text, err := a.Explain(context.Background(), "Lists: append, insert, pop")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if text != "Lists are ordered, mutable sequences." {
		t.Errorf("unexpected explanation: %q", text)
	}
}

func TestExplain_GenericFailureFallsBack(t *testing.T) {
	a := NewAssistant(&stubClient{err: errors.New("connection refused")})

	text, err := a.Explain(context.Background(), "Tuples")
	if err != nil {
		t.Fatalf("generic failures must not propagate, got: %v", err)
	}
	if text != FallbackExplanation {
		t.Errorf("expected fallback text, got %q", text)
	}
}

func TestGenerateQuiz_MockClient(t *testing.T) {
	a := NewAssistant(NewMockClient())

	questions, err := a.GenerateQuiz(context.Background(), "Data Structures", []string{"Lists", "Dictionaries"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
	}
}

func TestGenerateQuiz_FailureIsUnavailable(t *testing.T) {
	a := NewAssistant(&stubClient{err: errors.New("overloaded")})

	_, err := a.GenerateQuiz(context.Background(), "Hashing & Algorithms", []string{"Collision handling"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got: %v", err)
	}
}

func TestGenerateQuiz_BadResponseIsUnavailable(t *testing.T) {
	a := NewAssistant(&stubClient{response: "Sorry, I can't produce JSON today."})

	_, err := a.GenerateQuiz(context.Background(), "Core Basics & Control Flow", []string{"Loops"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for unparseable response, got: %v", err)
	}
}

func TestGenerateQuiz_TopicCap(t *testing.T) {
	var captured string
	a := NewAssistant(clientFunc(func(ctx context.Context, system, user string) (string, error) {
		captured = user
		return validQuizJSON(), nil
	}))

	topics := []string{"one", "two", "three", "four", "five", "six", "seven"}
	if _, err := a.GenerateQuiz(context.Background(), "Numerical Libraries", topics); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if strings.Contains(captured, "six") || strings.Contains(captured, "seven") {
		t.Errorf("prompt should carry at most 5 topics: %q", captured)
	}
	if !strings.Contains(captured, "five") {
		t.Errorf("prompt missing fifth topic: %q", captured)
	}
}

// clientFunc adapts a function to the Client interface.
type clientFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

func (f clientFunc) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return f(ctx, systemPrompt, userPrompt)
}
