// Package assist is the boundary to the external text-generation service.
// It produces short topic explanations and generated quizzes, and reduces
// every failure to a small taxonomy: a credential that no longer resolves,
// or a generic unavailability the caller degrades around.
package assist

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/iamsernine/python-to-do-list/internal/models"
)

// ErrCredentialInvalid means the configured credential no longer resolves to
// a valid entity. Callers must prompt the user to (re)configure a key rather
// than show a raw error.
var ErrCredentialInvalid = errors.New("assist: credential invalid")

// ErrUnavailable is the generic quiz-generation failure. No partial quiz is
// ever returned alongside it.
var ErrUnavailable = errors.New("assist: service unavailable")

// FallbackExplanation is shown when an explanation request fails for any
// reason other than credential invalidation.
const FallbackExplanation = "Assistance is currently unavailable. Please verify your connection or API configuration."

// maxQuizTopics caps how many topic titles are folded into one quiz prompt.
const maxQuizTopics = 5

type Assistant struct {
	client Client
}

func NewAssistant(client Client) *Assistant {
	return &Assistant{client: client}
}

// Configured reports whether a usable credential is present. Pull-based: the
// handler queries it on demand instead of polling in the background.
func (a *Assistant) Configured() bool {
	if os.Getenv("MOCK_ASSISTANT") == "true" || os.Getenv("USE_CLI_ASSISTANT") == "true" {
		return true
	}
	return os.Getenv("ANTHROPIC_API_KEY") != ""
}

// Explain returns a short explanation for one topic. Transport or service
// errors degrade to the fixed fallback text; only credential invalidation
// propagates, as ErrCredentialInvalid.
func (a *Assistant) Explain(ctx context.Context, topic string) (string, error) {
	text, err := a.client.Generate(ctx, ExplainSystemPrompt(), BuildExplainPrompt(topic))
	if err != nil {
		if isCredentialError(err) {
			return "", ErrCredentialInvalid
		}
		log.Printf("[assist] explain %q failed: %v", topic, err)
		return FallbackExplanation, nil
	}
	return text, nil
}

// GenerateQuiz requests a 3-question quiz over up to five topic titles from
// one category. Failures other than credential invalidation surface as
// ErrUnavailable.
func (a *Assistant) GenerateQuiz(ctx context.Context, categoryName string, topics []string) ([]models.QuizQuestion, error) {
	if len(topics) > maxQuizTopics {
		topics = topics[:maxQuizTopics]
	}

	resp, err := a.client.Generate(ctx, QuizSystemPrompt(), BuildQuizPrompt(categoryName, topics))
	if err != nil {
		if isCredentialError(err) {
			return nil, ErrCredentialInvalid
		}
		log.Printf("[assist] quiz generation for %q failed: %v", categoryName, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	questions, err := ParseQuizResponse(resp)
	if err != nil {
		log.Printf("[assist] quiz response for %q rejected: %v", categoryName, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return questions, nil
}

// isCredentialError recognizes the provider reporting that the configured
// key no longer resolves: an authentication failure, or the key entity not
// being found.
func isCredentialError(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 401 || apierr.StatusCode == 404
	}
	return false
}
