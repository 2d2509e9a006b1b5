package assist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iamsernine/python-to-do-list/internal/models"
)

const questionsPerQuiz = 3
const optionsPerQuestion = 4

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuizResponse decodes a model response into quiz questions. The model
// is asked for raw JSON but sometimes wraps it in markdown fences, so those
// are stripped first.
func ParseQuizResponse(responseBody string) ([]models.QuizQuestion, error) {
	cleaned := stripCodeFences(responseBody)

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	return questions, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

func validateQuestions(questions []models.QuizQuestion) error {
	var errs []string

	if len(questions) != questionsPerQuiz {
		errs = append(errs, fmt.Sprintf("expected %d questions, got %d", questionsPerQuiz, len(questions)))
	}

	for i, q := range questions {
		qNum := i + 1

		if q.Question == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
		}
		if len(q.Options) != optionsPerQuestion {
			errs = append(errs, fmt.Sprintf("question %d: expected %d options, got %d", qNum, optionsPerQuestion, len(q.Options)))
			continue
		}
		for j, opt := range q.Options {
			if opt == "" {
				errs = append(errs, fmt.Sprintf("question %d: option %d is empty", qNum, j+1))
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= optionsPerQuestion {
			errs = append(errs, fmt.Sprintf("question %d: correctAnswer %d out of range", qNum, q.CorrectAnswer))
		}
		if q.Explanation == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty explanation", qNum))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
