// Package quiz implements the state machine driving one category's
// multiple-choice quiz from the first question through scoring to completion.
package quiz

import (
	"errors"

	"github.com/iamsernine/python-to-do-list/internal/models"
)

// ErrNoQuestions is returned when a session is started with an empty
// question list.
var ErrNoQuestions = errors.New("quiz session requires at least one question")

// Session holds the state of one running quiz. Questions are fixed for the
// session's lifetime; Finished is terminal and never reverts.
type Session struct {
	Questions      []models.QuizQuestion
	CurrentIndex   int
	SelectedOption *int
	Score          int
	Finished       bool
}

func NewSession(questions []models.QuizQuestion) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{Questions: questions}, nil
}

// Current returns the question at the session's current index.
func (s *Session) Current() models.QuizQuestion {
	return s.Questions[s.CurrentIndex]
}

// SelectOption records the user's answer for the current question. The first
// answer wins: once an option is selected, further selections are no-ops
// until Advance moves to the next question. Out-of-range options are ignored.
func (s *Session) SelectOption(i int) {
	if s.Finished || s.SelectedOption != nil {
		return
	}
	if i < 0 || i >= len(s.Current().Options) {
		return
	}
	s.SelectedOption = &i
	if i == s.Current().CorrectAnswer {
		s.Score++
	}
}

// Advance moves to the next question, or finishes the session on the last
// one. It does nothing until an option has been selected.
func (s *Session) Advance() {
	if s.Finished || s.SelectedOption == nil {
		return
	}
	if s.CurrentIndex == len(s.Questions)-1 {
		s.Finished = true
		return
	}
	s.CurrentIndex++
	s.SelectedOption = nil
}
