package study

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/iamsernine/python-to-do-list/internal/assist"
	"github.com/iamsernine/python-to-do-list/internal/codec"
	"github.com/iamsernine/python-to-do-list/internal/models"
	"github.com/iamsernine/python-to-do-list/internal/quiz"
	"github.com/iamsernine/python-to-do-list/internal/timer"
)

var (
	ErrItemNotFound    = errors.New("study item not found")
	ErrNotCustom       = errors.New("seed items cannot be deleted")
	ErrEmptyTitle      = errors.New("title is required")
	ErrInvalidFormat   = errors.New("invalid file format")
	ErrNoTopics        = errors.New("category has no topics to quiz on")
	ErrSessionNotFound = errors.New("quiz session not found")
)

// Persister is the save/load boundary the service talks to. Satisfied by
// *Store; tests substitute an in-memory implementation.
type Persister interface {
	Load() ([]models.StudyItem, error)
	Save(items []models.StudyItem) error
}

// Service is the application controller: it owns the study plan, the live
// quiz sessions, and the focus timer, and is their only mutator. One mutex
// serializes all state transitions, mirroring the single-owner event loop of
// the original app.
type Service struct {
	mu        sync.Mutex
	store     Persister
	assistant *assist.Assistant

	items      []models.StudyItem
	sessions   map[string]*quizEntry
	timer      *timer.Timer
	lastNotice string
}

type quizEntry struct {
	category string
	session  *quiz.Session
}

func NewService(store Persister, assistant *assist.Assistant) (*Service, error) {
	items, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("init study service: %w", err)
	}
	log.Printf("Service: loaded %d study items", len(items))

	return &Service{
		store:     store,
		assistant: assistant,
		items:     items,
		sessions:  make(map[string]*quizEntry),
		timer:     timer.New(),
	}, nil
}

// persist saves the current plan. Save failures are logged, never fatal: the
// in-memory state stays authoritative for this process.
func (s *Service) persist() {
	if err := s.store.Save(s.items); err != nil {
		log.Printf("[study] persist failed: %v", err)
	}
}

// ── Plan Operations ─────────────────────────────────────

// Items returns a snapshot of the plan, optionally filtered by a
// case-insensitive title substring.
func (s *Service) Items(query string) []models.StudyItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if query == "" {
		out := make([]models.StudyItem, len(s.items))
		copy(out, s.items)
		return out
	}

	q := strings.ToLower(query)
	out := make([]models.StudyItem, 0, len(s.items))
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Title), q) {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) Progress() models.ProgressResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := 0
	for _, item := range s.items {
		if item.Completed {
			completed++
		}
	}

	percent := 0.0
	if len(s.items) > 0 {
		percent = math.Round(float64(completed) / float64(len(s.items)) * 100)
	}
	return models.ProgressResponse{
		Completed: completed,
		Total:     len(s.items),
		Percent:   percent,
	}
}

// Toggle flips the completed flag of one item. Unknown ids are a no-op and
// leave the collection untouched.
func (s *Service) Toggle(id string) (models.StudyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Completed = !s.items[i].Completed
			s.persist()
			return s.items[i], nil
		}
	}
	return models.StudyItem{}, ErrItemNotFound
}

// AddCustom appends a user-defined topic. The category is not validated
// against the fixed set; unknown categories are accepted as-is.
func (s *Service) AddCustom(title, category string) (models.StudyItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.StudyItem{}, ErrEmptyTitle
	}

	item := models.StudyItem{
		ID:       "custom-" + uuid.NewString(),
		Title:    title,
		Category: category,
		VideoURL: models.VideoSearchURL(title),
		Custom:   true,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	s.persist()
	return item, nil
}

// Delete removes a custom item. Seed items are not deletable.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if !s.items[i].Custom {
			return ErrNotCustom
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persist()
		return nil
	}
	return ErrItemNotFound
}

// ── Import / Export ─────────────────────────────────────

// Import replaces the whole plan from an uploaded file. The format is picked
// by filename extension: .csv uses the delimited decoder, anything else the
// JSON decoder. On decode failure the current plan is left untouched.
func (s *Service) Import(filename string, data []byte) (models.ImportResponse, error) {
	var items []models.StudyItem
	format := "json"

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		format = "csv"
		items = codec.UnmarshalCSV(string(data))
	} else {
		parsed, err := codec.UnmarshalJSON(string(data))
		if err != nil {
			return models.ImportResponse{}, ErrInvalidFormat
		}
		items = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.persist()
	return models.ImportResponse{Imported: len(items), Format: format}, nil
}

func (s *Service) ExportJSON() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.MarshalJSON(s.items)
}

func (s *Service) ExportCSV() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return codec.MarshalCSV(s.items)
}

// ── AI Assistance ───────────────────────────────────────

func (s *Service) CredentialConfigured() bool {
	return s.assistant.Configured()
}

// Explain fetches a short explanation for one item's topic.
func (s *Service) Explain(ctx context.Context, id string) (models.ExplainResponse, error) {
	s.mu.Lock()
	var title string
	for _, item := range s.items {
		if item.ID == id {
			title = item.Title
			break
		}
	}
	s.mu.Unlock()

	if title == "" {
		return models.ExplainResponse{}, ErrItemNotFound
	}

	text, err := s.assistant.Explain(ctx, title)
	if err != nil {
		return models.ExplainResponse{}, err
	}
	return models.ExplainResponse{Topic: title, Explanation: text}, nil
}

// ── Quiz Sessions ───────────────────────────────────────

// StartQuiz generates a quiz over the first five topics of a category and
// opens a session for it. A category with no items cannot be quizzed.
func (s *Service) StartQuiz(ctx context.Context, categoryID string) (string, models.QuizStateResponse, error) {
	s.mu.Lock()
	var topics []string
	for _, item := range s.items {
		if item.Category == categoryID {
			topics = append(topics, item.Title)
			if len(topics) == 5 {
				break
			}
		}
	}
	s.mu.Unlock()

	if len(topics) == 0 {
		return "", models.QuizStateResponse{}, ErrNoTopics
	}

	questions, err := s.assistant.GenerateQuiz(ctx, models.CategoryName(categoryID), topics)
	if err != nil {
		return "", models.QuizStateResponse{}, err
	}

	session, err := quiz.NewSession(questions)
	if err != nil {
		// Shape is validated at parse time; an empty set here means the
		// gateway contract was broken.
		return "", models.QuizStateResponse{}, fmt.Errorf("%w: %v", assist.ErrUnavailable, err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &quizEntry{category: categoryID, session: session}
	resp := quizState(id, s.sessions[id])
	s.mu.Unlock()

	return id, resp, nil
}

func (s *Service) QuizState(id string) (models.QuizStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return models.QuizStateResponse{}, ErrSessionNotFound
	}
	return quizState(id, entry), nil
}

// AnswerQuiz records a selection on the session's current question. Repeat
// selections are no-ops: the first answer wins.
func (s *Service) AnswerQuiz(id string, option int) (models.QuizStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return models.QuizStateResponse{}, ErrSessionNotFound
	}
	entry.session.SelectOption(option)
	return quizState(id, entry), nil
}

// AdvanceQuiz moves the session forward. A session that finishes is removed
// from the registry after its final state is captured.
func (s *Service) AdvanceQuiz(id string) (models.QuizStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return models.QuizStateResponse{}, ErrSessionNotFound
	}
	entry.session.Advance()

	resp := quizState(id, entry)
	if entry.session.Finished {
		delete(s.sessions, id)
	}
	return resp, nil
}

// AbandonQuiz discards a session without finishing it, e.g. when the client
// closes the quiz view. Unknown ids are ignored.
func (s *Service) AbandonQuiz(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func quizState(id string, entry *quizEntry) models.QuizStateResponse {
	sess := entry.session
	var selected *int
	if sess.SelectedOption != nil {
		v := *sess.SelectedOption
		selected = &v
	}
	return models.QuizStateResponse{
		SessionID:      id,
		Category:       entry.category,
		Question:       sess.Current(),
		CurrentIndex:   sess.CurrentIndex,
		TotalQuestions: len(sess.Questions),
		SelectedOption: selected,
		Score:          sess.Score,
		Finished:       sess.Finished,
	}
}

// ── Focus Timer ─────────────────────────────────────────

// TickTimer advances the countdown by one second. Called by the periodic
// driver in main. The returned notice is non-empty only on a period change.
func (s *Service) TickTimer() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	notice := s.timer.Tick()
	if notice != "" {
		s.lastNotice = notice
		log.Printf("[timer] %s", notice)
	}
	return notice
}

func (s *Service) ToggleTimer() models.TimerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Toggle()
	return s.timerState()
}

func (s *Service) ResetTimer() models.TimerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer.Reset()
	return s.timerState()
}

func (s *Service) TimerState() models.TimerResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timerState()
}

func (s *Service) timerState() models.TimerResponse {
	return models.TimerResponse{
		RemainingSeconds: s.timer.RemainingSeconds,
		IsRunning:        s.timer.IsRunning,
		IsBreakPeriod:    s.timer.IsBreakPeriod,
		Display:          s.timer.Display(),
		LastNotice:       s.lastNotice,
	}
}
