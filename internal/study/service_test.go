package study

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iamsernine/python-to-do-list/internal/assist"
	"github.com/iamsernine/python-to-do-list/internal/codec"
	"github.com/iamsernine/python-to-do-list/internal/models"
)

// memStore keeps the persisted blob in memory for tests.
type memStore struct {
	items     []models.StudyItem
	saveCalls int
}

func (m *memStore) Load() ([]models.StudyItem, error) {
	out := make([]models.StudyItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *memStore) Save(items []models.StudyItem) error {
	m.items = make([]models.StudyItem, len(items))
	copy(m.items, items)
	m.saveCalls++
	return nil
}

func newTestService(t *testing.T, items []models.StudyItem) (*Service, *memStore) {
	t.Helper()
	store := &memStore{items: items}
	svc, err := NewService(store, assist.NewAssistant(assist.NewMockClient()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func planFixture() []models.StudyItem {
	return []models.StudyItem{
		{ID: "1-1", Category: "basics", Title: "Loops: while, for", VideoURL: "https://example.com/loops"},
		{ID: "1-2", Category: "basics", Title: "Conditional Logic", VideoURL: "https://example.com/cond"},
		{ID: "custom-1", Category: "advanced", Title: "Walrus operator", VideoURL: "https://example.com/walrus", Custom: true},
	}
}

func TestToggle(t *testing.T) {
	svc, store := newTestService(t, planFixture())

	item, err := svc.Toggle("1-2")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !item.Completed {
		t.Error("expected item marked completed")
	}

	// Only the toggled item changed.
	items := svc.Items("")
	for _, it := range items {
		if it.ID != "1-2" && it.Completed {
			t.Errorf("item %s unexpectedly completed", it.ID)
		}
	}

	if store.saveCalls != 1 {
		t.Errorf("expected 1 save, got %d", store.saveCalls)
	}
}

func TestToggle_UnknownIDIsNoOp(t *testing.T) {
	svc, store := newTestService(t, planFixture())
	before := svc.Items("")

	if _, err := svc.Toggle("nope"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	after := svc.Items("")
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("collection changed at %d: %+v -> %+v", i, before[i], after[i])
		}
	}
	if store.saveCalls != 0 {
		t.Errorf("no-op toggle should not persist, got %d saves", store.saveCalls)
	}
}

func TestAddCustom(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	item, err := svc.AddCustom("Garbage Collection", "basics")
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}

	if !item.Custom {
		t.Error("expected custom flag")
	}
	if !strings.HasPrefix(item.ID, "custom-") {
		t.Errorf("expected custom- id prefix, got %q", item.ID)
	}
	if item.VideoURL != models.VideoSearchURL("Garbage Collection") {
		t.Errorf("unexpected video URL: %q", item.VideoURL)
	}
	if len(svc.Items("")) != 4 {
		t.Errorf("expected 4 items, got %d", len(svc.Items("")))
	}
}

func TestAddCustom_EmptyTitle(t *testing.T) {
	svc, _ := newTestService(t, planFixture())
	if _, err := svc.AddCustom("   ", "basics"); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	if err := svc.Delete("1-1"); !errors.Is(err, ErrNotCustom) {
		t.Fatalf("seed delete: expected ErrNotCustom, got %v", err)
	}
	if len(svc.Items("")) != 3 {
		t.Error("rejected delete must not change the collection")
	}

	if err := svc.Delete("custom-1"); err != nil {
		t.Fatalf("custom delete: %v", err)
	}
	items := svc.Items("")
	if len(items) != 2 {
		t.Fatalf("expected 2 items after delete, got %d", len(items))
	}
	for _, it := range items {
		if it.ID == "custom-1" {
			t.Error("deleted item still present")
		}
	}

	if err := svc.Delete("ghost"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestItems_SearchFilter(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	items := svc.Items("loop")
	if len(items) != 1 || items[0].ID != "1-1" {
		t.Fatalf("unexpected search result: %+v", items)
	}

	if got := svc.Items("WALRUS"); len(got) != 1 {
		t.Errorf("search should be case-insensitive, got %d items", len(got))
	}
}

func TestProgress(t *testing.T) {
	plan := planFixture()
	plan[0].Completed = true
	svc, _ := newTestService(t, plan)

	p := svc.Progress()
	if p.Completed != 1 || p.Total != 3 {
		t.Errorf("unexpected progress: %+v", p)
	}
	if p.Percent != 33 {
		t.Errorf("expected 33 percent, got %v", p.Percent)
	}
}

func TestImport_JSONReplacesPlan(t *testing.T) {
	svc, store := newTestService(t, planFixture())

	replacement := []models.StudyItem{
		{ID: "x-1", Category: "libraries", Title: "NumPy basics", VideoURL: "https://example.com/numpy"},
	}
	blob, err := codec.MarshalJSON(replacement)
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Import("plan.json", []byte(blob))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Imported != 1 || result.Format != "json" {
		t.Errorf("unexpected import result: %+v", result)
	}
	if items := svc.Items(""); len(items) != 1 || items[0].ID != "x-1" {
		t.Errorf("plan not replaced: %+v", items)
	}
	if store.saveCalls != 1 {
		t.Errorf("expected import to persist once, got %d", store.saveCalls)
	}
}

func TestImport_MalformedJSONLeavesPlanUntouched(t *testing.T) {
	svc, store := newTestService(t, planFixture())

	if _, err := svc.Import("plan.json", []byte("{broken")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	if len(svc.Items("")) != 3 {
		t.Error("failed import must leave the plan untouched")
	}
	if store.saveCalls != 0 {
		t.Error("failed import must not persist")
	}
}

func TestImport_CSVBestEffort(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	text := strings.Join([]string{
		codec.CSVHeader,
		`a-1,basics,"Loops",true,https://example.com/a`,
		`short,row`,
		`a-2,basics,"Sets",false,https://example.com/b`,
	}, "\n")

	result, err := svc.Import("plan.csv", []byte(text))
	if err != nil {
		t.Fatalf("csv import: %v", err)
	}
	if result.Imported != 2 || result.Format != "csv" {
		t.Errorf("unexpected import result: %+v", result)
	}
}

func TestExportRoundTrips(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	jsonText, err := svc.ExportJSON()
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	fromJSON, err := codec.UnmarshalJSON(jsonText)
	if err != nil {
		t.Fatalf("reparse json: %v", err)
	}
	if len(fromJSON) != 3 {
		t.Errorf("expected 3 items from JSON export, got %d", len(fromJSON))
	}

	fromCSV := codec.UnmarshalCSV(svc.ExportCSV())
	if len(fromCSV) != 3 {
		t.Errorf("expected 3 items from CSV export, got %d", len(fromCSV))
	}
}

// ── Quiz Session Flow ───────────────────────────────────

func TestQuizFlow(t *testing.T) {
	svc, _ := newTestService(t, planFixture())
	ctx := context.Background()

	id, state, err := svc.StartQuiz(ctx, "basics")
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}
	if state.TotalQuestions != 3 || state.CurrentIndex != 0 || state.Finished {
		t.Fatalf("unexpected initial state: %+v", state)
	}

	for i := 0; i < 3; i++ {
		state, err = svc.AnswerQuiz(id, state.Question.CorrectAnswer)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		state, err = svc.AdvanceQuiz(id)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	if !state.Finished {
		t.Error("expected finished quiz")
	}
	if state.Score != 3 {
		t.Errorf("expected score 3, got %d", state.Score)
	}

	// Finished sessions are discarded.
	if _, err := svc.QuizState(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session gone after finish, got %v", err)
	}
}

func TestStartQuiz_EmptyCategory(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	if _, _, err := svc.StartQuiz(context.Background(), "hashing"); !errors.Is(err, ErrNoTopics) {
		t.Fatalf("expected ErrNoTopics, got %v", err)
	}
}

func TestAbandonQuiz(t *testing.T) {
	svc, _ := newTestService(t, planFixture())

	id, _, err := svc.StartQuiz(context.Background(), "basics")
	if err != nil {
		t.Fatalf("start quiz: %v", err)
	}

	svc.AbandonQuiz(id)
	if _, err := svc.QuizState(id); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session gone after abandon, got %v", err)
	}
}

// ── Timer Through the Controller ────────────────────────

func TestTimerLifecycle(t *testing.T) {
	svc, _ := newTestService(t, nil)

	state := svc.TimerState()
	if state.RemainingSeconds != 1500 || state.IsRunning || state.IsBreakPeriod {
		t.Fatalf("unexpected initial timer state: %+v", state)
	}
	if state.Display != "25:00" {
		t.Errorf("expected display 25:00, got %q", state.Display)
	}

	svc.ToggleTimer()
	for i := 0; i < 1500; i++ {
		svc.TickTimer()
	}

	state = svc.TimerState()
	if state.IsRunning {
		t.Error("expected timer stopped after focus period")
	}
	if !state.IsBreakPeriod {
		t.Error("expected break period")
	}
	if state.RemainingSeconds != 300 {
		t.Errorf("expected 300 seconds, got %d", state.RemainingSeconds)
	}
	if state.LastNotice == "" {
		t.Error("expected a period-change notice")
	}

	state = svc.ResetTimer()
	if state.RemainingSeconds != 300 || !state.IsBreakPeriod || state.IsRunning {
		t.Errorf("unexpected state after reset on break: %+v", state)
	}
}
