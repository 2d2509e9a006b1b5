package models

// StudyItem is one curriculum topic on the checklist. JSON field names match
// the on-disk export format, so a plan exported from an older client imports
// cleanly.
type StudyItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Category  string `json:"category"`
	VideoURL  string `json:"videoUrl"`
	Custom    bool   `json:"custom,omitempty"`
}

// Category is a fixed taxonomy entry. The set is static for the process
// lifetime and not user-editable.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// QuizQuestion is one generated multiple-choice question. Options always has
// exactly four entries; CorrectAnswer is a zero-based index into it.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// ── Request Types ─────────────────────────────────────

type AddItemRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type StartQuizRequest struct {
	Category string `json:"category"`
}

type AnswerRequest struct {
	Option int `json:"option"`
}

// ── Response Types ────────────────────────────────────

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ItemListResponse struct {
	Items []StudyItem `json:"items"`
	Total int         `json:"total"`
}

type ProgressResponse struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

type ImportResponse struct {
	Imported int    `json:"imported"`
	Format   string `json:"format"`
}

type ExplainResponse struct {
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

type QuizStateResponse struct {
	SessionID      string       `json:"session_id"`
	Category       string       `json:"category"`
	Question       QuizQuestion `json:"question"`
	CurrentIndex   int          `json:"current_index"`
	TotalQuestions int          `json:"total_questions"`
	SelectedOption *int         `json:"selected_option"`
	Score          int          `json:"score"`
	Finished       bool         `json:"finished"`
}

type TimerResponse struct {
	RemainingSeconds int    `json:"remaining_seconds"`
	IsRunning        bool   `json:"is_running"`
	IsBreakPeriod    bool   `json:"is_break_period"`
	Display          string `json:"display"`
	LastNotice       string `json:"last_notice,omitempty"`
}

type CredentialResponse struct {
	Configured bool `json:"configured"`
}
