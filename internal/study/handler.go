package study

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iamsernine/python-to-do-list/internal/assist"
	"github.com/iamsernine/python-to-do-list/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches all study endpoints to the router.
func (h *Handler) RegisterRoutes(api *mux.Router) {
	api.HandleFunc("/items", h.ListItems).Methods("GET")
	api.HandleFunc("/items", h.AddItem).Methods("POST")
	api.HandleFunc("/items/{id}/toggle", h.ToggleItem).Methods("POST")
	api.HandleFunc("/items/{id}/explain", h.ExplainItem).Methods("POST")
	api.HandleFunc("/items/{id}", h.DeleteItem).Methods("DELETE")

	api.HandleFunc("/categories", h.ListCategories).Methods("GET")
	api.HandleFunc("/progress", h.GetProgress).Methods("GET")

	api.HandleFunc("/export/json", h.ExportJSON).Methods("GET")
	api.HandleFunc("/export/csv", h.ExportCSV).Methods("GET")
	api.HandleFunc("/import", h.Import).Methods("POST")

	api.HandleFunc("/quiz", h.StartQuiz).Methods("POST")
	api.HandleFunc("/quiz/{id}", h.GetQuiz).Methods("GET")
	api.HandleFunc("/quiz/{id}", h.AbandonQuiz).Methods("DELETE")
	api.HandleFunc("/quiz/{id}/answer", h.AnswerQuiz).Methods("POST")
	api.HandleFunc("/quiz/{id}/next", h.AdvanceQuiz).Methods("POST")

	api.HandleFunc("/timer", h.GetTimer).Methods("GET")
	api.HandleFunc("/timer/toggle", h.ToggleTimer).Methods("POST")
	api.HandleFunc("/timer/reset", h.ResetTimer).Methods("POST")

	api.HandleFunc("/credential", h.GetCredential).Methods("GET")
}

// ── Plan Handlers ───────────────────────────────────────

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.service.Items(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, models.ItemListResponse{Items: items, Total: len(items)})
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req models.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.service.AddCustom(req.Title, req.Category)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Title is required"})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Toggle(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	switch err := h.service.Delete(mux.Vars(r)["id"]); {
	case errors.Is(err, ErrNotCustom):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Seed items cannot be deleted"})
	case errors.Is(err, ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Categories)
}

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Progress())
}

// ── Import / Export Handlers ────────────────────────────

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	text, err := h.service.ExportJSON()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Export failed"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="python_study_plan.json"`)
	w.Write([]byte(text))
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="python_study_plan.csv"`)
	w.Write([]byte(h.service.ExportCSV()))
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20) // 10MB limit

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "A file upload named 'file' is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Could not read uploaded file"})
		return
	}

	result, err := h.service.Import(header.Filename, data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid file format"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ── AI Handlers ─────────────────────────────────────────

func (h *Handler) ExplainItem(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Explain(r.Context(), mux.Vars(r)["id"])
	switch {
	case errors.Is(err, ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
	case errors.Is(err, assist.ErrCredentialInvalid):
		writeCredentialInvalid(w)
	case err != nil:
		log.Printf("[handler] explain error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Assistance failed"})
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "category is required"})
		return
	}

	_, state, err := h.service.StartQuiz(r.Context(), req.Category)
	switch {
	case errors.Is(err, ErrNoTopics):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Category has no topics to quiz on"})
	case errors.Is(err, assist.ErrCredentialInvalid):
		writeCredentialInvalid(w)
	case errors.Is(err, assist.ErrUnavailable):
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Unable to generate quiz at this time."})
	case err != nil:
		log.Printf("[handler] quiz start error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Unable to generate quiz at this time."})
	default:
		writeJSON(w, http.StatusCreated, state)
	}
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.QuizState(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	state, err := h.service.AnswerQuiz(mux.Vars(r)["id"], req.Option)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) AdvanceQuiz(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.AdvanceQuiz(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) AbandonQuiz(w http.ResponseWriter, r *http.Request) {
	h.service.AbandonQuiz(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// ── Timer Handlers ──────────────────────────────────────

func (h *Handler) GetTimer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.TimerState())
}

func (h *Handler) ToggleTimer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ToggleTimer())
}

func (h *Handler) ResetTimer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ResetTimer())
}

// ── Credential Handler ──────────────────────────────────

func (h *Handler) GetCredential(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.CredentialResponse{Configured: h.service.CredentialConfigured()})
}

func writeCredentialInvalid(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{
		Error: "The configured API credential is no longer valid. Please set up a new key.",
		Code:  "credential_invalid",
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
