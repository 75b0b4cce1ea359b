package languages

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/codd-collab/lang-server/internal/middleware"
	"github.com/codd-collab/lang-server/internal/models"
)

// LanguageStore defines the interface for language persistence.
type LanguageStore interface {
	ListLanguages(ctx context.Context) ([]models.Language, error)
	CreateLanguage(ctx context.Context, name string, coolness int) (*models.Language, error)
}

// Handler holds the languages HTTP handlers.
type Handler struct {
	store LanguageStore
	log   *zap.Logger
}

func NewHandler(store LanguageStore, log *zap.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// List returns every language, coolest first, wrapped in a data envelope.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.store.ListLanguages(r.Context())
	if err != nil {
		h.log.Error("list languages",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.LanguageList{Data: langs})
}

// Create inserts a new language. Coolness must be present in the body;
// a coolness of 0 is valid, a missing field is not.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Coolness == nil {
		http.Error(w, `{"error":"Missing required fields: name and coolness."}`, http.StatusBadRequest)
		return
	}

	lang, err := h.store.CreateLanguage(r.Context(), req.Name, *req.Coolness)
	if err != nil {
		h.log.Error("create language",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, lang)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
