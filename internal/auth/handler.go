package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/codd-collab/lang-server/internal/middleware"
	"github.com/codd-collab/lang-server/internal/models"
	"github.com/codd-collab/lang-server/internal/store"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
}

// Handler holds the registration HTTP handler.
type Handler struct {
	users  UserStore
	hasher PasswordHasher
	log    *zap.Logger
}

func NewHandler(users UserStore, hasher PasswordHasher, log *zap.Logger) *Handler {
	return &Handler{users: users, hasher: hasher, log: log}
}

// Register creates a new user from a username/password pair.
//
// Validation runs before any hashing or store work, so malformed requests pay
// no bcrypt cost. Duplicate usernames are rejected by the store's UNIQUE
// constraint and surface as store.ErrDuplicateUsername; any other failure is
// logged with the request id and answered with a generic message so internal
// error detail never reaches the client.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Password == "" {
		http.Error(w, `{"error":"Username and password are required."}`, http.StatusBadRequest)
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error("hash password",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Username, hashed)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			http.Error(w, `{"error":"Username already taken."}`, http.StatusBadRequest)
			return
		}
		h.log.Error("create user",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, models.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
