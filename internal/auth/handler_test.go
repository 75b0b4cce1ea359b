package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codd-collab/lang-server/internal/auth"
	"github.com/codd-collab/lang-server/internal/models"
	"github.com/codd-collab/lang-server/internal/store"
)

type stubStore struct {
	err      error
	calls    int
	lastHash string
}

func (s *stubStore) CreateUser(_ context.Context, username, passwordHash string) (*models.User, error) {
	s.calls++
	s.lastHash = passwordHash
	if s.err != nil {
		return nil, s.err
	}
	return &models.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

type stubHasher struct {
	err   error
	calls int
}

func (h *stubHasher) Hash(password string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "hashed-" + password, nil
}

func doRegister(t *testing.T, h *auth.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Register(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	users := &stubStore{}
	hasher := &stubHasher{}
	h := auth.NewHandler(users, hasher, zap.NewNop())

	w := doRegister(t, h, `{"username":"ada","password":"s3cret"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"username":"ada"}`, w.Body.String())
	assert.Equal(t, 1, users.calls)
	assert.Equal(t, "hashed-s3cret", users.lastHash)
}

func TestRegister_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty username", `{"username":"","password":"x"}`},
		{"empty password", `{"username":"ada","password":""}`},
		{"both absent", `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &stubStore{}
			hasher := &stubHasher{}
			h := auth.NewHandler(users, hasher, zap.NewNop())

			w := doRegister(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"Username and password are required."}`, w.Body.String())
			// Validation must run before any hashing or store work.
			assert.Zero(t, hasher.calls)
			assert.Zero(t, users.calls)
		})
	}
}

func TestRegister_InvalidBody(t *testing.T) {
	h := auth.NewHandler(&stubStore{}, &stubHasher{}, zap.NewNop())
	w := doRegister(t, h, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := &stubStore{err: store.ErrDuplicateUsername}
	h := auth.NewHandler(users, &stubHasher{}, zap.NewNop())

	w := doRegister(t, h, `{"username":"ada","password":"s3cret"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Username already taken."}`, w.Body.String())
}

func TestRegister_StoreFailureIsGeneric(t *testing.T) {
	users := &stubStore{err: errors.New("disk I/O error on page 7")}
	h := auth.NewHandler(users, &stubHasher{}, zap.NewNop())

	w := doRegister(t, h, `{"username":"ada","password":"s3cret"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	// Raw store detail must never reach the client.
	assert.NotContains(t, w.Body.String(), "disk I/O")
}

func TestRegister_HasherFailure(t *testing.T) {
	users := &stubStore{}
	hasher := &stubHasher{err: errors.New("bcrypt fault")}
	h := auth.NewHandler(users, hasher, zap.NewNop())

	w := doRegister(t, h, `{"username":"ada","password":"s3cret"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	// No insert may be attempted when hashing fails.
	assert.Zero(t, users.calls)
}

// End-to-end: concurrent registrations of the same username against a real
// SQLite database yield exactly one 201 and duplicates for the rest.
func TestRegister_ConcurrentSameUsername(t *testing.T) {
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := store.NewSQLiteStore(db)
	require.NoError(t, st.Migrate(context.Background()))

	h := auth.NewHandler(st, auth.BcryptHasher{}, zap.NewNop())
	srv := httptest.NewServer(http.HandlerFunc(h.Register))
	t.Cleanup(srv.Close)

	const n = 8
	codes := make([]int, n)
	bodies := make([]string, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(srv.URL, "application/json",
				bytes.NewReader([]byte(`{"username":"ada","password":"s3cret"}`)))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			b, _ := io.ReadAll(resp.Body)
			codes[i] = resp.StatusCode
			bodies[i] = string(b)
		}(i)
	}
	wg.Wait()

	created, duplicate := 0, 0
	for i := 0; i < n; i++ {
		switch codes[i] {
		case http.StatusCreated:
			created++
			var got models.RegisterResponse
			require.NoError(t, json.Unmarshal([]byte(bodies[i]), &got))
			assert.Equal(t, "ada", got.Username)
		case http.StatusBadRequest:
			duplicate++
			assert.JSONEq(t, `{"error":"Username already taken."}`, bodies[i])
		default:
			t.Fatalf("unexpected status %d: %s", codes[i], bodies[i])
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, duplicate)
}
