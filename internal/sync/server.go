package sync

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lifegame-app/lifegame/internal/domain"
	"github.com/lifegame-app/lifegame/internal/infra/sqlite"
	"github.com/lifegame-app/lifegame/internal/security"
)

// Server hosts the account endpoints: register, login, and push/pull
// sync. Accounts live in the sqlite users table.
type Server struct {
	db *sqlite.DB
}

// NewServer creates a sync server over the given store.
func NewServer(db *sqlite.DB) *Server {
	return &Server{db: db}
}

// Handler returns the chi router with the auth routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/sync", s.handleSync)
	})

	return r
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	name := req.Name
	if name == "" {
		name = req.Username
	}
	user := domain.User{
		Username: req.Username,
		Name:     name,
		Baseline: domain.DefaultBaseline,
		Goals:    []domain.Goal{},
		History:  []domain.HistoryEntry{},
	}

	err := s.db.CreateUser(user, security.HashPassword(req.Password))
	if errors.Is(err, domain.ErrUserExists) {
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, apiResponse{
		Message: "User registered successfully",
		User:    &user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, ok := s.authenticate(w, req.Username, req.Password)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Message: "Login successful",
		User:    user,
	})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, ok := s.authenticate(w, req.Username, req.Password)
	if !ok {
		return
	}

	// Apply only the fields the client sent. Zero values count as
	// absent, so this merge can never blank a field.
	if req.Data.Name != "" {
		user.Name = req.Data.Name
	}
	if req.Data.Baseline != 0 {
		user.Baseline = req.Data.Baseline
	}
	if len(req.Data.Goals) > 0 {
		user.Goals = req.Data.Goals
	}
	if len(req.Data.History) > 0 {
		user.History = req.Data.History
	}

	if err := s.db.UpdateUser(*user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{
		Message: "Sync successful",
		User:    user,
	})
}

// authenticate loads the user and checks the shared secret, writing the
// error response itself. Unknown usernames report as invalid credentials
// so the endpoint doesn't confirm which accounts exist.
func (s *Server) authenticate(w http.ResponseWriter, username, password string) (*domain.User, bool) {
	user, digest, err := s.db.GetUser(username)
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if !security.VerifyPassword(password, digest) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return nil, false
	}
	return user, true
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiResponse{Error: msg})
}
