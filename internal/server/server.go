package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"inmocrm/internal/app"
	"inmocrm/internal/ratelimit"
	"inmocrm/internal/sheets"
	"inmocrm/internal/util"
	"inmocrm/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App           *app.App
	Sheets        *sheets.Client
	RedisAddr     string
	RedisPassword string

	// TrustedProxies lists peers whose forwarded headers are honored when
	// resolving the caller address. Empty means trust none.
	TrustedProxies []string

	SignupRateLimitPerMinute int
	LoginRateLimitPerMinute  int
}

// Server exposes the CRM HTTP API.
type Server struct {
	app           *app.App
	sheets        *sheets.Client
	mux           *http.ServeMux
	trusted       *util.TrustedProxies
	signupLimiter *ratelimit.FixedWindowLimiter
	loginLimiter  *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil, errors.New("redis addr is required for rate limiting")
	}
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("parse trusted proxies: %w", err)
	}

	signupLimit := cfg.SignupRateLimitPerMinute
	if signupLimit <= 0 {
		signupLimit = 5
	}
	loginLimit := cfg.LoginRateLimitPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	signupLimiter, err := ratelimit.NewFixedWindowLimiter(rdb, "inmocrm:ratelimit:signup", signupLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init signup limiter: %w", err)
	}
	loginLimiter, err := ratelimit.NewFixedWindowLimiter(rdb, "inmocrm:ratelimit:login", loginLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init login limiter: %w", err)
	}

	s := &Server{
		app:           cfg.App,
		sheets:        cfg.Sheets,
		mux:           http.NewServeMux(),
		trusted:       trusted,
		signupLimiter: signupLimiter,
		loginLimiter:  loginLimiter,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped in the middleware chain.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.mux
	h = util.WithCORS(h)
	h = util.WithSecurityHeaders(h)
	h = util.WithRequestLog(h, s.trusted)
	h = util.WithRequestID(h)
	h = util.WithRecovery(h)
	return h
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	// auth
	s.mux.HandleFunc("/api/auth/signup", s.handleSignup)
	s.mux.HandleFunc("/api/auth/login", s.handleLogin)
	s.mux.HandleFunc("/api/auth/logout", s.handleLogout)
	s.mux.Handle("/api/auth/me", s.authenticated(s.handleMe))

	// owned CRM collections
	s.mux.Handle("/api/properties", s.authenticated(s.handleProperties))
	s.mux.Handle("/api/clients", s.authenticated(s.handleClients))
	s.mux.Handle("/api/appointments", s.authenticated(s.handleAppointments))
	s.mux.Handle("/api/sales", s.authenticated(s.handleSales))

	// admin
	s.mux.Handle("/api/admin/users", s.adminOnly(s.handleAdminUsers))
	s.mux.Handle("/api/admin/properties", s.adminOnly(s.handleAdminProperties))
	s.mux.Handle("/api/admin/properties/", s.adminOnly(s.handleAdminProperties))
	s.mux.Handle("/api/admin/clients", s.adminOnly(s.handleAdminClients))
	s.mux.Handle("/api/admin/clients/", s.adminOnly(s.handleAdminClients))
	s.mux.Handle("/api/admin/appointments", s.adminOnly(s.handleAdminAppointments))
	s.mux.Handle("/api/admin/appointments/", s.adminOnly(s.handleAdminAppointments))
	s.mux.Handle("/api/admin/sales", s.adminOnly(s.handleAdminSales))
	s.mux.Handle("/api/admin/sales/", s.adminOnly(s.handleAdminSales))

	// live listings proxy
	s.mux.Handle("/api/properties-data", s.authenticated(s.handleListingsFeed))
	s.mux.Handle("/api/properties-data/update", s.authenticated(s.handleListingUpdate))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// auth wrappers
type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

func (s *Server) adminOnly(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authorize(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !user.Admin {
			slog.Warn("admin access denied", "user_id", user.ID, "path", r.URL.Path)
			writeMessage(w, http.StatusForbidden, "Unauthorized: Admin access required")
			return
		}
		next(w, r, user)
	})
}

// authorize resolves the caller from the bearer token. Identity is always
// request-scoped; nothing falls back to a fixed user.
func (s *Server) authorize(r *http.Request) (domain.User, bool) {
	token, ok := bearerToken(r)
	if !ok {
		return domain.User{}, false
	}
	return s.app.UserFromToken(token)
}

// auth handlers

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.signupLimiter, "too many signup attempts") {
		return
	}
	var req signupRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.SignUp(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allowRate(w, r, s.loginLimiter, "too many login attempts") {
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	user, token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("user logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := s.app.Logout(token); err != nil {
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user domain.User) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// helpers

// allowRate keys the quota on the resolved caller address. With no trusted
// proxies configured that is the connection peer, so forwarded headers from
// the client itself cannot widen the quota.
func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter, msg string) bool {
	key := r.URL.Path + "|" + util.ClientIP(r, s.trusted)
	if limiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, msg)
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
