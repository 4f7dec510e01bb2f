package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/resume-matcher/internal/audit"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
)

// sessionSubject identifies tokens issued by this service.
const sessionSubject = "resume-matcher-client"

// JWTService issues and validates the short-lived session tokens clients
// receive in exchange for the static API token.
type JWTService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTService creates a JWT service from the authentication configuration.
func NewJWTService(cfg *config.AuthConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.JWTSecret),
		expiration: time.Duration(cfg.JWTExpirationHours) * time.Hour,
	}
}

// GenerateToken issues a session token.
func (s *JWTService) GenerateToken() (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks a session token's signature, expiry and subject.
func (s *JWTService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid token claims")
	}
	if claims.Subject != sessionSubject {
		return fmt.Errorf("unexpected token subject")
	}
	return nil
}

// bearerVerifier accepts either the static API token or a session JWT.
// It implements middleware.TokenVerifier.
type bearerVerifier struct {
	auth *config.AuthConfig
	jwt  *JWTService
}

func (v *bearerVerifier) Verify(token string) bool {
	if v.auth.VerifyToken(token) {
		return true
	}
	return v.jwt != nil && v.jwt.ValidateToken(token) == nil
}

// withAuth requires a bearer token on every route except the health check
// and the token exchange itself. When no token hash is configured the API
// is open and the middleware passes requests through untouched.
func (s *Server) withAuth(next http.Handler) http.Handler {
	if !s.auth.Enabled() {
		return next
	}

	verifier := &bearerVerifier{auth: s.auth, jwt: s.jwtService}
	authenticated := middleware.Auth(verifier)(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/auth/token" || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		authenticated.ServeHTTP(w, r)
	})
}

// TokenExchangeRequest carries the static API token to exchange for a session token.
type TokenExchangeRequest struct {
	Token string `json:"token" validate:"required"`
}

// TokenExchangeResponse returns the issued session token.
type TokenExchangeResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleIssueToken exchanges the static API token for a short-lived JWT.
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Enabled() {
		s.errorResponse(w, http.StatusBadRequest, "Authentication is not enabled")
		return
	}

	var req TokenExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	if !s.auth.VerifyToken(req.Token) {
		s.recorder.Record(db.AuditEvent{
			EventType: audit.EventTypeAuth,
			Action:    "token_exchange_denied",
			Endpoint:  r.URL.Path,
		})
		s.errorResponse(w, http.StatusUnauthorized, "Invalid API token")
		return
	}

	token, expiresAt, err := s.jwtService.GenerateToken()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	s.recorder.Record(db.AuditEvent{
		EventType: audit.EventTypeAuth,
		Action:    "token_exchange",
		Endpoint:  r.URL.Path,
	})
	s.jsonResponse(w, http.StatusOK, TokenExchangeResponse{Token: token, ExpiresAt: expiresAt})
}
