package handlers

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/auth"
	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	tokens   ports.TokenService
	tasks    ports.TaskEnqueuer
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, tokens ports.TokenService, tasks ports.TaskEnqueuer, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		tokens:   tokens,
		tasks:    tasks,
		log:      log,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		AuditEmit(h.log, r, h.tasks, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		writeDomainErr(w, h.log, err)
		return
	}
	if result.WelcomeErr != nil {
		h.log.Warn().Err(result.WelcomeErr).Str("user_id", result.User.ID.String()).Msg("welcome email not queued")
	}
	AuditEmit(h.log, r, h.tasks, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, presentSession(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	body.Email = strings.TrimSpace(body.Email)
	if violations := structViolations(&body); len(violations) > 0 {
		writeValidationErr(w, violations)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.tasks, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(w, h.log, err)
		return
	}
	AuditEmit(h.log, r, h.tasks, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, presentSession(result))
}

// Verify reports the claims of the presented bearer token. Requires AuthValidator middleware.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	claims, err := h.tokens.Verify(token)
	if err != nil {
		middleware.RecordAuthAttempt("verify", false)
		writeDomainErr(w, h.log, domerrors.ErrInvalidToken)
		return
	}
	middleware.RecordAuthAttempt("verify", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":      true,
		"user_id":    claims.Subject.String(),
		"email":      claims.Email,
		"name":       claims.Name,
		"expires_at": claims.ExpiresAt,
	})
}

func presentSession(result *auth.SessionResult) sessionResponse {
	return sessionResponse{
		User:      presentUser(result.User),
		Token:     result.Token,
		TokenType: "Bearer",
		ExpiresIn: result.ExpiresIn,
	}
}
