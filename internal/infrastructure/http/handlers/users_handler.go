package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/ports"
	"github.com/amirhosseinghanipour/todoapi/internal/application/user"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/middleware"
)

// UsersHandler handles /api/users/me. Requires JWT auth.
type UsersHandler struct {
	getProfile    *user.GetProfile
	updateProfile *user.UpdateProfile
	verifyEmail   *user.VerifyEmail
	deleteAccount *user.DeleteAccount
	tasks         ports.TaskEnqueuer
	log           zerolog.Logger
}

func NewUsersHandler(getProfile *user.GetProfile, updateProfile *user.UpdateProfile, verifyEmail *user.VerifyEmail, deleteAccount *user.DeleteAccount, tasks ports.TaskEnqueuer, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		getProfile:    getProfile,
		updateProfile: updateProfile,
		verifyEmail:   verifyEmail,
		deleteAccount: deleteAccount,
		tasks:         tasks,
		log:           log,
	}
}

// Me returns the current user from the JWT.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	u, err := h.getProfile.Execute(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, presentUser(u))
}

func (h *UsersHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Name *string `json:"name" validate:"required"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	if violations := structViolations(&body); len(violations) > 0 {
		writeValidationErr(w, violations)
		return
	}
	u, err := h.updateProfile.Execute(r.Context(), user.UpdateProfileInput{UserID: userID, Name: *body.Name})
	if err != nil {
		AuditEmit(h.log, r, h.tasks, "user.update", userID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	AuditEmit(h.log, r, h.tasks, "user.update", userID.String(), true, "")
	writeJSON(w, http.StatusOK, presentUser(u))
}

func (h *UsersHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	u, err := h.verifyEmail.Execute(r.Context(), userID)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	AuditEmit(h.log, r, h.tasks, "user.verify_email", userID.String(), true, "")
	writeJSON(w, http.StatusOK, presentUser(u))
}

func (h *UsersHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := h.deleteAccount.Execute(r.Context(), userID)
	if err != nil {
		AuditEmit(h.log, r, h.tasks, "user.delete", userID.String(), false, err.Error())
		writeDomainErr(w, h.log, err)
		return
	}
	h.log.Info().Str("user_id", userID.String()).Int64("deleted_todos", result.DeletedTodos).Msg("account deleted")
	AuditEmit(h.log, r, h.tasks, "user.delete", userID.String(), true, "")
	w.WriteHeader(http.StatusNoContent)
}
