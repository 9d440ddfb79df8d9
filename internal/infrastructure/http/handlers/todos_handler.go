package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/todoapi/internal/application/todo"
	"github.com/amirhosseinghanipour/todoapi/internal/domain"
	domerrors "github.com/amirhosseinghanipour/todoapi/internal/domain/errors"
	"github.com/amirhosseinghanipour/todoapi/internal/infrastructure/http/middleware"
)

// TodosHandler handles /api/todos. Every route requires JWT auth.
type TodosHandler struct {
	create        *todo.CreateTodo
	list          *todo.ListTodos
	get           *todo.GetTodo
	update        *todo.UpdateTodo
	setCompletion *todo.SetCompletion
	remove        *todo.DeleteTodo
	log           zerolog.Logger
}

func NewTodosHandler(create *todo.CreateTodo, list *todo.ListTodos, get *todo.GetTodo, update *todo.UpdateTodo, setCompletion *todo.SetCompletion, remove *todo.DeleteTodo, log zerolog.Logger) *TodosHandler {
	return &TodosHandler{
		create:        create,
		list:          list,
		get:           get,
		update:        update,
		setCompletion: setCompletion,
		remove:        remove,
		log:           log,
	}
}

func (h *TodosHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var filter domain.TodoFilter
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "completed must be true or false")
			return
		}
		filter.Completed = &completed
	}
	todos, err := h.list.Execute(r.Context(), todo.ListTodosInput{OwnerID: userID, Filter: filter})
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	middleware.RecordTodoOperation("list", "ok")
	writeJSON(w, http.StatusOK, presentTodos(todos))
}

func (h *TodosHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return
	}
	var body struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	t, err := h.create.Execute(r.Context(), todo.CreateTodoInput{
		OwnerID:     userID,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	middleware.RecordTodoOperation("create", "ok")
	writeJSON(w, http.StatusCreated, presentTodo(t))
}

func (h *TodosHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	t, err := h.get.Execute(r.Context(), id, userID)
	if err != nil {
		h.fail(w, "get", err)
		return
	}
	middleware.RecordTodoOperation("get", "ok")
	writeJSON(w, http.StatusOK, presentTodo(t))
}

func (h *TodosHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	var body struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Completed   *bool   `json:"completed"`
	}
	if err := decodeJSON(w, r, &body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	if body.Title == nil && body.Description == nil && body.Completed == nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "no fields to update")
		return
	}
	t, err := h.update.Execute(r.Context(), todo.UpdateTodoInput{
		ID:          id,
		RequesterID: userID,
		Title:       body.Title,
		Description: body.Description,
		Completed:   body.Completed,
	})
	if err != nil {
		h.fail(w, "update", err)
		return
	}
	middleware.RecordTodoOperation("update", "ok")
	writeJSON(w, http.StatusOK, presentTodo(t))
}

func (h *TodosHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.markCompleted(w, r, true)
}

func (h *TodosHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	h.markCompleted(w, r, false)
}

func (h *TodosHandler) markCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	op := "uncomplete"
	if completed {
		op = "complete"
	}
	t, err := h.setCompletion.Execute(r.Context(), id, userID, completed)
	if err != nil {
		h.fail(w, op, err)
		return
	}
	middleware.RecordTodoOperation(op, "ok")
	writeJSON(w, http.StatusOK, presentTodo(t))
}

func (h *TodosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.target(w, r)
	if !ok {
		return
	}
	if err := h.remove.Execute(r.Context(), id, userID); err != nil {
		h.fail(w, "delete", err)
		return
	}
	middleware.RecordTodoOperation("delete", "ok")
	w.WriteHeader(http.StatusNoContent)
}

// target resolves the caller and the {id} parameter, writing the error response itself.
// An id that is not a UUID cannot name a todo, so it is reported as not found.
func (h *TodosHandler) target(w http.ResponseWriter, r *http.Request) (domain.UserID, domain.TodoID, bool) {
	userID, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized")
		return domain.UserID{}, domain.TodoID{}, false
	}
	id, ok := todoIDParam(r)
	if !ok {
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, domerrors.ErrTodoNotFound.Error())
		return domain.UserID{}, domain.TodoID{}, false
	}
	return userID, id, true
}

func (h *TodosHandler) fail(w http.ResponseWriter, op string, err error) {
	code := writeDomainErr(w, h.log, err)
	middleware.RecordTodoOperation(op, code)
}
