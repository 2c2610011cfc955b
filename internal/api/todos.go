package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/erazemk/opravila/internal/model"
	"github.com/erazemk/opravila/internal/ordering"
	"github.com/erazemk/opravila/internal/service"
	"github.com/erazemk/opravila/internal/validate"
)

// TodosHandler handles todo CRUD and reorder endpoints.
type TodosHandler struct {
	Service *service.Service
}

type createTodoRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type updateTodoRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type reorderTodosRequest struct {
	Todos []ordering.Placement `json:"todos"`
}

type todosResponse struct {
	Items      []model.Todo `json:"items"`
	TotalCount int          `json:"totalCount"`
}

// List handles GET /api/v1/todo.
func (h *TodosHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.Service.ListAll(r.Context())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	jsonResponse(w, http.StatusOK, todosResponse{Items: todos, TotalCount: len(todos)})
}

// Get handles GET /api/v1/todo/{id}.
func (h *TodosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	todo, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get todo")
		return
	}
	if todo == nil {
		jsonError(w, http.StatusNotFound, "todo not found")
		return
	}
	jsonResponse(w, http.StatusOK, todo)
}

// Create handles POST /api/v1/todo.
func (h *TodosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.CreateTodo(req.Name, req.Description); !errs.Empty() {
		validationError(w, errs)
		return
	}

	todo, err := h.Service.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create todo")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/todo/%s", todo.ID))
	jsonResponse(w, http.StatusCreated, todo)
}

// Update handles PATCH /api/v1/todo/{id}.
func (h *TodosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	var req updateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.UpdateTodo(req.Name, req.Description); !errs.Empty() {
		validationError(w, errs)
		return
	}

	ok, err := h.Service.Update(r.Context(), id, service.Update{
		Name:        req.Name,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "todo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/todo/{id}.
func (h *TodosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	ok, err := h.Service.Delete(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	if !ok {
		jsonError(w, http.StatusNotFound, "todo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reorder handles PUT /api/v1/todo/reorder.
func (h *TodosHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderTodosRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validate.Reorder(req.Todos); !errs.Empty() {
		validationError(w, errs)
		return
	}

	ok, err := h.Service.Reorder(r.Context(), req.Todos)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reorder todos")
		return
	}
	if !ok {
		jsonError(w, http.StatusBadRequest, "unknown todo id")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
