package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/akoreshkov/taskkeeper/internal/middleware"
	"github.com/akoreshkov/taskkeeper/internal/models"
	"github.com/akoreshkov/taskkeeper/internal/service"
)

// TodoService defines the interface for todo operations required by the
// HTTP handlers. Every method is scoped to the verified owner id.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]models.Todo, error)
	Create(ctx context.Context, ownerID string, input service.NewTodo) (*models.Todo, error)
	Update(ctx context.Context, ownerID, id string, patch service.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, ownerID, id string) (*models.Todo, error)
}

// TodoHandler handles HTTP requests for owner-scoped todo CRUD.
// All of its routes sit behind the bearer-auth middleware, so the request
// context always carries a verified identity.
type TodoHandler struct {
	TodoService TodoService
}

// List handles GET /todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	todos, err := h.TodoService.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if todos == nil {
		todos = []models.Todo{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Data: todos, Count: len(todos)})
}

// Create handles POST /todos.
// The body is decoded as a raw object so that each field can be checked at
// runtime: title must be a non-empty string, completed a boolean, location
// an object with numeric coordinates, photoUri a string.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return
	}

	var raw map[string]any
	_ = json.NewDecoder(r.Body).Decode(&raw)

	input, details := parseNewTodo(raw)
	if len(details) > 0 {
		writeError(w, http.StatusBadRequest, "validation failed", details...)
		return
	}

	todo, err := h.TodoService.Create(r.Context(), identity.UserID, input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, todo)
}

// Update handles PATCH /todos/{id}.
// Only fields present in the body with the right JSON type are applied;
// everything else keeps its prior value. A todo owned by another user
// responds 404, same as a nonexistent id.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	id := chi.URLParam(r, "id")

	var raw map[string]any
	_ = json.NewDecoder(r.Body).Decode(&raw)

	todo, err := h.TodoService.Update(r.Context(), identity.UserID, id, parseTodoPatch(raw))
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "todo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, todo)
}

// Delete handles DELETE /todos/{id}. It responds with the removed record's
// prior state and a confirmation message.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authorization token required")
		return
	}
	id := chi.URLParam(r, "id")

	todo, err := h.TodoService.Delete(r.Context(), identity.UserID, id)
	if err != nil {
		if errors.Is(err, service.ErrTodoNotFound) {
			writeError(w, http.StatusNotFound, "todo not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: todo, Message: "todo deleted"})
}

// parseNewTodo validates the creation payload field by field.
func parseNewTodo(raw map[string]any) (service.NewTodo, []string) {
	var input service.NewTodo
	var details []string

	title, ok := raw["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		details = append(details, "title is required and must be a non-empty string")
	}
	input.Title = title

	if v, present := raw["completed"]; present {
		b, ok := v.(bool)
		if !ok {
			details = append(details, "completed must be a boolean")
		}
		input.Completed = b
	}

	if v, present := raw["location"]; present && v != nil {
		loc, ok := parseLocation(v)
		if !ok {
			details = append(details, "location must be an object with numeric latitude and longitude")
		}
		input.Location = loc
	}

	if v, present := raw["photoUri"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			details = append(details, "photoUri must be a string")
		} else {
			input.PhotoURI = &s
		}
	}

	return input, details
}

// parseTodoPatch keeps only the fields that pass a runtime type check;
// mistyped or absent fields are dropped from the patch.
func parseTodoPatch(raw map[string]any) service.TodoPatch {
	var patch service.TodoPatch

	if v, ok := raw["title"].(string); ok {
		patch.Title = &v
	}
	if v, ok := raw["completed"].(bool); ok {
		patch.Completed = &v
	}
	if v, ok := raw["location"]; ok && v != nil {
		if loc, valid := parseLocation(v); valid {
			patch.Location = loc
		}
	}
	if v, ok := raw["photoUri"].(string); ok {
		patch.PhotoURI = &v
	}

	return patch
}

func parseLocation(v any) (*models.Location, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	lat, latOK := obj["latitude"].(float64)
	lng, lngOK := obj["longitude"].(float64)
	if !latOK || !lngOK {
		return nil, false
	}
	return &models.Location{Latitude: lat, Longitude: lng}, true
}
