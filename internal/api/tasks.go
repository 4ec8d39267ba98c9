package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tasktracker/m/domain"
)

// Task handlers. All authorization happens here; the task service trusts
// its callers. The owner of a new task always comes from the bearer token,
// never from the request body.

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r)
	if !hasRole(claims.Roles, domain.RoleAdmin) {
		respondError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	tasks, err := h.tasks.GetAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *Handler) listMyTasks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r)
	tasks, err := h.tasks.GetByUser(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	task, err := h.tasks.GetByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load task")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	claims := claimsFromContext(r)
	if !canAccess(claims.UserID, claims.Roles, task.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	claims := claimsFromContext(r)
	task, err := h.tasks.Create(claims.UserID, req.Title, req.Description)
	if err != nil || task == nil {
		respondError(w, http.StatusInternalServerError, "unable to create task")
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respondJSON(w, http.StatusCreated, task)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "status must be between 0 and 3")
		return
	}

	existing, err := h.tasks.GetByID(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load task")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	claims := claimsFromContext(r)
	if !canAccess(claims.UserID, claims.Roles, existing.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	task, err := h.tasks.Update(id, req.Title, req.Description, req.Status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update task")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r)
	if !hasRole(claims.Roles, domain.RoleAdmin) {
		respondError(w, http.StatusForbidden, "insufficient permissions")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid task id")
		return
	}
	deleted, err := h.tasks.Delete(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete task")
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
