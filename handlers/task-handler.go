package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Aayush9266/gtd-app/logging"
	"github.com/Aayush9266/gtd-app/models"
	"github.com/Aayush9266/gtd-app/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetTasks serves the task list, narrowed by at most one of the q, status,
// context or projectId query parameters.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		tasks []models.Task
		err   error
	)
	switch {
	case query.Get("q") != "":
		tasks, err = h.service.SearchTasks(r.Context(), query.Get("q"))
	case query.Get("status") != "":
		tasks, err = h.service.GetTasksByStatus(r.Context(), models.TaskStatus(query.Get("status")))
	case query.Get("context") != "":
		tasks, err = h.service.GetTasksByContext(r.Context(), models.TaskContext(query.Get("context")))
	case query.Get("projectId") != "":
		tasks, err = h.service.GetTasksByProject(r.Context(), query.Get("projectId"))
	default:
		tasks, err = h.service.GetAllTasks(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// GetReviewTasks serves tasks created within the review window (?days=N,
// default 7).
func (h *TaskHandler) GetReviewTasks(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "days must be a positive integer", http.StatusBadRequest)
			return
		}
		days = parsed
	}

	tasks, err := h.service.GetRecentlyCreated(r.Context(), days)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.CreateTask(r.Context(), input)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATE_REQUEST, Description: Task %s created via API", task.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var updates services.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), taskID, updates)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	if err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"message": "Task deleted successfully"}`))
}

// ChangeTaskStatus moves a task to the bucket named in the request body.
func (h *TaskHandler) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var request struct {
		Status models.TaskStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.MoveTask(r.Context(), taskID, request.Status)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	task, err := h.service.CompleteTask(r.Context(), taskID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func (h *TaskHandler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	task, err := h.service.ArchiveTask(r.Context(), taskID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// AssignProject sets or clears the task's project reference. An empty or
// omitted projectId clears it.
func (h *TaskHandler) AssignProject(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)["id"]

	var request struct {
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	task, err := h.service.AssignTaskToProject(r.Context(), taskID, request.ProjectID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}
