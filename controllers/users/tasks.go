package users

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskory/database"
	"taskory/models"
	"taskory/taskstore"
	"taskory/utils"

	"github.com/gorilla/mux"
)

type CreateTaskRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	Deadline        string   `json:"deadline"` // RFC3339
	Priority        string   `json:"priority"`
	Status          string   `json:"status"`
	ProjectID       *string  `json:"project_id,omitempty"`
	AssignedToID    *string  `json:"assigned_to_id,omitempty"`
	AssignedToName  *string  `json:"assigned_to_name,omitempty"`
	AssignedToIDs   []string `json:"assigned_to_ids,omitempty"`
	AssignedToNames []string `json:"assigned_to_names,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Cost            float64  `json:"cost"`
}

type UpdateTaskRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Deadline    *string  `json:"deadline,omitempty"` // RFC3339
	Priority    *string  `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Cost        *float64 `json:"cost,omitempty"`
}

// ListTasksHandler returns the session's task snapshot, optionally filtered.
// Filters: ?status=, ?priority=, ?tag=, ?date=YYYY-MM-DD, ?overdue=true.
func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}

	q := r.URL.Query()
	var tasks []models.Task
	switch {
	case q.Get("overdue") == "true":
		tasks = store.OverdueTasks()
	case q.Get("status") != "":
		tasks = store.TasksByStatus(q.Get("status"))
	case q.Get("priority") != "":
		tasks = store.TasksByPriority(q.Get("priority"))
	case q.Get("tag") != "":
		tasks = store.TasksWithTag(q.Get("tag"))
	case q.Get("date") != "":
		day, err := time.Parse("2006-01-02", q.Get("date"))
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "date must be YYYY-MM-DD"})
			return
		}
		tasks = store.TasksByDate(day)
	default:
		tasks = store.Tasks()
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"tasks": tasks}})
}

func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "title is required"})
		return
	}

	var deadline time.Time
	if req.Deadline != "" {
		d, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "deadline must be RFC3339"})
			return
		}
		deadline = d
	}

	task, err := store.AddTask(r.Context(), taskstore.TaskDraft{
		Title:           req.Title,
		Description:     req.Description,
		Deadline:        deadline,
		Priority:        req.Priority,
		Status:          req.Status,
		ProjectID:       req.ProjectID,
		AssignedToID:    req.AssignedToID,
		AssignedToName:  req.AssignedToName,
		AssignedToIDs:   req.AssignedToIDs,
		AssignedToNames: req.AssignedToNames,
		Tags:            req.Tags,
		Cost:            req.Cost,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Task created", Data: task})
}

func UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	var patch models.TaskPatch
	patch.Title = req.Title
	patch.Description = req.Description
	patch.Priority = req.Priority
	patch.Cost = req.Cost
	if req.Deadline != nil {
		d, err := time.Parse(time.RFC3339, *req.Deadline)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "deadline must be RFC3339"})
			return
		}
		patch.Deadline = &d
	}
	if req.Tags != nil {
		tags := models.StringList(req.Tags)
		patch.Tags = &tags
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "priority must be Low, Medium or High"})
		return
	}

	if err := store.UpdateTask(r.Context(), taskID, patch); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task updated"})
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func UpdateTaskStatusHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "status must be To Do, In Progress or Completed"})
		return
	}

	if err := store.UpdateTaskStatus(r.Context(), taskID, req.Status); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Status updated", Data: store.DailyScore()})
}

func DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	if err := store.DeleteTask(r.Context(), taskID); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task deleted"})
}

type AssignTaskRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// AssignTaskHandler assigns the task to an organization member. The display
// name comes from the users table so stale client names never stick.
func AssignTaskHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.UserID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "user_id is required"})
		return
	}

	var assignee models.User
	if err := database.DB.Where("id = ? AND organization_id = ?", req.UserID, store.Actor().OrganizationID).First(&assignee).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found in organization"})
		return
	}

	if err := store.AssignTaskToUser(r.Context(), taskID, assignee.ID, assignee.Name); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task assigned"})
}

type MoveTaskRequest struct {
	ProjectID string `json:"project_id"` // empty detaches the task
}

func MoveTaskToProjectHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	if err := store.AssignTaskToProject(r.Context(), taskID, req.ProjectID); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Task moved"})
}

// DailyScoreHandler returns today's completion metric for the session.
func DailyScoreHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: store.DailyScore()})
}
