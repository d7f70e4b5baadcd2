package users

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskory/models"
	"taskory/taskstore"
	"taskory/utils"

	"github.com/gorilla/mux"
)

type CreateProjectRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description"`
	StartDate     *string  `json:"start_date,omitempty"` // RFC3339
	EndDate       *string  `json:"end_date,omitempty"`
	ManagerID     *string  `json:"manager_id,omitempty"`
	TeamMemberIDs []string `json:"team_member_ids,omitempty"`
	Budget        float64  `json:"budget"`
	Tags          []string `json:"tags,omitempty"`
}

type UpdateProjectRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Budget      *float64 `json:"budget,omitempty"`
	BudgetSpent *float64 `json:"budget_spent,omitempty"`
	IsCompleted *bool    `json:"is_completed,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func parseRFC3339(w http.ResponseWriter, field, value string) (*time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: field + " must be RFC3339"})
		return nil, false
	}
	return &t, true
}

// ListProjectsHandler returns the session's project snapshot with embedded
// task lists. ?tag= filters by project tag.
func ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}

	var projects []models.Project
	if tag := r.URL.Query().Get("tag"); tag != "" {
		projects = store.ProjectsWithTag(tag)
	} else {
		projects = store.Projects()
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"projects": projects}})
}

func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "title is required"})
		return
	}

	draft := taskstore.ProjectDraft{
		Title:         req.Title,
		Description:   req.Description,
		ManagerID:     req.ManagerID,
		TeamMemberIDs: req.TeamMemberIDs,
		Budget:        req.Budget,
		Tags:          req.Tags,
	}
	if req.StartDate != nil {
		t, ok := parseRFC3339(w, "start_date", *req.StartDate)
		if !ok {
			return
		}
		draft.StartDate = t
	}
	if req.EndDate != nil {
		t, ok := parseRFC3339(w, "end_date", *req.EndDate)
		if !ok {
			return
		}
		draft.EndDate = t
	}

	project, err := store.AddProject(r.Context(), draft)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Project created", Data: project})
}

func UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	projectID := mux.Vars(r)["id"]

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}

	var patch models.ProjectPatch
	patch.Title = req.Title
	patch.Description = req.Description
	patch.Budget = req.Budget
	patch.BudgetSpent = req.BudgetSpent
	patch.IsCompleted = req.IsCompleted
	if req.StartDate != nil {
		t, ok := parseRFC3339(w, "start_date", *req.StartDate)
		if !ok {
			return
		}
		patch.StartDate = &t
	}
	if req.EndDate != nil {
		t, ok := parseRFC3339(w, "end_date", *req.EndDate)
		if !ok {
			return
		}
		patch.EndDate = &t
	}
	if req.Tags != nil {
		tags := models.StringList(req.Tags)
		patch.Tags = &tags
	}

	if err := store.UpdateProject(r.Context(), projectID, patch); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project updated"})
}

func DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	projectID := mux.Vars(r)["id"]

	if err := store.DeleteProject(r.Context(), projectID); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Project deleted"})
}

type TeamMemberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

func AddTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	projectID := mux.Vars(r)["id"]

	var req TeamMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.UserID == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "user_id is required"})
		return
	}

	if err := store.AddTeamMemberToProject(r.Context(), projectID, req.UserID); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Team member added"})
}

func RemoveTeamMemberHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	vars := mux.Vars(r)

	if err := store.RemoveTeamMemberFromProject(r.Context(), vars["id"], vars["userID"]); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Team member removed"})
}
