package users

import (
	"log"
	"net/http"

	"taskory/database"
	"taskory/models"
	"taskory/utils"
)

type memberPerformance struct {
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	AssignedTasks  int64   `json:"assigned_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
	ProjectCount   int64   `json:"project_count"`
}

// ListTeamHandler returns the organization's members.
func ListTeamHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var members []models.User
	if err := database.DB.Where("organization_id = ?", org).Order("name ASC").Find(&members).Error; err != nil {
		log.Printf("[team] list members: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"members": members}})
}

// TeamPerformanceHandler aggregates per-member task and project counts for
// the organization.
func TeamPerformanceHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	db := database.DB
	var members []models.User
	if err := db.Where("organization_id = ?", org).Order("name ASC").Find(&members).Error; err != nil {
		log.Printf("[team] performance members: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	report := make([]memberPerformance, 0, len(members))
	for _, m := range members {
		perf := memberPerformance{UserID: m.ID, Name: m.Name, Role: m.Role}

		assignedCond := "organization_id = ? AND (user_id = ? OR assigned_to_id = ? OR JSON_CONTAINS(assigned_to_ids, JSON_QUOTE(?)))"
		if err := db.Model(&models.Task{}).
			Where(assignedCond, org, m.ID, m.ID, m.ID).
			Count(&perf.AssignedTasks).Error; err != nil {
			log.Printf("[team] performance tasks for %s: %v", m.ID, err)
			continue
		}
		_ = db.Model(&models.Task{}).
			Where(assignedCond+" AND status = ?", org, m.ID, m.ID, m.ID, models.StatusCompleted).
			Count(&perf.CompletedTasks).Error
		if perf.AssignedTasks > 0 {
			perf.CompletionRate = utils.RoundFloat(float64(perf.CompletedTasks)/float64(perf.AssignedTasks)*100, 1)
		}
		_ = db.Model(&models.Project{}).
			Where("organization_id = ? AND (manager_id = ? OR JSON_CONTAINS(team_member_ids, JSON_QUOTE(?)))", org, m.ID, m.ID).
			Count(&perf.ProjectCount).Error

		report = append(report, perf)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"performance": report}})
}
