package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EventRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"start_date" validate:"required"` // RFC3339
	EndDate     string  `json:"end_date" validate:"required"`
}

// ListEventsHandler returns the organization's calendar events in a range.
// Defaults to the current month when from/to are absent.
func ListEventsHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0)
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "to must be YYYY-MM-DD"})
			return
		}
		to = t.AddDate(0, 0, 1)
	}

	var events []models.Event
	if err := database.DB.
		Where("organization_id = ? AND start_date < ? AND end_date >= ?", org, to, from).
		Order("start_date ASC").Find(&events).Error; err != nil {
		log.Printf("[events] list: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"events": events}})
}

func CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "title is required"})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "start_date must be RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "end_date must be RFC3339"})
		return
	}
	if end.Before(start) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "end_date must not be before start_date"})
		return
	}

	event := models.Event{
		ID:             uuid.NewString(),
		Title:          req.Title,
		Description:    req.Description,
		StartDate:      start,
		EndDate:        end,
		UserID:         uid,
		OrganizationID: org,
	}
	if err := database.DB.Create(&event).Error; err != nil {
		log.Printf("[events] create: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create event"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Event created", Data: event})
}

func UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	id := mux.Vars(r)["id"]

	var req EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "start_date must be RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "end_date must be RFC3339"})
		return
	}

	res := database.DB.Model(&models.Event{}).Where("id = ? AND user_id = ?", id, uid).Updates(map[string]interface{}{
		"title":       strings.TrimSpace(req.Title),
		"description": req.Description,
		"start_date":  start,
		"end_date":    end,
	})
	if res.Error != nil {
		log.Printf("[events] update: %v", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Event not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Event updated"})
}

func DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	id := mux.Vars(r)["id"]

	res := database.DB.Where("id = ? AND user_id = ?", id, uid).Delete(&models.Event{})
	if res.Error != nil {
		log.Printf("[events] delete: %v", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Event not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Event deleted"})
}
