package users

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/google/uuid"
)

type ClockOutRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// ClockInHandler opens a new time entry. A second clock-in while one is
// running is rejected.
func ClockInHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var running models.TimeEntry
	err := database.DB.Where("user_id = ? AND clock_out IS NULL", uid).First(&running).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Already clocked in", Data: running})
		return
	}

	entry := models.TimeEntry{
		ID:             uuid.NewString(),
		UserID:         uid,
		ClockIn:        time.Now(),
		OrganizationID: org,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("[time] clock in: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to clock in"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Clocked in", Data: entry})
}

// ClockOutHandler closes the running entry and computes its duration.
func ClockOutHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)

	var req ClockOutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	var entry models.TimeEntry
	if err := database.DB.Where("user_id = ? AND clock_out IS NULL", uid).First(&entry).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "No running time entry"})
		return
	}

	now := time.Now()
	minutes := int(now.Sub(entry.ClockIn).Minutes())
	entry.ClockOut = &now
	entry.DurationMinutes = &minutes
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	if err := database.DB.Model(&models.TimeEntry{}).Where("id = ?", entry.ID).Updates(map[string]interface{}{
		"clock_out":        entry.ClockOut,
		"duration_minutes": entry.DurationMinutes,
		"notes":            entry.Notes,
	}).Error; err != nil {
		log.Printf("[time] clock out: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to clock out"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Clocked out", Data: entry})
}

// ListTimeEntriesHandler returns the caller's entries, newest first.
// ?from=YYYY-MM-DD and ?to=YYYY-MM-DD narrow the range.
func ListTimeEntriesHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)

	q := database.DB.Where("user_id = ?", uid)
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "from must be YYYY-MM-DD"})
			return
		}
		q = q.Where("clock_in >= ?", t)
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "to must be YYYY-MM-DD"})
			return
		}
		q = q.Where("clock_in < ?", t.AddDate(0, 0, 1))
	}

	var entries []models.TimeEntry
	if err := q.Order("clock_in DESC").Find(&entries).Error; err != nil {
		log.Printf("[time] list entries: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"entries": entries}})
}

// WeeklyReportHandler sums the caller's tracked minutes per day over the last
// seven days including today.
func WeeklyReportHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	var entries []models.TimeEntry
	if err := database.DB.Where("user_id = ? AND clock_in >= ? AND duration_minutes IS NOT NULL", uid, start).Find(&entries).Error; err != nil {
		log.Printf("[time] weekly report: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	perDay := make(map[string]int, 7)
	for d := 0; d < 7; d++ {
		perDay[start.AddDate(0, 0, d).Format("2006-01-02")] = 0
	}
	total := 0
	for _, e := range entries {
		day := e.ClockIn.Format("2006-01-02")
		if _, ok := perDay[day]; ok && e.DurationMinutes != nil {
			perDay[day] += *e.DurationMinutes
			total += *e.DurationMinutes
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"from":          start.Format("2006-01-02"),
			"to":            now.Format("2006-01-02"),
			"minutes_total": total,
			"hours_total":   utils.RoundFloat(float64(total)/60.0, 2),
			"per_day":       perDay,
		},
	})
}
