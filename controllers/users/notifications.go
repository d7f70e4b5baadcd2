package users

import (
	"log"
	"net/http"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/gorilla/mux"
)

// ListNotificationsHandler returns the caller's notifications, newest first.
// ?unread=true filters to unread ones.
func ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)

	q := database.DB.Where("user_id = ?", uid)
	if r.URL.Query().Get("unread") == "true" {
		q = q.Where("`read` = ?", false)
	}

	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		log.Printf("[notifications] list: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"notifications": notifications}})
}

func MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	id := mux.Vars(r)["id"]

	res := database.DB.Model(&models.Notification{}).Where("id = ? AND user_id = ?", id, uid).Update("read", true)
	if res.Error != nil {
		log.Printf("[notifications] mark read: %v", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Notification not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Notification marked read"})
}

func MarkAllNotificationsReadHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)

	if err := database.DB.Model(&models.Notification{}).Where("user_id = ? AND `read` = ?", uid, false).Update("read", true).Error; err != nil {
		log.Printf("[notifications] mark all read: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "All notifications marked read"})
}
