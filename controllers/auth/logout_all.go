package auth

import (
	"net/http"

	"taskory/database"
	"taskory/models"
	"taskory/session"
	"taskory/utils"
)

// LogoutAllHandler revokes all refresh tokens for the authenticated user and
// drops their task store.
func LogoutAllHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	revokeAccessTokenFromHeader(r)

	if session.Manager != nil {
		session.Manager.Teardown(uid)
	}

	if err := database.DB.Model(&models.RefreshToken{}).Where("user_id = ?", uid).Update("revoked", true).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "All sessions revoked"})
}
