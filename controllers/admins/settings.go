package admins

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"gorm.io/gorm"
)

type UpdateOrganizationRequest struct {
	Name string `json:"name" validate:"required"`
}

// GetOrganizationHandler returns the organization including its invite code.
func GetOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var org models.Organization
	if err := database.DB.Where("id = ?", orgID).First(&org).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Organization not found"})
		return
	}

	var memberCount int64
	_ = database.DB.Model(&models.User{}).Where("organization_id = ?", orgID).Count(&memberCount).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "OK",
		Data: map[string]interface{}{
			"organization": org,
			"member_count": memberCount,
		},
	})
}

func UpdateOrganizationHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var req UpdateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name is required"})
		return
	}

	if err := database.DB.Model(&models.Organization{}).Where("id = ?", orgID).Update("name", req.Name).Error; err != nil {
		log.Printf("[admin] update organization: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Organization updated"})
}

// RotateInviteCodeHandler replaces the invite code so old invites stop working.
func RotateInviteCodeHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	code, err := uniqueInviteCode(database.DB, 8)
	if err != nil {
		log.Printf("[admin] rotate invite code: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	if err := database.DB.Model(&models.Organization{}).Where("id = ?", orgID).Update("invite_code", code).Error; err != nil {
		log.Printf("[admin] save invite code: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Invite code rotated", Data: map[string]interface{}{"invite_code": code}})
}

func uniqueInviteCode(db *gorm.DB, length int) (string, error) {
	for attempt := 0; attempt < 100; attempt++ {
		code, err := utils.GenerateInviteCode(length)
		if err != nil {
			return "", err
		}
		var count int64
		if err := db.Model(&models.Organization{}).Where("invite_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique invite code")
}
