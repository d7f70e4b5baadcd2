package admins

import (
	"encoding/json"
	"log"
	"net/http"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListUsersHandler returns all members of the caller's organization.
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var users []models.User
	if err := database.DB.Where("organization_id = ?", org).Order("created_at ASC").Find(&users).Error; err != nil {
		log.Printf("[admin] list users: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"users": users}})
}

// ChangeRoleHandler updates a member's role. The caller must outrank both the
// target's current role and the requested one, and cannot change their own.
func ChangeRoleHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserID(r)
	callerRole, _ := utils.GetUserRole(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	targetID := mux.Vars(r)["id"]

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if models.RoleRank(req.Role) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "role must be superadmin, admin, manager or user"})
		return
	}
	if targetID == callerID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot change your own role"})
		return
	}

	var target models.User
	if err := database.DB.Where("id = ? AND organization_id = ?", targetID, org).First(&target).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	if !models.RoleOutranks(callerRole, target.Role) || !models.RoleOutranks(callerRole, req.Role) {
		if callerRole != models.RoleSuperadmin {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Insufficient role for this change"})
			return
		}
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", targetID).Update("role", req.Role).Error; err != nil {
		log.Printf("[admin] change role: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Role updated"})
}

// DeleteUserHandler removes a member. Their owned tasks are reassigned to the
// caller so no org data is orphaned; their sessions are revoked.
func DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	callerID, _ := utils.GetUserID(r)
	callerRole, _ := utils.GetUserRole(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	targetID := mux.Vars(r)["id"]

	if targetID == callerID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot delete your own account"})
		return
	}

	var target models.User
	if err := database.DB.Where("id = ? AND organization_id = ?", targetID, org).First(&target).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	if !models.RoleOutranks(callerRole, target.Role) {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Insufficient role to delete this user"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("user_id = ? AND organization_id = ?", targetID, org).
			Update("user_id", callerID).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).
			Where("assigned_to_id = ? AND organization_id = ?", targetID, org).
			Updates(map[string]interface{}{"assigned_to_id": nil, "assigned_to_name": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.RefreshToken{}).
			Where("user_id = ?", targetID).
			Update("revoked", true).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
	if err != nil {
		log.Printf("[admin] delete user %s: %v", targetID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "User deleted"})
}
