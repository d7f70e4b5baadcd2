package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"taskory/database"
	"taskory/middleware"
	"taskory/models"
	"taskory/session"
	"taskory/taskstore"
	"taskory/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdmin"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid email or password"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// check account lockout
	if locked, retry := middleware.IsAccountLocked(user.ID); locked {
		utils.WriteJSON(w, http.StatusTooManyRequests, utils.APIResponse{Success: false, Message: "Too many login attempts. Please try again later.", Data: map[string]interface{}{"retry_after_seconds": int(retry.Seconds())}})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		middleware.RecordFailedLogin(user.ID)
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid email or password"})
		return
	}

	middleware.ResetFailedLogin(user.ID)

	exp := time.Now().Add(15 * time.Minute)
	accessToken, err := utils.GenerateAccessToken(&user)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Login failed"})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	// Warm the task store for this session. A failed snapshot load is not a
	// login failure; the store retries on first use.
	if session.Manager != nil {
		actor := taskstore.Actor{
			ID:             user.ID,
			Name:           user.Name,
			Role:           user.Role,
			OrganizationID: user.OrganizationID,
		}
		if _, err := session.Manager.Init(r.Context(), actor); err != nil {
			log.Printf("[login] task store load for user %s: %v", user.ID, err)
		}
	}

	var org models.Organization
	_ = db.Where("id = ?", user.OrganizationID).First(&org).Error

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": exp.UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user": map[string]interface{}{
				"id":         user.ID,
				"name":       user.Name,
				"email":      user.Email,
				"role":       user.Role,
				"timezone":   utils.GetStringValue(user.Timezone),
				"avatar_url": utils.GetStringValue(user.AvatarURL),
			},
			"organization": map[string]interface{}{
				"id":   org.ID,
				"name": org.Name,
			},
		},
	})
}
