package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"taskory/database"
	"taskory/middleware"
	"taskory/models"
	"taskory/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name                 string `json:"name" validate:"required,nameok"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,pwdmin"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	// Exactly one of these decides the tenant: join an existing organization
	// by invite code, or create a new one and become its superadmin.
	InviteCode       string `json:"invite_code"`
	OrganizationName string `json:"organization_name"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.InviteCode = strings.TrimSpace(req.InviteCode)
	req.OrganizationName = strings.TrimSpace(req.OrganizationName)

	if req.InviteCode == "" && req.OrganizationName == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Provide an invite_code to join an organization or an organization_name to create one"})
		return
	}
	if req.InviteCode != "" && req.OrganizationName != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "invite_code and organization_name are mutually exclusive"})
		return
	}

	db := database.DB

	// Ensure unique email
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Email is already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[register] DB error checking email: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	newUser := models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
	}

	var org models.Organization
	if req.InviteCode != "" {
		if err := db.Where("invite_code = ?", req.InviteCode).First(&org).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid invite code"})
				return
			}
			log.Printf("[register] DB error fetching invite %s: %v", req.InviteCode, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		newUser.Role = registrationRole(true)
		newUser.OrganizationID = org.ID

		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("[register] DB Create user error: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
			return
		}
	} else {
		// Organization create and founder insert happen in one transaction so
		// a failed user insert never leaves an empty organization behind.
		code, err := generateUniqueInviteCode(db, 8)
		if err != nil {
			log.Printf("[register] generateUniqueInviteCode error: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		org = models.Organization{
			ID:         uuid.NewString(),
			Name:       req.OrganizationName,
			InviteCode: code,
			CreatedBy:  newUser.ID,
		}
		newUser.Role = registrationRole(false)
		newUser.OrganizationID = org.ID

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&org).Error; err != nil {
				return err
			}
			return tx.Create(&newUser).Error
		})
		if err != nil {
			log.Printf("[register] DB transaction error: %v", err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Registration failed, please try again"})
			return
		}
	}

	exp := time.Now().Add(15 * time.Minute)
	accessToken, err := utils.GenerateAccessToken(&newUser)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create token"})
		return
	}
	refreshJTI, err := utils.GenerateRefreshToken(newUser.ID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store refresh token"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Registration successful, welcome!",
		Data: map[string]interface{}{
			"access_token":  accessToken,
			"access_expire": exp.UTC().Format(time.RFC3339),
			"refresh_token": refreshJTI,
			"user": map[string]interface{}{
				"id":    newUser.ID,
				"name":  newUser.Name,
				"email": newUser.Email,
				"role":  newUser.Role,
			},
			"organization": map[string]interface{}{
				"id":          org.ID,
				"name":        org.Name,
				"invite_code": org.InviteCode,
			},
		},
	})
}

// registrationRole decides the new account's role. Invitees join as regular
// members; an organization founder starts as superadmin so every lower role
// stays grantable through the role-change hierarchy.
func registrationRole(invited bool) string {
	if invited {
		return models.RoleUser
	}
	return models.RoleSuperadmin
}

func generateUniqueInviteCode(db *gorm.DB, length int) (string, error) {
	maxAttempts := 100
	for attempt := 0; attempt < maxAttempts; attempt++ {
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
