package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"taskory/database"
	"taskory/models"
	"taskory/session"
	"taskory/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// revokeAccessTokenFromHeader best-effort revokes the access token jti found
// in the Authorization header. Parse errors are ignored; logout proceeds.
func revokeAccessTokenFromHeader(r *http.Request) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	_, claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil || claims == nil {
		return
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return
	}
	var ttl time.Duration
	if expRaw, ok := claims["exp"].(float64); ok {
		ttl = time.Until(time.Unix(int64(expRaw), 0))
	}
	if ttl < 0 {
		ttl = 0
	}
	_ = utils.RevokeJTI(jti, ttl)
}

// LogoutHandler revokes the given refresh token, the current access token jti,
// and drops the caller's task store.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	if req.RefreshToken == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "refresh_token is required"})
		return
	}

	revokeAccessTokenFromHeader(r)

	if uid, ok := utils.GetUserID(r); ok && session.Manager != nil {
		session.Manager.Teardown(uid)
	}

	// Row not found still returns success to avoid token enumeration.
	_ = database.DB.Model(&models.RefreshToken{}).Where("id = ?", req.RefreshToken).Update("revoked", true).Error
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
