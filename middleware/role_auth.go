package middleware

import (
	"net/http"

	"taskory/database"
	"taskory/models"
	"taskory/utils"
)

// RequireRole returns middleware that rejects the request unless the
// authenticated user's role ranks at or above minRole. Must run after
// AuthMiddleware, which puts identity into the request context.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetUserRole(r)
			if !ok || models.RoleRank(role) < models.RoleRank(minRole) {
				utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
					Success: false,
					Message: "Forbidden: insufficient role",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminAuthMiddleware verifies the authenticated user holds an admin or
// superadmin role and still exists in the database. Role changes take effect
// on the next request even with an older token.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := utils.GetUserID(r)
		if !ok {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: No token provided",
			})
			return
		}

		var user models.User
		if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: User not found",
			})
			return
		}

		if models.RoleRank(user.Role) < models.RoleRank(models.RoleAdmin) {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: Admin access required",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
