package routes

import (
	"net/http"

	"taskory/controllers/admins"
	"taskory/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes registers organization administration routes. All of them
// require an authenticated admin or superadmin.
func SetAdminRoutes(api *mux.Router) {
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AuthMiddleware)
	adminRouter.Use(middleware.AdminAuthMiddleware)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.ListUsersHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id}/role", http.HandlerFunc(admins.ChangeRoleHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id}", http.HandlerFunc(admins.DeleteUserHandler)).Methods(http.MethodDelete)

	// Organization settings
	adminRouter.Handle("/organization", http.HandlerFunc(admins.GetOrganizationHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/organization", http.HandlerFunc(admins.UpdateOrganizationHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/organization/invite-code", http.HandlerFunc(admins.RotateInviteCodeHandler)).Methods(http.MethodPost)
}
