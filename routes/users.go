package routes

import (
	"net/http"
	"time"

	"taskory/controllers/auth"
	"taskory/controllers/users"
	"taskory/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers auth and member-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// per-user: 120 read, 60 write, 60s window
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)
	// chat message polling is chatty, keep it loose
	chatLimiter := middleware.NewIPRateLimiter(500, 5*time.Minute)

	protected := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	// Register & Login
	api.Handle("/auth/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/auth/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/auth/logout", protected(auth.LogoutHandler)).Methods(http.MethodPost)
	api.Handle("/auth/logout-all", protected(auth.LogoutAllHandler)).Methods(http.MethodPost)

	// Profile
	api.Handle("/users/profile", protected(users.GetProfileHandler)).Methods(http.MethodGet)
	api.Handle("/users/profile", protected(users.UpdateProfileHandler)).Methods(http.MethodPut)
	api.Handle("/users/profile/avatar", protected(users.UploadAvatarHandler)).Methods(http.MethodPost)
	api.Handle("/users/change-password", protected(users.ChangePasswordHandler)).Methods(http.MethodPost)

	// Tasks (session store backed)
	api.Handle("/users/tasks", protected(users.ListTasksHandler)).Methods(http.MethodGet)
	api.Handle("/users/tasks", protected(users.CreateTaskHandler)).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id}", protected(users.UpdateTaskHandler)).Methods(http.MethodPut)
	api.Handle("/users/tasks/{id}", protected(users.DeleteTaskHandler)).Methods(http.MethodDelete)
	api.Handle("/users/tasks/{id}/status", protected(users.UpdateTaskStatusHandler)).Methods(http.MethodPatch)
	api.Handle("/users/tasks/{id}/assign", protected(users.AssignTaskHandler)).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id}/project", protected(users.MoveTaskToProjectHandler)).Methods(http.MethodPut)
	api.Handle("/users/tasks/{id}/comments", protected(users.AddCommentHandler)).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id}/tags", protected(users.AddTagHandler)).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id}/tags/{tag}", protected(users.RemoveTagHandler)).Methods(http.MethodDelete)
	api.Handle("/users/score", protected(users.DailyScoreHandler)).Methods(http.MethodGet)

	// Projects (session store backed)
	api.Handle("/users/projects", protected(users.ListProjectsHandler)).Methods(http.MethodGet)
	api.Handle("/users/projects", protected(users.CreateProjectHandler)).Methods(http.MethodPost)
	api.Handle("/users/projects/{id}", protected(users.UpdateProjectHandler)).Methods(http.MethodPut)
	api.Handle("/users/projects/{id}", protected(users.DeleteProjectHandler)).Methods(http.MethodDelete)
	api.Handle("/users/projects/{id}/members", protected(users.AddTeamMemberHandler)).Methods(http.MethodPost)
	api.Handle("/users/projects/{id}/members/{userID}", protected(users.RemoveTeamMemberHandler)).Methods(http.MethodDelete)

	// Chat
	api.Handle("/users/chat/rooms", protected(users.ListRoomsHandler)).Methods(http.MethodGet)
	api.Handle("/users/chat/rooms", protected(users.CreateRoomHandler)).Methods(http.MethodPost)
	api.Handle("/users/chat/rooms/{id}/messages", chatLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListMessagesHandler)))).Methods(http.MethodGet)
	api.Handle("/users/chat/rooms/{id}/messages", protected(users.SendMessageHandler)).Methods(http.MethodPost)
	api.Handle("/users/chat/rooms/{id}/messages/{messageID}", protected(users.DeleteMessageHandler)).Methods(http.MethodDelete)

	// Time tracking
	api.Handle("/users/time/clock-in", protected(users.ClockInHandler)).Methods(http.MethodPost)
	api.Handle("/users/time/clock-out", protected(users.ClockOutHandler)).Methods(http.MethodPost)
	api.Handle("/users/time/entries", protected(users.ListTimeEntriesHandler)).Methods(http.MethodGet)
	api.Handle("/users/time/weekly-report", protected(users.WeeklyReportHandler)).Methods(http.MethodGet)

	// Team
	api.Handle("/users/team", protected(users.ListTeamHandler)).Methods(http.MethodGet)
	api.Handle("/users/team/performance", protected(users.TeamPerformanceHandler)).Methods(http.MethodGet)

	// Notifications
	api.Handle("/users/notifications", protected(users.ListNotificationsHandler)).Methods(http.MethodGet)
	api.Handle("/users/notifications/read-all", protected(users.MarkAllNotificationsReadHandler)).Methods(http.MethodPost)
	api.Handle("/users/notifications/{id}/read", protected(users.MarkNotificationReadHandler)).Methods(http.MethodPost)

	// Calendar events
	api.Handle("/users/events", protected(users.ListEventsHandler)).Methods(http.MethodGet)
	api.Handle("/users/events", protected(users.CreateEventHandler)).Methods(http.MethodPost)
	api.Handle("/users/events/{id}", protected(users.UpdateEventHandler)).Methods(http.MethodPut)
	api.Handle("/users/events/{id}", protected(users.DeleteEventHandler)).Methods(http.MethodDelete)

	// Documents
	api.Handle("/users/documents", protected(users.ListDocumentsHandler)).Methods(http.MethodGet)
	api.Handle("/users/documents", protected(users.UploadDocumentHandler)).Methods(http.MethodPost)
	api.Handle("/users/documents/{id}", protected(users.DeleteDocumentHandler)).Methods(http.MethodDelete)
}
