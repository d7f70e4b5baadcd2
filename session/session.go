package session

import (
	"errors"
	"net/http"

	"taskory/taskstore"
	"taskory/utils"
)

// ErrUnauthenticated is returned when the request carries no identity.
var ErrUnauthenticated = errors.New("no authenticated user in request")

// Manager holds the per-user task stores for the running server. It is set
// once from main after the database connection is established.
var Manager *taskstore.Manager

// ActorFromRequest builds the taskstore actor from the identity the auth
// middleware put into the request context.
func ActorFromRequest(r *http.Request) (taskstore.Actor, bool) {
	id, ok := utils.GetUserID(r)
	if !ok {
		return taskstore.Actor{}, false
	}
	role, _ := utils.GetUserRole(r)
	org, _ := utils.GetUserOrg(r)
	return taskstore.Actor{
		ID:             id,
		Name:           utils.GetUserName(r),
		Role:           role,
		OrganizationID: org,
	}, true
}

// StoreForRequest returns the caller's task store, creating and loading one
// on demand.
func StoreForRequest(r *http.Request) (*taskstore.Store, error) {
	actor, ok := ActorFromRequest(r)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return Manager.Session(r.Context(), actor)
}
