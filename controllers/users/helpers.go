package users

import (
	"errors"
	"log"
	"net/http"

	"taskory/session"
	"taskory/taskstore"
	"taskory/utils"
)

// storeForRequest resolves the caller's task store or writes the error
// response and returns nil.
func storeForRequest(w http.ResponseWriter, r *http.Request) *taskstore.Store {
	store, err := session.StoreForRequest(r)
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
			return nil
		}
		// Store registered with cleared collections; snapshot load failed.
		log.Printf("[tasks] snapshot load: %v", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to load workspace data"})
		return nil
	}
	return store
}

// writeStoreError translates taskstore sentinel errors into API responses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskstore.ErrTaskNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
	case errors.Is(err, taskstore.ErrProjectNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Project not found"})
	case errors.Is(err, taskstore.ErrNoOrganization):
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
	case errors.Is(err, taskstore.ErrOrganizationMismatch):
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Record belongs to another organization"})
	default:
		log.Printf("[tasks] remote write: %v", err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to save changes"})
	}
}
