package users

import (
	"encoding/json"
	"net/http"
	"strings"

	"taskory/taskstore"
	"taskory/utils"

	"github.com/gorilla/mux"
)

type AddCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

func AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "text is required"})
		return
	}

	actor := store.Actor()
	err := store.AddCommentToTask(r.Context(), taskID, taskstore.CommentDraft{
		UserID:   actor.ID,
		UserName: actor.Name,
		Text:     req.Text,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Comment added"})
}

type TagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

func AddTagHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	taskID := mux.Vars(r)["id"]

	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Tag = strings.TrimSpace(req.Tag)
	if req.Tag == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "tag is required"})
		return
	}

	if err := store.AddTagToTask(r.Context(), taskID, req.Tag); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Tag added"})
}

func RemoveTagHandler(w http.ResponseWriter, r *http.Request) {
	store := storeForRequest(w, r)
	if store == nil {
		return
	}
	vars := mux.Vars(r)

	if err := store.RemoveTagFromTask(r.Context(), vars["id"], vars["tag"]); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Tag removed"})
}
