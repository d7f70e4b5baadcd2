package users

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type CreateRoomRequest struct {
	Name string `json:"name" validate:"required"`
}

type SendMessageRequest struct {
	Content  string  `json:"content" validate:"required"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id,omitempty"`
}

// ListRoomsHandler returns the organization's chat rooms.
func ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var rooms []models.ChatRoom
	if err := database.DB.Where("organization_id = ?", org).Order("created_at ASC").Find(&rooms).Error; err != nil {
		log.Printf("[chat] list rooms: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"rooms": rooms}})
}

func CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "name is required"})
		return
	}

	room := models.ChatRoom{
		ID:             uuid.NewString(),
		Name:           req.Name,
		CreatedBy:      uid,
		OrganizationID: org,
	}
	if err := database.DB.Create(&room).Error; err != nil {
		log.Printf("[chat] create room: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create room"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Room created", Data: room})
}

// ListMessagesHandler returns a room's messages oldest first. Thread replies
// carry parent_id; clients group them.
func ListMessagesHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	roomID := mux.Vars(r)["id"]

	var room models.ChatRoom
	if err := database.DB.Where("id = ? AND organization_id = ?", roomID, org).First(&room).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Room not found"})
		return
	}

	var messages []models.ChatMessage
	if err := database.DB.Where("room_id = ?", roomID).Order("created_at ASC").Find(&messages).Error; err != nil {
		log.Printf("[chat] list messages: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"messages": messages}})
}

func SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	roomID := mux.Vars(r)["id"]

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid JSON body"})
		return
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "content is required"})
		return
	}
	msgType := req.Type
	if msgType == "" {
		msgType = "text"
	}
	if msgType != "text" && msgType != "file" && msgType != "image" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "type must be text, file or image"})
		return
	}

	var room models.ChatRoom
	if err := database.DB.Where("id = ? AND organization_id = ?", roomID, org).First(&room).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Room not found"})
		return
	}

	// A reply must reference a message in the same room.
	if req.ParentID != nil {
		var parent models.ChatMessage
		if err := database.DB.Where("id = ? AND room_id = ?", *req.ParentID, roomID).First(&parent).Error; err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "parent_id does not reference a message in this room"})
			return
		}
	}

	msg := models.ChatMessage{
		ID:             uuid.NewString(),
		RoomID:         roomID,
		UserID:         uid,
		Content:        req.Content,
		Type:           msgType,
		ParentID:       req.ParentID,
		OrganizationID: org,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		log.Printf("[chat] send message: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to send message"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Message sent", Data: msg})
}

// DeleteMessageHandler removes the caller's own message.
func DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	msgID := mux.Vars(r)["messageID"]

	res := database.DB.Where("id = ? AND user_id = ? AND organization_id = ?", msgID, uid, org).Delete(&models.ChatMessage{})
	if res.Error != nil {
		log.Printf("[chat] delete message: %v", res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected == 0 {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Message not found"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Message deleted"})
}
