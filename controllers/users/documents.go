package users

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"taskory/database"
	"taskory/models"
	"taskory/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxDocumentBytes = 25 << 20 // 25 MiB

// UploadDocumentHandler stores the file in object storage and its metadata in
// the documents table. Multipart form fields: file, title, description, folder.
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "file is required"})
		return
	}
	defer file.Close()

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		title = header.Filename
	}

	docID := uuid.NewString()
	key := fmt.Sprintf("documents/%s/%s%s", org, docID, filepath.Ext(header.Filename))
	if err := utils.UploadToS3(key, file); err != nil {
		log.Printf("[documents] upload %s: %v", key, err)
		utils.WriteJSON(w, http.StatusBadGateway, utils.APIResponse{Success: false, Message: "Failed to store file"})
		return
	}

	doc := models.Document{
		ID:             docID,
		Title:          title,
		FileType:       header.Header.Get("Content-Type"),
		SizeBytes:      header.Size,
		StorageKey:     key,
		UserID:         uid,
		OrganizationID: org,
	}
	if desc := strings.TrimSpace(r.FormValue("description")); desc != "" {
		doc.Description = &desc
	}
	if folder := strings.TrimSpace(r.FormValue("folder")); folder != "" {
		doc.Folder = &folder
	}

	if err := database.DB.Create(&doc).Error; err != nil {
		log.Printf("[documents] create row: %v", err)
		// storage write already happened; remove the orphan object
		_ = utils.DeleteFromS3(key)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save document"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Document uploaded", Data: doc})
}

// ListDocumentsHandler returns the organization's documents, with a presigned
// download URL per entry. ?folder= filters.
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}

	q := database.DB.Where("organization_id = ?", org)
	if folder := r.URL.Query().Get("folder"); folder != "" {
		q = q.Where("folder = ?", folder)
	}

	var docs []models.Document
	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		log.Printf("[documents] list: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	type docWithURL struct {
		models.Document
		DownloadURL string `json:"download_url,omitempty"`
	}
	out := make([]docWithURL, 0, len(docs))
	for _, d := range docs {
		url, err := utils.GenerateSignedURL(d.StorageKey, 3600)
		if err != nil {
			log.Printf("[documents] presign %s: %v", d.StorageKey, err)
		}
		out = append(out, docWithURL{Document: d, DownloadURL: url})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "OK", Data: map[string]interface{}{"documents": out}})
}

// DeleteDocumentHandler removes the metadata row and the stored object. Only
// the uploader or an admin can delete.
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	uid, _ := utils.GetUserID(r)
	role, _ := utils.GetUserRole(r)
	org, ok := utils.GetUserOrg(r)
	if !ok {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "No organization for this account"})
		return
	}
	id := mux.Vars(r)["id"]

	var doc models.Document
	if err := database.DB.Where("id = ? AND organization_id = ?", id, org).First(&doc).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Document not found"})
		return
	}
	if doc.UserID != uid && models.RoleRank(role) < models.RoleRank(models.RoleAdmin) {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Only the uploader or an admin can delete this document"})
		return
	}

	if err := database.DB.Delete(&doc).Error; err != nil {
		log.Printf("[documents] delete row: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := utils.DeleteFromS3(doc.StorageKey); err != nil {
		// row is gone; log the stranded object
		log.Printf("[documents] delete object %s: %v", doc.StorageKey, err)
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Document deleted"})
}
