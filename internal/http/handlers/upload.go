package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"cinecraft/internal/services"
	"cinecraft/internal/upload"

	"github.com/gin-gonic/gin"
)

const uploadFolder = "uploads"

func openFile(fh *multipart.FileHeader) (services.FileInput, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return services.FileInput{}, func() {}, err
	}
	return services.FileInput{Name: fh.Filename, Size: fh.Size, Body: f}, func() { _ = f.Close() }, nil
}

func uploadOne(c *gin.Context, field, folder string, allowed []string) {
	fh, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "No file uploaded", map[string]string{field: "No file uploaded"})
		return
	}
	in, closeFn, err := openFile(fh)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Could not read uploaded file", err)
		return
	}
	defer closeFn()

	stored, err := uploadService(c, allowed).Upload(c.Request.Context(), in, folder)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "File uploaded successfully",
		"url":       stored.URL,
		"public_id": stored.PublicID,
		"data":      stored,
	})
}

// UploadImage accepts the booking form's "image" field: images, videos and
// documents.
func UploadImage(c *gin.Context) {
	uploadOne(c, "image", uploadFolder, upload.AttachmentTypes)
}

// UploadSingle accepts the booking attachment "file" field.
func UploadSingle(c *gin.Context) {
	uploadOne(c, "file", uploadFolder, upload.AttachmentTypes)
}

func UploadMultiple(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["files"]) == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "No files uploaded", map[string]string{"files": "No files uploaded"})
		return
	}
	inputs := make([]services.FileInput, 0, len(form.File["files"]))
	for _, fh := range form.File["files"] {
		in, closeFn, err := openFile(fh)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "Could not read uploaded file", err)
			return
		}
		defer closeFn()
		inputs = append(inputs, in)
	}

	stored, err := uploadService(c, upload.AttachmentTypes).UploadMany(c.Request.Context(), inputs, uploadFolder)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	urls := make([]string, 0, len(stored))
	for _, s := range stored {
		urls = append(urls, s.URL)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Files uploaded successfully",
		"urls":    urls,
		"data":    stored,
	})
}

// DeleteUpload removes a stored file; public IDs may contain folder slashes.
func DeleteUpload(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("publicId"), "/")
	if err := uploadService(c, nil).Delete(c.Request.Context(), publicID); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil, "File deleted successfully")
}
