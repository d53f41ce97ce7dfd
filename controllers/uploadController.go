package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type uploadedFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
}

func uploadsRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// uploadType sanitizes the :type segment to a plain directory name.
func uploadType(c *gin.Context) string {
	t := filepath.Base(c.Param("type"))
	if t == "" || t == "." || t == string(filepath.Separator) {
		return "general"
	}
	return t
}

func validateUpload(file *multipart.FileHeader) string {
	if file.Size > maxUploadSize {
		return "File too large. Maximum size is 5MB."
	}
	if !allowedImageTypes[strings.ToLower(file.Header.Get("Content-Type"))] {
		return "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed."
	}
	return ""
}

// saveUpload writes the file under UPLOAD_DIR/{type} with a timestamped,
// collision-free name.
func saveUpload(c *gin.Context, file *multipart.FileHeader, fileType string) (uploadedFile, error) {
	dir := filepath.Join(uploadsRoot(), fileType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return uploadedFile{}, err
	}

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
		return uploadedFile{}, err
	}

	return uploadedFile{
		URL:          fmt.Sprintf("/api/uploads/%s/%s", fileType, name),
		Filename:     name,
		OriginalName: file.Filename,
		Size:         file.Size,
	}, nil
}

// UploadImage stores a single image from the `image` form field.
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	if msg := validateUpload(file); msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	saved, err := saveUpload(c, file, uploadType(c))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondOK(c, saved)
}

// UploadImages stores up to ten images from the `images` form field.
func UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "No files uploaded")
		return
	}
	if len(files) > 10 {
		respondError(c, http.StatusBadRequest, "Too many files. Maximum is 10.")
		return
	}

	for _, file := range files {
		if msg := validateUpload(file); msg != "" {
			respondError(c, http.StatusBadRequest, msg)
			return
		}
	}

	fileType := uploadType(c)
	saved := make([]uploadedFile, 0, len(files))
	for _, file := range files {
		item, err := saveUpload(c, file, fileType)
		if err != nil {
			respondError(c, http.StatusInternalServerError, err.Error())
			return
		}
		saved = append(saved, item)
	}

	respondOK(c, saved)
}

// ServeUpload returns a stored file.
func ServeUpload(c *gin.Context) {
	path := filepath.Join(uploadsRoot(), uploadType(c), filepath.Base(c.Param("filename")))

	if _, err := os.Stat(path); err != nil {
		respondError(c, http.StatusNotFound, "File not found")
		return
	}

	c.File(path)
}

// DeleteUpload removes a stored file. Deleting an absent file succeeds.
func DeleteUpload(c *gin.Context) {
	path := filepath.Join(uploadsRoot(), uploadType(c), filepath.Base(c.Param("filename")))

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(c, "File deleted successfully")
}
