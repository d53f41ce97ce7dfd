package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartContext builds a gin context around a multipart upload. Each file
// is written under the given field with an explicit content type.
func multipartContext(t *testing.T, field string, contentType string, filenames ...string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range filenames {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/uploads/general", &buf)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	setParam(c, "type", "general")
	return c, w
}

func useTempUploadDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	return dir
}

func TestUploadImage(t *testing.T) {
	dir := useTempUploadDir(t)

	c, w := multipartContext(t, "image", "image/png", "photo.png")
	UploadImage(c)

	require.Equal(t, http.StatusOK, w.Code)
	var saved uploadedFile
	decodeData(t, w, &saved)

	assert.Equal(t, "photo.png", saved.OriginalName)
	assert.True(t, strings.HasPrefix(saved.URL, "/api/uploads/general/"))
	assert.True(t, strings.HasSuffix(saved.Filename, ".png"))

	// the bytes landed on disk under UPLOAD_DIR/{type}
	data, err := os.ReadFile(filepath.Join(dir, "general", saved.Filename))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestUploadImageRejectsBadContentType(t *testing.T) {
	useTempUploadDir(t)

	c, w := multipartContext(t, "image", "application/pdf", "doc.pdf")
	UploadImage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.", decodeEnvelope(t, w).Error)
}

func TestUploadImageRequiresFile(t *testing.T) {
	useTempUploadDir(t)

	c, w := multipartContext(t, "wrongfield", "image/png", "photo.png")
	UploadImage(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No file uploaded", decodeEnvelope(t, w).Error)
}

func TestUploadImagesLimit(t *testing.T) {
	useTempUploadDir(t)

	names := make([]string, 11)
	for i := range names {
		names[i] = "photo.png"
	}
	c, w := multipartContext(t, "images", "image/png", names...)
	UploadImages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Too many files. Maximum is 10.", decodeEnvelope(t, w).Error)
}

func TestUploadImagesValidatesBeforeSaving(t *testing.T) {
	dir := useTempUploadDir(t)

	c, w := multipartContext(t, "images", "application/pdf", "a.pdf", "b.pdf")
	UploadImages(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// nothing was written
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServeAndDeleteUpload(t *testing.T) {
	dir := useTempUploadDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "general"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "general", "stored.png"), []byte("bytes"), 0o644))

	serve := func(filename string) *httptest.ResponseRecorder {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/api/uploads/general/"+filename, nil)
		setParam(c, "type", "general")
		setParam(c, "filename", filename)
		ServeUpload(c)
		return w
	}

	assert.Equal(t, http.StatusOK, serve("stored.png").Code)
	assert.Equal(t, http.StatusNotFound, serve("missing.png").Code)

	del := func(filename string) *httptest.ResponseRecorder {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("DELETE", "/api/uploads/general/"+filename, nil)
		setParam(c, "type", "general")
		setParam(c, "filename", filename)
		DeleteUpload(c)
		return w
	}

	assert.Equal(t, http.StatusOK, del("stored.png").Code)
	_, err := os.Stat(filepath.Join(dir, "general", "stored.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting an absent file still succeeds
	assert.Equal(t, http.StatusOK, del("stored.png").Code)
}

func TestUploadTypeSanitized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	setParam(c, "type", "../../etc")
	assert.Equal(t, "etc", uploadType(c))
}
