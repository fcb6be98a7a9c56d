package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

const maxImageUploadSize = 10 << 20 // 10 MB

// saveUploadedImage stores a multipart image under ./uploads/<kind> and
// returns the absolute URL clients should use.
func saveUploadedImage(c *gin.Context, file *multipart.FileHeader, kind string) (string, error) {
	dstDir := filepath.Join("./uploads", kind)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dstPath := filepath.Join(dstDir, filename)
	if err := c.SaveUploadedFile(file, dstPath); err != nil {
		return "", err
	}

	base := os.Getenv("PUBLIC_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base + "/uploads/" + kind + "/" + filename, nil
}

// readImageForm enforces the size cap and pulls the "file" field.
func readImageForm(c *gin.Context) (*multipart.FileHeader, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageUploadSize)
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "result": nil, "error": "file is required"})
		return nil, false
	}
	return file, true
}
