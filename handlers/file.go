package handlers

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"greychat/utils"
)

// UploadFile stores a blob on local disk and returns its opaque
// reference. The core never interprets the content; callers attach the
// returned url to profiles, messages or statuses.
func (h *Handler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "no file uploaded")
		return
	}
	defer file.Close()

	maxSize := int64(50 * 1024 * 1024)
	if header.Size > maxSize {
		utils.BadRequest(c, "file too large (max 50MB)")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := utils.GenerateUUID() + ext
	uploadPath := filepath.Join(h.cfg.UploadDir, filename)

	out, err := os.Create(uploadPath)
	if err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		utils.InternalError(c, "failed to save file")
		return
	}

	utils.Success(c, gin.H{
		"url":       "/files/" + filename,
		"name":      header.Filename,
		"size":      header.Size,
		"mime_type": header.Header.Get("Content-Type"),
	})
}

func (h *Handler) ServeFile(c *gin.Context) {
	filename := c.Param("filename")

	cleanFilename := filepath.Clean(filename)
	if cleanFilename != filepath.Base(cleanFilename) || cleanFilename == "." || cleanFilename == ".." {
		utils.BadRequest(c, "invalid filename")
		return
	}

	filePath := filepath.Join(h.cfg.UploadDir, cleanFilename)

	absUploadDir, err := filepath.Abs(h.cfg.UploadDir)
	if err != nil {
		utils.InternalError(c, "server configuration error")
		return
	}
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		utils.BadRequest(c, "invalid file path")
		return
	}
	if !strings.HasPrefix(absFilePath, absUploadDir+string(filepath.Separator)) {
		utils.BadRequest(c, "invalid file path")
		return
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		utils.NotFound(c, "file not found")
		return
	}

	c.File(filePath)
}
