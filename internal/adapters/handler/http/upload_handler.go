package http

import (
	"io"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
	"github.com/rogerjs93/health-entry-engine/internal/core/services"
)

// 32 MB in memory before multipart parsing spills to disk.
const maxUploadMemory = 32 << 20

type UploadHandler struct {
	submit *services.SubmitService
	logger *zap.Logger
}

func NewUploadHandler(submit *services.SubmitService, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		submit: submit,
		logger: logger,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/uploads", h.Upload)
}

// Upload accepts any multipart form and forwards every file part upstream.
// Field names are normalized there to file0, file1, ... in field order, so
// callers are free to name their parts however their form does.
func (h *UploadHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart body", "details": err.Error()})
		return
	}

	mf := c.Request.MultipartForm
	defer mf.RemoveAll()

	fields := make([]string, 0, len(mf.File))
	for field := range mf.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []domain.UploadedFile
	for _, field := range fields {
		for _, fh := range mf.File[field] {
			f, err := fh.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file part", "details": err.Error()})
				return
			}

			content, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file part", "details": err.Error()})
				return
			}

			files = append(files, domain.UploadedFile{
				Name:        fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Content:     content,
			})
		}
	}

	receipt, err := h.submit.Upload(c.Request.Context(), files)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, receipt)
}
