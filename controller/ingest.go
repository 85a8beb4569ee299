package controller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/service/ingest"
)

// IngestController handles document uploads.
type IngestController struct {
	ingestService *ingest.Service
}

func NewIngestController(ingestService *ingest.Service) *IngestController {
	return &IngestController{ingestService: ingestService}
}

// UploadDocument accepts multipart `files` plus a `userId` form field,
// stages each file on disk and indexes it into the user's collection.
// Files are processed in order; the first failure aborts the rest.
func (c *IngestController) UploadDocument(ctx *gin.Context) {
	userID := ctx.PostForm("userId")
	if userID == "" {
		respondError(ctx, model.NewError(model.ErrorParams, fmt.Errorf("userId form field is required")))
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		respondError(ctx, model.NewError(model.ErrorParams, fmt.Errorf("failed to parse multipart form: %w", err)))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		respondError(ctx, model.NewError(model.ErrorParams, fmt.Errorf("at least one file is required")))
		return
	}

	uploads := make([]ingest.FileUpload, 0, len(files))
	for _, fileHeader := range files {
		ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
		localPath := filepath.Join(os.TempDir(), uuid.NewString()+ext)

		if err := ctx.SaveUploadedFile(fileHeader, localPath); err != nil {
			respondError(ctx, model.NewError(model.ErrorInternal, fmt.Errorf("failed to stage %s: %w", fileHeader.Filename, err)))
			return
		}
		defer func(path string) {
			if err := os.Remove(path); err != nil {
				log.Warnf("failed to remove staged upload %s: %v", path, err)
			}
		}(localPath)

		uploads = append(uploads, ingest.FileUpload{
			Name:      fileHeader.Filename,
			Size:      fileHeader.Size,
			Extension: ext,
			LocalPath: localPath,
		})
	}

	indexed, uploadErr := c.ingestService.IndexFiles(ctx.Request.Context(), userID, uploads)
	if uploadErr != nil {
		respondError(ctx, uploadErr)
		return
	}

	ctx.JSON(http.StatusOK, model.UploadResponse{FilesNames: indexed})
}
