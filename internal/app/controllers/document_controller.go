package controllers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

// DocumentController handles the current user's documents
type DocumentController struct {
	documentService services.DocumentService
	logger          zerolog.Logger
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(documentService services.DocumentService, logger zerolog.Logger) *DocumentController {
	return &DocumentController{
		documentService: documentService,
		logger:          logger,
	}
}

func (c *DocumentController) renderList(ctx *gin.Context, uploadErr error) {
	user := middleware.CurrentUser(ctx)
	documents, err := c.documentService.ListByOwner(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	data := gin.H{
		"Title":     "My documents",
		"Documents": documents,
	}
	if uploadErr != nil {
		renderForm(ctx, "documents.html", uploadErr, data)
		return
	}
	middleware.Render(ctx, http.StatusOK, "documents.html", data)
}

// List renders the upload form and the user's documents
func (c *DocumentController) List(ctx *gin.Context) {
	c.renderList(ctx, nil)
}

// Upload stores a new document
func (c *DocumentController) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		switch {
		case middleware.IsBodyTooLarge(err):
			err = apperrors.ErrFileTooLarge
		case errors.Is(err, http.ErrMissingFile):
			err = apperrors.NewCustomError(apperrors.ErrFileRequired, "Choose a file to upload")
		default:
			err = middleware.BindingError(err)
		}
		c.renderList(ctx, err)
		return
	}

	doc, err := c.documentService.Upload(ctx.Request.Context(), middleware.CurrentUser(ctx).ID, file)
	if err != nil {
		c.renderList(ctx, err)
		return
	}

	redirectWithFlash(ctx, "/documents", middleware.FlashSuccess, fmt.Sprintf("Uploaded %s", doc.FileName))
}

// Download streams a document as an attachment
func (c *DocumentController) Download(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	doc, content, err := c.documentService.Open(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}
	defer content.Close()

	contentType := doc.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})

	ctx.DataFromReader(http.StatusOK, doc.FileSize, contentType, content, map[string]string{
		"Content-Disposition":    disposition,
		"X-Content-Type-Options": "nosniff",
	})
}

// Delete removes one of the user's documents
func (c *DocumentController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	if err := c.documentService.Delete(ctx.Request.Context(), middleware.CurrentUser(ctx), id); err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	redirectWithFlash(ctx, "/documents", middleware.FlashSuccess, "Document deleted")
}
