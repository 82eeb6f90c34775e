// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

// parseIDParam reads a positive numeric path parameter; anything else is a 404
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewResourceNotFoundError("The page you are looking for does not exist.")
	}
	return id, nil
}

// renderForm re-renders a form page with the error that rejected it.
// Unexpected errors fall through to the error page.
func renderForm(ctx *gin.Context, name string, err error, data gin.H) {
	page := middleware.ErrorPageFor(err)
	if page.Status >= http.StatusInternalServerError {
		middleware.HandleWebError(ctx, err)
		return
	}
	if data == nil {
		data = gin.H{}
	}
	data["Error"] = page.Message
	middleware.Render(ctx, page.Status, name, data)
}

// redirectWithFlash sets a one-shot notice and redirects
func redirectWithFlash(ctx *gin.Context, location, kind, message string) {
	if message != "" {
		middleware.SetFlash(ctx, kind, message)
	}
	ctx.Redirect(http.StatusFound, location)
}

// safeRedirect only allows local paths as post-login targets
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
