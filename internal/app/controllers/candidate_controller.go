package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
)

// CandidateController lets recruiters browse candidates
type CandidateController struct {
	candidateService services.CandidateService
	logger           zerolog.Logger
}

// NewCandidateController creates a new CandidateController
func NewCandidateController(candidateService services.CandidateService, logger zerolog.Logger) *CandidateController {
	return &CandidateController{
		candidateService: candidateService,
		logger:           logger,
	}
}

// List renders the candidate browser; q matches usernames and resume text
func (c *CandidateController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	query := strings.TrimSpace(ctx.Query("q"))

	result, err := c.candidateService.List(ctx.Request.Context(), query, page, size)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	middleware.Render(ctx, http.StatusOK, "candidates.html", gin.H{
		"Title":  "Candidates",
		"Result": result,
	})
}

// Profile renders one candidate with their documents
func (c *CandidateController) Profile(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	profile, err := c.candidateService.Profile(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	middleware.Render(ctx, http.StatusOK, "candidate_profile.html", gin.H{
		"Title":   profile.Candidate.Username,
		"Profile": profile,
	})
}
