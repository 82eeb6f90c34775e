package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
)

// latestJobsOnHome is how many postings the landing page shows
const latestJobsOnHome = 5

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HomeController serves the landing page and the health check
type HomeController struct {
	jobService services.JobService
	database   Pinger
	logger     zerolog.Logger
}

// NewHomeController creates a new HomeController
func NewHomeController(jobService services.JobService, database Pinger, logger zerolog.Logger) *HomeController {
	return &HomeController{
		jobService: jobService,
		database:   database,
		logger:     logger,
	}
}

// Home renders the landing page with the latest postings
func (c *HomeController) Home(ctx *gin.Context) {
	jobs, err := c.jobService.Latest(ctx.Request.Context(), latestJobsOnHome)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	middleware.Render(ctx, http.StatusOK, "home.html", gin.H{
		"Title": "TalentBridge",
		"Jobs":  jobs,
	})
}

// Health reports whether the database answers
func (c *HomeController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := c.database.Ping(pingCtx); err != nil {
		c.logger.Error().Err(err).Msg("Health check failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
