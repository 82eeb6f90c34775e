package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
)

// DashboardController renders the signed-in user's overview
type DashboardController struct {
	jobService         services.JobService
	applicationService services.ApplicationService
	documentService    services.DocumentService
	messageService     services.MessageService
	logger             zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(
	jobService services.JobService,
	applicationService services.ApplicationService,
	documentService services.DocumentService,
	messageService services.MessageService,
	logger zerolog.Logger,
) *DashboardController {
	return &DashboardController{
		jobService:         jobService,
		applicationService: applicationService,
		documentService:    documentService,
		messageService:     messageService,
		logger:             logger,
	}
}

// Show renders the dashboard for the current role.
// Recruiters see their postings, candidates every job, their documents and applications.
func (c *DashboardController) Show(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	reqCtx := ctx.Request.Context()

	conversations, err := c.messageService.Conversations(reqCtx, user.ID)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	data := gin.H{
		"Title":         "Dashboard",
		"Conversations": conversations,
	}

	if user.IsRecruiter() {
		jobs, err := c.jobService.ListByRecruiter(reqCtx, user.ID)
		if err != nil {
			middleware.HandleWebError(ctx, err)
			return
		}
		data["Jobs"] = jobs
	} else {
		documents, err := c.documentService.ListByOwner(reqCtx, user.ID)
		if err != nil {
			middleware.HandleWebError(ctx, err)
			return
		}
		applications, err := c.applicationService.ListByCandidate(reqCtx, user.ID)
		if err != nil {
			middleware.HandleWebError(ctx, err)
			return
		}
		jobs, err := c.jobService.All(reqCtx)
		if err != nil {
			middleware.HandleWebError(ctx, err)
			return
		}
		applied := make(map[int64]bool, len(applications))
		for _, app := range applications {
			applied[app.JobID] = true
		}
		data["Jobs"] = jobs
		data["Applied"] = applied
		data["Documents"] = documents
		data["Applications"] = applications
	}

	middleware.Render(ctx, http.StatusOK, "dashboard.html", data)
}
