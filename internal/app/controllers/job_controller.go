package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
	"github.com/yigit/talentbridge/internal/pkg/helpers"
)

// JobController handles job postings and applications
type JobController struct {
	jobService         services.JobService
	applicationService services.ApplicationService
	documentService    services.DocumentService
	logger             zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(
	jobService services.JobService,
	applicationService services.ApplicationService,
	documentService services.DocumentService,
	logger zerolog.Logger,
) *JobController {
	return &JobController{
		jobService:         jobService,
		applicationService: applicationService,
		documentService:    documentService,
		logger:             logger,
	}
}

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

// List renders the searchable job board
func (c *JobController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	query := strings.TrimSpace(ctx.Query("q"))

	result, err := c.jobService.List(ctx.Request.Context(), query, page, size)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	applied := map[int64]bool{}
	if user := middleware.CurrentUser(ctx); user.IsCandidate() {
		applied, err = c.applicationService.AppliedJobIDs(ctx.Request.Context(), user.ID)
		if err != nil {
			middleware.HandleWebError(ctx, err)
			return
		}
	}

	middleware.Render(ctx, http.StatusOK, "jobs.html", gin.H{
		"Title":   "Jobs",
		"Result":  result,
		"Applied": applied,
	})
}

// ShowNew renders the job posting form
func (c *JobController) ShowNew(ctx *gin.Context) {
	middleware.Render(ctx, http.StatusOK, "job_new.html", gin.H{
		"Title": "Post a job",
		"Form":  dto.CreateJobRequest{},
	})
}

// Create publishes a job posting
func (c *JobController) Create(ctx *gin.Context) {
	var req dto.CreateJobRequest
	if err := ctx.ShouldBind(&req); err != nil {
		renderForm(ctx, "job_new.html", middleware.BindingError(err), gin.H{"Title": "Post a job", "Form": req})
		return
	}

	job, err := c.jobService.Create(ctx.Request.Context(), middleware.CurrentUser(ctx), &req)
	if err != nil {
		renderForm(ctx, "job_new.html", err, gin.H{"Title": "Post a job", "Form": req})
		return
	}

	redirectWithFlash(ctx, jobPath(job.ID), middleware.FlashSuccess, "Job posted")
}

// jobDetailData collects what the detail page shows to the current user
func (c *JobController) jobDetailData(ctx *gin.Context, job *models.JobPosting, form dto.ApplyRequest) (gin.H, error) {
	user := middleware.CurrentUser(ctx)
	data := gin.H{
		"Title":   job.Title,
		"Job":     job,
		"Form":    form,
		"IsOwner": user.IsRecruiter() && user.ID == job.RecruiterID,
	}

	if user.IsCandidate() {
		reqCtx := ctx.Request.Context()
		applied, err := c.applicationService.HasApplied(reqCtx, user.ID, job.ID)
		if err != nil {
			return nil, err
		}
		documents, err := c.documentService.ListByOwner(reqCtx, user.ID)
		if err != nil {
			return nil, err
		}
		data["HasApplied"] = applied
		data["Documents"] = documents
	}
	return data, nil
}

// Show renders a job posting with the apply form for candidates
func (c *JobController) Show(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	job, err := c.jobService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	form := dto.ApplyRequest{}
	if user := middleware.CurrentUser(ctx); user != nil {
		form.FullName = user.Username
	}

	data, err := c.jobDetailData(ctx, job, form)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}
	middleware.Render(ctx, http.StatusOK, "job_detail.html", data)
}

// Apply submits the current candidate's application. The resume is either
// one of their documents or a file uploaded with the form.
func (c *JobController) Apply(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	job, err := c.jobService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	var req dto.ApplyRequest
	bindErr := ctx.ShouldBind(&req)

	var file *multipart.FileHeader
	if bindErr == nil {
		file, err = ctx.FormFile("resume")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			file = nil
		case err != nil:
			bindErr = err
		}
	}

	if bindErr == nil {
		_, err = c.applicationService.Apply(ctx.Request.Context(), middleware.CurrentUser(ctx), job.ID, &req, file)
		if err == nil {
			redirectWithFlash(ctx, jobPath(job.ID), middleware.FlashSuccess, "Application submitted")
			return
		}
		if errors.Is(err, apperrors.ErrAlreadyApplied) {
			redirectWithFlash(ctx, jobPath(job.ID), middleware.FlashError, apperrors.UserMessage(err))
			return
		}
		c.logger.Debug().Err(err).Int64("jobID", job.ID).Msg("Application rejected")
	} else {
		err = middleware.BindingError(bindErr)
	}

	data, dataErr := c.jobDetailData(ctx, job, req)
	if dataErr != nil {
		middleware.HandleWebError(ctx, dataErr)
		return
	}
	renderForm(ctx, "job_detail.html", err, data)
}

// Applicants lists the applications to a job owned by the current recruiter
func (c *JobController) Applicants(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	result, err := c.applicationService.ListApplicants(ctx.Request.Context(), middleware.CurrentUser(ctx), id)
	if err != nil {
		middleware.HandleWebError(ctx, err)
		return
	}

	middleware.Render(ctx, http.StatusOK, "applicants.html", gin.H{
		"Title":  "Applicants for " + result.Job.Title,
		"Result": result,
	})
}
