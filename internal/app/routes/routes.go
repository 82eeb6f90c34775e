package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/talentbridge/internal/app/controllers"
	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/web"
)

// multipartOverhead is the room left for form fields next to the uploaded file
const multipartOverhead int64 = 1 << 20

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	homeController *controllers.HomeController,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	jobController *controllers.JobController,
	candidateController *controllers.CandidateController,
	documentController *controllers.DocumentController,
	messageController *controllers.MessageController,
	authMiddleware *middleware.AuthMiddleware,
	maxUploadSize int64,
) {
	router.StaticFS("/static", web.Static())
	router.GET("/health", homeController.Health)

	// Every page below knows the session user and the pending flash
	pages := router.Group("")
	pages.Use(middleware.LoadFlash(), authMiddleware.LoadUser())

	// --- Public pages ---
	pages.GET("/", homeController.Home)
	pages.GET("/register", authController.ShowRegister)
	pages.POST("/register", authController.Register)
	pages.GET("/login", authController.ShowLogin)
	pages.POST("/login", authController.Login)
	pages.GET("/logout", authController.Logout)
	pages.POST("/logout", authController.Logout)
	pages.GET("/jobs", jobController.List)
	pages.GET("/jobs/:id", jobController.Show)

	uploadLimit := middleware.BodyLimit(maxUploadSize + multipartOverhead)

	// --- Signed-in pages ---
	authenticated := pages.Group("")
	authenticated.Use(authMiddleware.RequireLogin())
	{
		authenticated.GET("/dashboard", dashboardController.Show)

		documents := authenticated.Group("/documents")
		{
			documents.GET("", documentController.List)
			documents.POST("", uploadLimit, documentController.Upload)
			documents.GET("/:id/download", documentController.Download)
			documents.POST("/:id/delete", documentController.Delete)
		}

		messages := authenticated.Group("/messages")
		{
			messages.GET("", messageController.Inbox)
			messages.GET("/:userID", messageController.Thread)
			messages.POST("/:userID", messageController.Send)
		}
	}

	// --- Recruiter pages ---
	recruiter := authenticated.Group("")
	recruiter.Use(authMiddleware.RoleRequired(models.RoleRecruiter))
	{
		recruiter.GET("/jobs/new", jobController.ShowNew)
		recruiter.POST("/jobs", jobController.Create)
		recruiter.GET("/jobs/:id/applicants", jobController.Applicants)
		recruiter.GET("/candidates", candidateController.List)
		recruiter.GET("/candidates/:id", candidateController.Profile)
	}

	// --- Candidate pages ---
	candidate := authenticated.Group("")
	candidate.Use(authMiddleware.RoleRequired(models.RoleCandidate))
	{
		candidate.POST("/jobs/:id/apply", uploadLimit, jobController.Apply)
	}

	router.NoRoute(middleware.LoadFlash(), authMiddleware.LoadUser(), middleware.NotFound())
}
