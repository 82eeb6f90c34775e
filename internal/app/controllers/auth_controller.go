package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/talentbridge/internal/app/models"
	"github.com/yigit/talentbridge/internal/app/models/dto"
	"github.com/yigit/talentbridge/internal/app/services"
	"github.com/yigit/talentbridge/internal/middleware"
	"github.com/yigit/talentbridge/internal/pkg/apperrors"
)

// AuthController handles registration, login and logout
type AuthController struct {
	authService    *services.AuthService
	authMiddleware *middleware.AuthMiddleware
	logger         zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, authMiddleware *middleware.AuthMiddleware, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService:    authService,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func registerPage(form dto.RegisterRequest) gin.H {
	form.Password, form.ConfirmPassword = "", ""
	return gin.H{
		"Title": "Create an account",
		"Form":  form,
		"Roles": []models.RoleType{models.RoleCandidate, models.RoleRecruiter},
	}
}

// ShowRegister renders the registration form
func (c *AuthController) ShowRegister(ctx *gin.Context) {
	if middleware.CurrentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	middleware.Render(ctx, http.StatusOK, "register.html", registerPage(dto.RegisterRequest{RoleType: models.RoleCandidate}))
}

// Register creates the account and signs the user in
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.logger.Debug().Err(err).Msg("Invalid registration form")
		renderForm(ctx, "register.html", middleware.BindingError(err), registerPage(req))
		return
	}

	result, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Registration rejected")
		renderForm(ctx, "register.html", err, registerPage(req))
		return
	}

	c.authMiddleware.SetSessionCookie(ctx, result.Token, result.ExpiresAt)
	redirectWithFlash(ctx, "/dashboard", middleware.FlashSuccess, "Welcome to TalentBridge, "+result.User.Username+"!")
}

func loginPage(username, next string) gin.H {
	return gin.H{
		"Title":    "Log in",
		"Username": username,
		"Next":     next,
	}
}

// ShowLogin renders the login form
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	if middleware.CurrentUser(ctx) != nil {
		ctx.Redirect(http.StatusFound, "/dashboard")
		return
	}
	middleware.Render(ctx, http.StatusOK, "login.html", loginPage("", ctx.Query("next")))
}

// Login verifies the credentials and starts a session
func (c *AuthController) Login(ctx *gin.Context) {
	next := ctx.PostForm("next")

	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		renderForm(ctx, "login.html", middleware.BindingError(err), loginPage(req.Username, next))
		return
	}

	result, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			err = apperrors.NewCustomError(err, "Invalid username or password.")
		}
		renderForm(ctx, "login.html", err, loginPage(req.Username, next))
		return
	}

	c.logger.Info().Int64("userID", result.User.ID).Msg("User logged in")
	c.authMiddleware.SetSessionCookie(ctx, result.Token, result.ExpiresAt)
	redirectWithFlash(ctx, safeRedirect(next, "/dashboard"), middleware.FlashSuccess, "Welcome back, "+result.User.Username+".")
}

// Logout ends the session
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), c.authMiddleware.SessionToken(ctx)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to end session")
	}
	c.authMiddleware.ClearSessionCookie(ctx)
	redirectWithFlash(ctx, "/", middleware.FlashSuccess, "You have been logged out.")
}
