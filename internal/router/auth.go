package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Debian1107/Reviewed/internal/config"
	"github.com/Debian1107/Reviewed/pkg/auth"
	"github.com/Debian1107/Reviewed/pkg/global"
	"github.com/Debian1107/Reviewed/pkg/logger"
	"github.com/Debian1107/Reviewed/pkg/models"
	"github.com/Debian1107/Reviewed/pkg/mongo"
)

// Signup registers a new account and opens a session for it.
func Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: name, email, or password.", []global.ValidationError{
			{Field: "request", Message: err.Error(), Code: "validation_error"},
		}))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.L().Named("auth").Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account.", nil))
		return
	}

	user := req.NewUser(hash)
	if err := mongo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, mongo.ErrConflict) {
			c.JSON(http.StatusConflict, global.ErrorResponse("An account with this email already exists.", []global.ValidationError{
				{Field: "email", Message: "Email already registered", Code: "duplicate"},
			}))
			return
		}
		logger.L().Named("auth").Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account.", nil))
		return
	}

	if err := openSession(c, user.ID.Hex()); err != nil {
		logger.L().Named("auth").Error("failed to issue session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to create account.", nil))
		return
	}

	c.JSON(http.StatusCreated, global.APIResponse{
		Success: true,
		Data:    user,
		Message: "Account created successfully.",
	})
}

// Login checks credentials and opens a session. Unknown email and wrong
// password get the same answer.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: email or password.", nil))
		return
	}

	user, err := mongo.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
			return
		}
		logger.L().Named("auth").Error("failed to look up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to log in.", nil))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
		return
	}

	if err := openSession(c, user.ID.Hex()); err != nil {
		logger.L().Named("auth").Error("failed to issue session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to log in.", nil))
		return
	}

	c.JSON(http.StatusOK, global.APIResponse{
		Success: true,
		Data:    user,
		Message: "Logged in successfully.",
	})
}

// ResetPassword changes the signed-in viewer's password after verifying the
// current one, then reissues the session. Wrong current password and unknown
// account get the same answer.
func ResetPassword(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
		return
	}

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Missing required fields: password or newpassword.", nil))
		return
	}

	user, err := mongo.FindUserByID(c.Request.Context(), *viewer)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
			return
		}
		logger.L().Named("auth").Error("failed to look up user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password.", nil))
		return
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Invalid credentials", nil))
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logger.L().Named("auth").Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password.", nil))
		return
	}
	if err := mongo.UpdateUserPassword(c.Request.Context(), user.ID, hash); err != nil {
		logger.L().Named("auth").Error("failed to update password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password.", nil))
		return
	}

	if err := openSession(c, user.ID.Hex()); err != nil {
		logger.L().Named("auth").Error("failed to issue session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to reset password.", nil))
		return
	}

	c.JSON(http.StatusOK, global.MessageResponse("Password reset successful"))
}

// Logout clears the session cookie. Always succeeds.
func Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", secureCookies(), true)
	c.JSON(http.StatusOK, global.MessageResponse("Logged out successfully."))
}

// UserDetails returns the signed-in viewer's account.
func UserDetails(c *gin.Context) {
	viewer := currentViewer(c)
	if viewer == nil {
		c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
		return
	}

	user, err := mongo.FindUserByID(c.Request.Context(), *viewer)
	if err != nil {
		if errors.Is(err, mongo.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, global.ErrorResponse("Unauthorized", nil))
			return
		}
		logger.L().Named("auth").Error("failed to fetch user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to fetch user details.", nil))
		return
	}

	c.JSON(http.StatusOK, global.SuccessResponse(user))
}

func openSession(c *gin.Context, userID string) error {
	token, err := auth.IssueToken(userID, config.C.JWTSecret)
	if err != nil {
		return err
	}
	c.SetCookie(auth.SessionCookieName, token, sessionCookieMaxAge, "/", "", secureCookies(), true)
	return nil
}

func secureCookies() bool {
	return config.C.Env == "production"
}
