package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct{ service Service }

func NewHandler(s Service) *Handler { return &Handler{s} }

// ===============================
// Registration
// ===============================

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"taro@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret123"`
	FullName string `json:"fullName" example:"Taro Yamada"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(RegisterInput(req))
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}

// ===============================
// Login
// ===============================

type loginReq struct {
	Email    string `json:"email" binding:"required,email" example:"taro@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, user, err := h.service.Login(LoginInput(req))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
		},
	})
}

// ===============================
// Refresh Token
// ===============================

type refreshReq struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"your_refresh_token_here"`
}

func (h *Handler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}

// ===============================
// Logout
// ===============================

type logoutReq struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) Logout(c *gin.Context) {
	var req logoutReq
	_ = c.ShouldBindJSON(&req) // body is optional; logout without it is still a 200

	if err := h.service.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ===============================
// Forgot Password
// ===============================

type forgotPasswordReq struct {
	Email string `json:"email" binding:"required,email" example:"taro@example.com"`
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide a valid email address",
		})
		return
	}

	err := h.service.RequestPasswordReset(req.Email)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			// ⚠️ Security: don't reveal whether the account exists
			c.JSON(http.StatusOK, gin.H{
				"message": "If an account exists with this email, a password reset link has been sent",
			})
			return

		case strings.Contains(err.Error(), "email"):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "failed to send email",
				"message": "Email service is currently unavailable. Please try again later.",
			})
			return

		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal server error",
				"message": "An unexpected error occurred. Please try again later.",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account exists with this email, a password reset link has been sent",
	})
}

// ===============================
// Reset Password
// ===============================

type resetPasswordReq struct {
	Token       string `json:"token" binding:"required" example:"reset_token_abc123"`
	NewPassword string `json:"newPassword" binding:"required,min=6" example:"newsecret123"`
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req resetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request",
			"message": "Please provide both token and new password",
		})
		return
	}

	err := h.service.ResetPassword(req.Token, req.NewPassword)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "token"):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid token",
				"message": "This password reset link is invalid or has expired. Please request a new one.",
			})
			return

		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "internal server error",
				"message": "Unable to reset password. Please try again later.",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password has been reset successfully. You can now login with your new password.",
	})
}

// ===============================
// Current User
// ===============================

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, err := h.service.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
