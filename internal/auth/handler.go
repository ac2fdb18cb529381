package auth

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelworthy/reelworthy-core/internal/comments"
	"github.com/reelworthy/reelworthy-core/internal/httputil"
	"github.com/reelworthy/reelworthy-core/internal/mail"
	"github.com/reelworthy/reelworthy-core/internal/ratings"
	"github.com/reelworthy/reelworthy-core/internal/users"
)

const resetTokenTTL = time.Hour

type Handler struct {
	db     *gorm.DB
	tokens *TokenService
	mailer *mail.Mailer
}

func NewHandler(db *gorm.DB, tokens *TokenService, mailer *mail.Mailer) *Handler {
	return &Handler{db: db, tokens: tokens, mailer: mailer}
}

type registerDTO struct {
	Username       string   `json:"username" binding:"required,min=3,max=50"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	FirstName      string   `json:"firstName" binding:"required"`
	LastName       string   `json:"lastName" binding:"required"`
	FavoriteGenres []string `json:"favoriteGenres"`
}

type loginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler creates an account, fires the welcome email and
// returns a token so the client is logged in immediately.
func (h *Handler) RegisterHandler(c *gin.Context) {
	var body registerDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.ValidationError(c, []string{err.Error()})
		return
	}

	hash, err := users.HashPassword(body.Password)
	if err != nil {
		log.Printf("error hashing password: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Registration failed. Please try again.")
		return
	}

	verificationToken := uuid.NewString()
	u := users.User{
		Username:               body.Username,
		Email:                  body.Email,
		PasswordHash:           hash,
		FirstName:              body.FirstName,
		LastName:               body.LastName,
		FavoriteGenres:         body.FavoriteGenres,
		EmailVerificationToken: &verificationToken,
	}
	if u.FavoriteGenres == nil {
		u.FavoriteGenres = []string{}
	}

	if err := users.Create(h.db, &u); err != nil {
		switch {
		case errors.Is(err, users.ErrEmailTaken):
			httputil.Error(c, http.StatusConflict, "Email already registered")
		case errors.Is(err, users.ErrUsernameTaken):
			httputil.Error(c, http.StatusConflict, "Username already taken")
		default:
			log.Printf("registration error: %v", err)
			httputil.Error(c, http.StatusInternalServerError, "Registration failed. Please try again.")
		}
		return
	}

	h.mailer.DispatchWelcome(u.Email, u.FirstName, verificationToken)

	token, err := h.tokens.Issue(&u)
	if err != nil {
		log.Printf("error generating token: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Registration failed. Please try again.")
		return
	}

	httputil.OK(c, http.StatusCreated,
		"User registered successfully. Please check your email to verify your account.",
		gin.H{"data": gin.H{"user": u, "token": token}})
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var body loginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.ValidationError(c, []string{err.Error()})
		return
	}

	u, err := users.FindByEmail(h.db, body.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("login error: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	if !users.CheckPassword(u.PasswordHash, body.Password) {
		httputil.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		log.Printf("error generating token: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Login failed. Please try again.")
		return
	}

	httputil.OK(c, http.StatusOK, "Login successful", gin.H{"data": gin.H{"user": u, "token": token}})
}

func (h *Handler) MeHandler(c *gin.Context) {
	uid, ok := httputil.CurrentUserID(c)
	if !ok {
		httputil.Error(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	u, err := users.FindByID(h.db, uid)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("error fetching profile: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	httputil.OK(c, http.StatusOK, "", gin.H{"data": u})
}

type profileDTO struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	FavoriteGenres []string `json:"favoriteGenres"`
}

// UpdateProfileHandler lets the owner change display fields. Identity
// fields (username, email) stay fixed.
func (h *Handler) UpdateProfileHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	var body profileDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.ValidationError(c, []string{err.Error()})
		return
	}

	u, err := users.FindByID(h.db, uid)
	if err != nil {
		httputil.Error(c, http.StatusNotFound, "User not found")
		return
	}

	if body.FirstName != "" {
		u.FirstName = body.FirstName
	}
	if body.LastName != "" {
		u.LastName = body.LastName
	}
	if body.FavoriteGenres != nil {
		u.FavoriteGenres = body.FavoriteGenres
	}

	if err := h.db.Save(u).Error; err != nil {
		log.Printf("error updating profile: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	httputil.OK(c, http.StatusOK, "Profile updated successfully", gin.H{"data": u})
}

type changePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) ChangePasswordHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	var body changePasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.ValidationError(c, []string{err.Error()})
		return
	}

	u, err := users.FindByID(h.db, uid)
	if err != nil {
		httputil.Error(c, http.StatusNotFound, "User not found")
		return
	}

	if !users.CheckPassword(u.PasswordHash, body.CurrentPassword) {
		httputil.Error(c, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := users.HashPassword(body.NewPassword)
	if err != nil {
		log.Printf("error hashing password: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to change password")
		return
	}
	u.PasswordHash = hash

	if err := h.db.Save(u).Error; err != nil {
		log.Printf("error changing password: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to change password")
		return
	}

	httputil.OK(c, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) VerifyEmailHandler(c *gin.Context) {
	u, err := users.ConsumeVerificationToken(h.db, c.Param("token"))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusBadRequest, "Invalid or expired verification token")
			return
		}
		log.Printf("email verification error: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Email verification failed")
		return
	}

	h.mailer.DispatchVerificationSuccess(u.Email, u.FirstName)

	httputil.OK(c, http.StatusOK, "Email verified successfully", nil)
}

type forgotPasswordDTO struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) ForgotPasswordHandler(c *gin.Context) {
	var body forgotPasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.Error(c, http.StatusBadRequest, "Email is required")
		return
	}

	u, err := users.FindByEmail(h.db, body.Email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "No user found with this email address")
			return
		}
		log.Printf("forgot password error: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to process password reset request")
		return
	}

	resetToken := uuid.NewString()
	if err := users.SetResetToken(h.db, u, resetToken, resetTokenTTL); err != nil {
		log.Printf("error storing reset token: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to process password reset request")
		return
	}

	h.mailer.DispatchPasswordReset(u.Email, u.FirstName, resetToken)

	httputil.OK(c, http.StatusOK, "Password reset link sent to your email", nil)
}

type resetPasswordDTO struct {
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) ResetPasswordHandler(c *gin.Context) {
	var body resetPasswordDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		httputil.Error(c, http.StatusBadRequest, "Password must be at least 6 characters long")
		return
	}

	if _, err := users.ConsumeResetToken(h.db, c.Param("token"), body.Password); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		log.Printf("reset password error: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	httputil.OK(c, http.StatusOK, "Password reset successfully", nil)
}

// DeleteAccountHandler removes the caller's account along with their
// comments, likes and ratings in one transaction, so no orphaned content
// is left behind.
func (h *Handler) DeleteAccountHandler(c *gin.Context) {
	uid, _ := httputil.CurrentUserID(c)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := comments.PurgeUser(tx, uid); err != nil {
			return err
		}
		if err := ratings.DeleteByUser(tx, uid); err != nil {
			return err
		}
		return users.Delete(tx, uid)
	})
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			httputil.Error(c, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("account deletion error: %v", err)
		httputil.Error(c, http.StatusInternalServerError, "Failed to delete account")
		return
	}

	httputil.OK(c, http.StatusOK, "Account deleted successfully", nil)
}
