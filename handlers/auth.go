package handlers

import (
	"context"
	"errors"
	"net/http"

	"lunch-voting-api/middleware"
	"lunch-voting-api/models"
	"lunch-voting-api/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Phone     string `json:"phone" binding:"max=32"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Register creates a new user account
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid registration data.", bindingErrors(err))
		return
	}

	if taken, err := h.userTaken(c.Request.Context(), req.Email, req.Username); err != nil {
		h.internalError(c, "check user uniqueness", err)
		return
	} else if taken != "" {
		fail(c, http.StatusBadRequest, taken, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalError(c, "hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if store.IsUniqueViolation(err) {
			fail(c, http.StatusBadRequest, "A user with that email or username already exists.", nil)
			return
		}
		h.internalError(c, "create user", err)
		return
	}

	ok(c, http.StatusCreated, "User successfully registered.", user)
}

// userTaken returns a message naming the clashing field, or "".
func (h *Handler) userTaken(ctx context.Context, email, username string) (string, error) {
	var existing models.User
	err := h.db.WithContext(ctx).Where("email = ? OR username = ?", email, username).Take(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if existing.Email == email {
		return "A user with that email already exists.", nil
	}
	return "A user with that username already exists.", nil
}

// Login authenticates a user and returns an access/refresh pair
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid login credentials", bindingErrors(err))
		return
	}

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fail(c, http.StatusBadRequest, "Invalid login credentials", nil)
		return
	}
	if err != nil {
		h.internalError(c, "load user for login", err)
		return
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		fail(c, http.StatusBadRequest, "Invalid login credentials", nil)
		return
	}

	pair, err := h.tokens.IssueTokens(&user)
	if err != nil {
		h.internalError(c, "issue tokens", err)
		return
	}

	ok(c, http.StatusAccepted, "Login success", gin.H{
		"name":          user.FullName(),
		"id":            user.ID,
		"access_token":  pair.Access,
		"refresh_token": pair.Refresh,
	})
}

// RefreshToken trades a valid refresh token for a new pair
func (h *Handler) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid refresh request.", bindingErrors(err))
		return
	}

	claims, err := h.tokens.Parse(req.RefreshToken, middleware.RefreshToken)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Token is invalid or expired", nil)
		return
	}

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", claims.UserID).Error; err != nil || !user.IsActive {
		fail(c, http.StatusUnauthorized, "Token is invalid or expired", nil)
		return
	}

	pair, err := h.tokens.IssueTokens(&user)
	if err != nil {
		h.internalError(c, "issue tokens", err)
		return
	}
	ok(c, http.StatusOK, "Token refreshed", pair)
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var user models.User
	if err := h.db.WithContext(c.Request.Context()).First(&user, "id = ?", userID).Error; err != nil {
		fail(c, http.StatusNotFound, "User not found", nil)
		return
	}

	data := gin.H{"user": user, "employee_no": nil}
	var emp models.Employee
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", userID).Take(&emp).Error
	switch {
	case err == nil:
		data["employee_no"] = emp.EmployeeNo
	case !errors.Is(err, gorm.ErrRecordNotFound):
		h.internalError(c, "load employee for profile", err)
		return
	}
	ok(c, http.StatusOK, "success", data)
}
