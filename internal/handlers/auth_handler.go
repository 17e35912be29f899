package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/greenleaf/garden-api/internal/middleware"
	"github.com/greenleaf/garden-api/internal/models"
	"github.com/greenleaf/garden-api/internal/storage"
	"github.com/greenleaf/garden-api/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Name     string `json:"name" binding:"max=120"`
	Username string `json:"username" binding:"max=60"`
}

type profileUpdateRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=120"`
	Username        *string `json:"username" binding:"omitempty,min=1,max=60"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" binding:"omitempty,min=8,max=128"`
}

// Login checks credentials and issues a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	login := req.Email
	if login == "" {
		login = req.Username
	}
	if strings.TrimSpace(login) == "" {
		fieldError(c, "email", "email or username is required")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.UserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.Logger.InfoContext(ctx, "login failed: unknown user", "login", login)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		h.respondError(c, "User", err)
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		h.Logger.InfoContext(ctx, "login failed: wrong password", "userId", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		h.respondError(c, "User", err)
		return
	}

	h.Logger.InfoContext(ctx, "user logged in", "userId", user.ID, "role", user.Role)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token, "user": user.Profile()})
}

// Register creates an account. While no admin exists the new account becomes
// the admin; otherwise it gets the plain user role.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = email
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		h.respondError(c, "User", err)
		return
	}

	h.registerMu.Lock()
	defer h.registerMu.Unlock()

	hasAdmin, err := h.Store.HasAdmin(ctx)
	if err != nil {
		h.respondError(c, "User", err)
		return
	}
	role := models.RoleUser
	if !hasAdmin {
		role = models.RoleAdmin
	}

	user, err := h.Store.Users.Create(ctx, &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Username: username,
		Password: hash,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "An account with this email or username already exists"})
			return
		}
		h.respondError(c, "User", err)
		return
	}

	h.Logger.InfoContext(ctx, "user registered", "userId", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

// ValidateSession reports whether the request's bearer token is still good.
// It never rejects; an invalid session is {valid: false}.
func (h *Handler) ValidateSession(c *gin.Context) {
	claims := h.Tokens.Verify(utils.ExtractBearer(c.GetHeader("Authorization")))
	if claims == nil {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	user, err := h.Store.Users.Get(c.Request.Context(), models.ID(claims.UserID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			h.respondError(c, "User", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "user": user.Profile()})
}

// GetCurrentUser returns the profile of the authenticated user.
func (h *Handler) GetCurrentUser(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "requiresAuth": true})
		return
	}

	user, err := h.Store.Users.Get(c.Request.Context(), models.ID(claims.UserID))
	if err != nil {
		h.respondError(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, user.Profile())
}

// UpdateCurrentUser changes the authenticated user's name, username or
// password. A password change needs the current password.
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "requiresAuth": true})
		return
	}

	var req profileUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	id := models.ID(claims.UserID)

	patch := models.UserPatch{Name: req.Name, Username: req.Username}
	if req.NewPassword != nil {
		user, err := h.Store.Users.Get(ctx, id)
		if err != nil {
			h.respondError(c, "User", err)
			return
		}
		if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
			fieldError(c, "currentPassword", "is incorrect")
			return
		}
		hash, err := utils.HashPassword(*req.NewPassword)
		if err != nil {
			h.respondError(c, "User", err)
			return
		}
		patch.Password = &hash
	}

	updated, err := h.Store.Users.Update(ctx, id, &patch)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"message": "That username is already taken"})
			return
		}
		h.respondError(c, "User", err)
		return
	}
	c.JSON(http.StatusOK, updated.Profile())
}
