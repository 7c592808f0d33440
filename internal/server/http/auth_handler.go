package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BharadwajRachakonda/todo-backend/internal/errs"
	"github.com/BharadwajRachakonda/todo-backend/internal/service"
	"github.com/BharadwajRachakonda/todo-backend/internal/validate"
)

type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles user registration, login, and profile lookup.
type AuthHandler struct {
	auth service.AuthService
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// CreateUser registers a new account and returns a user token.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Name("name", req.Name); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.StrongPassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.auth.Register(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"authToken": tok})
}

// Login authenticates an existing account and returns a user token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tok, err := h.auth.LoginWithIP(c.Request.Context(), req.Name, req.Password, c.ClientIP())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"authToken": tok})
}

// GetUser returns the authenticated user's record without credential material.
func (h *AuthHandler) GetUser(c *gin.Context) {
	ident, ok := UserFromContext(c)
	if !ok {
		respondError(c, errs.ErrUnauthenticated)
		return
	}
	view, err := h.auth.Profile(c.Request.Context(), ident)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
