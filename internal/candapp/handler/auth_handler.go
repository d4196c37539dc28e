package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GermanFOSSIL/candapp/internal/candapp/service"
	"github.com/GermanFOSSIL/candapp/internal/config"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login issues a session token for valid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "usuario y contraseña requeridos")
		return
	}

	user, err := h.svc.Authenticate(req.Username, req.Password)
	if err != nil {
		Unauthorized(c, "Usuario o contraseña incorrectos")
		return
	}

	token, err := h.svc.GenerateToken(user)
	if err != nil {
		InternalError(c, "no se pudo generar el token: "+err.Error())
		return
	}

	Success(c, gin.H{
		"access_token": token.AccessToken,
		"expires_in":   token.ExpiresIn,
		"username":     user.Username,
		"role":         user.Role,
	})
}

type createUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateUser adds a user to the in-process table. Admin only; enforced on
// the route.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "usuario, contraseña y rol requeridos")
		return
	}

	user, err := h.svc.CreateUser(req.Username, req.Password, req.Role)
	switch {
	case errors.Is(err, service.ErrUserExists):
		Conflict(c, "el usuario ya existe")
		return
	case errors.Is(err, service.ErrInvalidRole):
		BadRequest(c, "rol inválido")
		return
	case err != nil:
		InternalError(c, err.Error())
		return
	}

	Created(c, user)
}

// Me returns the identity of the authenticated caller.
func (h *AuthHandler) Me(c *gin.Context) {
	role, _ := c.Get("role")
	Success(c, gin.H{
		"username": GetUserID(c),
		"role":     role,
	})
}

// ListUsers returns the user table without passwords.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	Success(c, gin.H{"items": h.svc.ListUsers()})
}
