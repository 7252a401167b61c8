package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
)

const msgCredentialsRequired = "Username and password are required"

// AuthHandler обрабатывает запросы регистрации и входа
type AuthHandler struct {
	authService Authenticator
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register обрабатывает запрос на регистрацию
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, "AuthHandler", err, "Registration failed")
		return
	}

	log.Printf("[AuthHandler] Зарегистрирован пользователь #%d (%s)", user.ID, user.Role)
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Registration successful",
		User:    dto.NewUserResponse(user),
	})
}

// Login обрабатывает запрос на вход
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgCredentialsRequired})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, "AuthHandler", err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.NewUserResponse(user),
	})
}
