package dto

import "github.com/yourusername/quiz-api/internal/domain/entity"

// RegisterRequest описывает тело запроса регистрации
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest описывает тело запроса входа
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse содержит публичные данные пользователя
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AuthResponse описывает ответ на регистрацию и вход
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// NewUserResponse создает DTO пользователя без хеша пароля
func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, Role: user.Role}
}
