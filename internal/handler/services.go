package handler

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// Authenticator — операции регистрации и входа
type Authenticator interface {
	Register(ctx context.Context, username, password, role string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (*entity.User, error)
}

// QuizAuthoring — операции авторинга викторин
type QuizAuthoring interface {
	CreateQuiz(ctx context.Context, in service.CreateQuizInput) (*entity.Quiz, error)
	ReplaceQuiz(ctx context.Context, id uint, in service.ReplaceQuizInput) error
	GetQuiz(ctx context.Context, id uint) (*entity.Quiz, error)
	ListQuizzes(ctx context.Context) ([]entity.Quiz, error)
	DeleteQuiz(ctx context.Context, id uint) error
}

// AttemptScoring — прием попыток и выдача результатов
type AttemptScoring interface {
	Submit(ctx context.Context, in service.SubmitInput) (*entity.Result, error)
	ResultsByUser(ctx context.Context, userID uint) ([]entity.UserResult, error)
	ResultsByQuiz(ctx context.Context, quizID uint) ([]entity.QuizResult, error)
}

var (
	_ Authenticator  = (*service.AuthService)(nil)
	_ QuizAuthoring  = (*service.QuizService)(nil)
	_ AttemptScoring = (*service.AttemptService)(nil)
)
