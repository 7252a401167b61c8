package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами попыток
type ResultRepository interface {
	// Create сохраняет результат. Несуществующий пользователь или викторина
	// дают apperrors.ErrValidation.
	Create(ctx context.Context, result *entity.Result) error
	// ListByUser возвращает результаты пользователя, новые первыми
	ListByUser(ctx context.Context, userID uint) ([]entity.UserResult, error)
	// ListByQuiz возвращает таблицу лидеров: по баллам, при равенстве раньше сданные выше
	ListByQuiz(ctx context.Context, quizID uint) ([]entity.QuizResult, error)
}
