package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами и их деревом вопросов
type QuizRepository interface {
	// CreateWithQuestions вставляет викторину, вопросы и варианты в одной транзакции
	// в порядке следования во входных данных. Проставляет ID по всему дереву.
	CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error
	// Replace обновляет метаданные викторины. Если replaceQuestions=true, все вопросы
	// удаляются и дерево вставляется заново из quiz.Questions. Все в одной транзакции.
	// Возвращает apperrors.ErrNotFound, если викторины нет.
	Replace(ctx context.Context, quiz *entity.Quiz, replaceQuestions bool) error
	// GetWithQuestions возвращает викторину с вопросами и вариантами, упорядоченными по ID
	GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error)
	// List возвращает все викторины без вложенных вопросов, новые первыми
	List(ctx context.Context) ([]entity.Quiz, error)
	// Delete удаляет викторину; вопросы, варианты и результаты удаляются каскадно
	Delete(ctx context.Context, id uint) error
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	// GetAnswerKeys возвращает правильные варианты вопросов викторины
	GetAnswerKeys(ctx context.Context, quizID uint) ([]entity.AnswerKey, error)
}
