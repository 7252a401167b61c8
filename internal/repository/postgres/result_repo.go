package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// Create сохраняет результат попытки
func (r *ResultRepo) Create(ctx context.Context, result *entity.Result) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("Unknown user or quiz")
		}
		return err
	}
	return nil
}

// ListByUser возвращает результаты пользователя с названиями викторин
func (r *ResultRepo) ListByUser(ctx context.Context, userID uint) ([]entity.UserResult, error) {
	rows := make([]entity.UserResult, 0)
	err := r.db.WithContext(ctx).
		Table("results AS r").
		Select("r.*, q.title AS quiz_title").
		Joins("JOIN quizzes q ON q.id = r.quiz_id").
		Where("r.user_id = ?", userID).
		Order("r.submitted_at DESC, r.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list results of user #%d: %w", userID, err)
	}
	return rows, nil
}

// ListByQuiz возвращает результаты викторины с именами участников
func (r *ResultRepo) ListByQuiz(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	rows := make([]entity.QuizResult, 0)
	err := r.db.WithContext(ctx).
		Table("results AS r").
		Select("r.*, u.username AS username").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.quiz_id = ?", quizID).
		Order("r.score DESC, r.submitted_at ASC, r.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list results of quiz #%d: %w", quizID, err)
	}
	return rows, nil
}
