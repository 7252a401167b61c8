package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// CreateWithQuestions создает викторину вместе с вопросами и вариантами в одной транзакции
func (r *QuizRepo) CreateWithQuestions(ctx context.Context, quiz *entity.Quiz) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quiz.ID = 0
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return fmt.Errorf("insert quiz: %w", err)
		}
		return insertQuestions(tx, quiz.ID, quiz.Questions)
	})
}

// Replace обновляет викторину и, при необходимости, полностью заменяет ее вопросы
func (r *QuizRepo) Replace(ctx context.Context, quiz *entity.Quiz, replaceQuestions bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Quiz{}).
			Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"title":              quiz.Title,
				"description":        quiz.Description,
				"time_limit_minutes": quiz.TimeLimitMinutes,
			})
		if res.Error != nil {
			return fmt.Errorf("update quiz #%d: %w", quiz.ID, res.Error)
		}
		// Несуществующая викторина: обновлять нечего, операция считается успешной
		if res.RowsAffected == 0 || !replaceQuestions {
			return nil
		}

		// Варианты удаляются каскадно вместе с вопросами
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&entity.Question{}).Error; err != nil {
			return fmt.Errorf("delete questions of quiz #%d: %w", quiz.ID, err)
		}
		return insertQuestions(tx, quiz.ID, quiz.Questions)
	})
}

// insertQuestions вставляет вопросы и их варианты строго в порядке входного среза,
// чтобы ID отражали порядок авторства
func insertQuestions(tx *gorm.DB, quizID uint, questions []entity.Question) error {
	for i := range questions {
		q := &questions[i]
		q.ID = 0
		q.QuizID = quizID
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			return fmt.Errorf("insert question %d of quiz #%d: %w", i, quizID, err)
		}
		for j := range q.Options {
			opt := &q.Options[j]
			opt.ID = 0
			opt.QuestionID = q.ID
			if err := tx.Create(opt).Error; err != nil {
				return fmt.Errorf("insert option %d of question #%d: %w", j, q.ID, err)
			}
		}
	}
	return nil
}

// GetWithQuestions возвращает викторину вместе с вопросами и вариантами
func (r *QuizRepo) GetWithQuestions(ctx context.Context, id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.id ASC")
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// List возвращает все викторины, новые первыми
func (r *QuizRepo) List(ctx context.Context) ([]entity.Quiz, error) {
	quizzes := make([]entity.Quiz, 0)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&quizzes).Error
	return quizzes, err
}

// Delete удаляет викторину. Отсутствие записи ошибкой не считается.
func (r *QuizRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Quiz{}, id).Error
}

// ExistsByTitle проверяет, есть ли викторина с таким названием
func (r *QuizRepo) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Quiz{}).Where("title = ?", title).Count(&count).Error
	return count > 0, err
}

// GetAnswerKeys возвращает правильные варианты вопросов викторины, упорядоченные по вопросу и варианту
func (r *QuizRepo) GetAnswerKeys(ctx context.Context, quizID uint) ([]entity.AnswerKey, error) {
	keys := make([]entity.AnswerKey, 0)
	err := r.db.WithContext(ctx).
		Table("questions AS q").
		Select("q.id AS question_id, o.id AS option_id, q.points AS points").
		Joins("JOIN options o ON o.question_id = q.id").
		Where("q.quiz_id = ? AND o.is_correct = ?", quizID, true).
		Order("q.id ASC, o.id ASC").
		Scan(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("load answer keys of quiz #%d: %w", quizID, err)
	}
	return keys, nil
}
