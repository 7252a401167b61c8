package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

const (
	quizListCacheKey = "quizzes:list"
	defaultQuizTTL   = 5 * time.Minute
)

// Сообщения об ошибках ввода, которые видит клиент
const (
	MsgInvalidQuizInput = "Invalid input. Title, created_by and questions array are required."
	MsgTitleRequired    = "Title is required"
)

func quizCacheKey(id uint) string {
	return fmt.Sprintf("quiz:%d", id)
}

// OptionInput — вариант ответа во входных данных автора
type OptionInput struct {
	OptionText string `json:"option_text" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuestionInput — вопрос во входных данных автора
type QuestionInput struct {
	QuestionText string        `json:"question_text" validate:"required"`
	QuestionType string        `json:"question_type" validate:"omitempty,oneof=multiple_choice true_false"`
	Points       int           `json:"points" validate:"gte=0"`
	Options      []OptionInput `json:"options" validate:"dive"`
}

// CreateQuizInput содержит данные для создания викторины
type CreateQuizInput struct {
	Title            string          `json:"title" validate:"required"`
	Description      string          `json:"description"`
	TimeLimitMinutes int             `json:"time_limit_minutes"`
	CreatedBy        uint            `json:"created_by" validate:"required"`
	Questions        []QuestionInput `json:"questions" validate:"required,dive"`
}

// ReplaceQuizInput содержит данные для замены викторины. Questions == nil оставляет
// существующие вопросы нетронутыми, пустой срез удаляет их все.
type ReplaceQuizInput struct {
	Title            string          `json:"title" validate:"required"`
	Description      string          `json:"description"`
	TimeLimitMinutes int             `json:"time_limit_minutes"`
	Questions        []QuestionInput `json:"questions" validate:"omitempty,dive"`
}

// QuizService предоставляет методы для авторинга викторин
type QuizService struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository // может быть nil, если Redis отключен
	cacheTTL  time.Duration
	validate  *validator.Validate
}

// NewQuizService создает новый сервис викторин
func NewQuizService(quizRepo repository.QuizRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration) *QuizService {
	if cacheTTL <= 0 {
		cacheTTL = defaultQuizTTL
	}
	return &QuizService{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		validate:  newValidator(),
	}
}

// toQuestions переводит входные вопросы в сущности с примененными значениями по умолчанию
func toQuestions(in []QuestionInput) []entity.Question {
	questions := make([]entity.Question, 0, len(in))
	for _, qi := range in {
		q := entity.Question{
			QuestionText: qi.QuestionText,
			QuestionType: qi.QuestionType,
			Points:       qi.Points,
			Options:      make([]entity.Option, 0, len(qi.Options)),
		}
		for _, oi := range qi.Options {
			q.Options = append(q.Options, entity.Option{OptionText: oi.OptionText, IsCorrect: oi.IsCorrect})
		}
		q.ApplyDefaults()
		questions = append(questions, q)
	}
	return questions
}

// CreateQuiz создает викторину вместе со всеми вопросами и вариантами атомарно
func (s *QuizService) CreateQuiz(ctx context.Context, in CreateQuizInput) (*entity.Quiz, error) {
	if err := s.validate.Struct(in); err != nil {
		msg, topLevel := describeValidation(err)
		if topLevel {
			return nil, apperrors.Validation(MsgInvalidQuizInput)
		}
		return nil, apperrors.Validation("Invalid input. %s", msg)
	}

	createdBy := in.CreatedBy
	quiz := &entity.Quiz{
		Title:            in.Title,
		Description:      in.Description,
		TimeLimitMinutes: in.TimeLimitMinutes,
		CreatedBy:        &createdBy,
		Questions:        toQuestions(in.Questions),
	}
	quiz.ApplyDefaults()

	if err := s.quizRepo.CreateWithQuestions(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	log.Printf("[QuizService] Викторина #%d '%s' создана: вопросов=%d", quiz.ID, quiz.Title, len(quiz.Questions))

	s.invalidate(ctx, 0)
	return quiz, nil
}

// ReplaceQuiz обновляет метаданные викторины и, если переданы вопросы, полностью их заменяет
func (s *QuizService) ReplaceQuiz(ctx context.Context, id uint, in ReplaceQuizInput) error {
	if err := s.validate.Struct(in); err != nil {
		msg, topLevel := describeValidation(err)
		if topLevel {
			return apperrors.Validation(MsgTitleRequired)
		}
		return apperrors.Validation("Invalid input. %s", msg)
	}

	quiz := &entity.Quiz{
		ID:               id,
		Title:            in.Title,
		Description:      in.Description,
		TimeLimitMinutes: in.TimeLimitMinutes,
	}
	replaceQuestions := in.Questions != nil
	if replaceQuestions {
		quiz.Questions = toQuestions(in.Questions)
	}
	quiz.ApplyDefaults()

	if err := s.quizRepo.Replace(ctx, quiz, replaceQuestions); err != nil {
		return fmt.Errorf("failed to replace quiz #%d: %w", id, err)
	}
	log.Printf("[QuizService] Викторина #%d обновлена (вопросы заменены: %t)", id, replaceQuestions)

	s.invalidate(ctx, id)
	return nil
}

// GetQuiz возвращает викторину с вопросами и вариантами
func (s *QuizService) GetQuiz(ctx context.Context, id uint) (*entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached entity.Quiz
		err := s.cacheRepo.GetJSON(ctx, quizCacheKey(id), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Ошибка чтения кеша викторины #%d: %v", id, err)
		}
	}

	quiz, err := s.quizRepo.GetWithQuestions(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Quiz not found")
		}
		return nil, fmt.Errorf("failed to get quiz #%d: %w", id, err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(ctx, quizCacheKey(id), quiz, s.cacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи кеша викторины #%d: %v", id, err)
		}
	}
	return quiz, nil
}

// ListQuizzes возвращает все викторины без вопросов, новые первыми
func (s *QuizService) ListQuizzes(ctx context.Context) ([]entity.Quiz, error) {
	if s.cacheRepo != nil {
		var cached []entity.Quiz
		err := s.cacheRepo.GetJSON(ctx, quizListCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizService] Ошибка чтения кеша списка викторин: %v", err)
		}
	}

	quizzes, err := s.quizRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(ctx, quizListCacheKey, quizzes, s.cacheTTL); err != nil {
			log.Printf("[QuizService] Ошибка записи кеша списка викторин: %v", err)
		}
	}
	return quizzes, nil
}

// DeleteQuiz удаляет викторину вместе с вопросами, вариантами и результатами
func (s *QuizService) DeleteQuiz(ctx context.Context, id uint) error {
	if err := s.quizRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz #%d: %w", id, err)
	}
	log.Printf("[QuizService] Викторина #%d удалена", id)

	s.invalidate(ctx, id)
	return nil
}

// SeedQuizzes создает викторины, названий которых еще нет в базе. Возвращает число созданных.
func (s *QuizService) SeedQuizzes(ctx context.Context, createdBy uint, quizzes []CreateQuizInput) (int, error) {
	created := 0
	for _, in := range quizzes {
		exists, err := s.quizRepo.ExistsByTitle(ctx, in.Title)
		if err != nil {
			return created, fmt.Errorf("failed to check quiz '%s': %w", in.Title, err)
		}
		if exists {
			log.Printf("[QuizService] Викторина '%s' уже существует, пропускаем", in.Title)
			continue
		}
		in.CreatedBy = createdBy
		if _, err := s.CreateQuiz(ctx, in); err != nil {
			return created, fmt.Errorf("failed to seed quiz '%s': %w", in.Title, err)
		}
		created++
	}
	return created, nil
}

// invalidate сбрасывает кеш списка и, если id != 0, кеш конкретной викторины
func (s *QuizService) invalidate(ctx context.Context, id uint) {
	if s.cacheRepo == nil {
		return
	}
	keys := []string{quizListCacheKey}
	if id != 0 {
		keys = append(keys, quizCacheKey(id))
	}
	if err := s.cacheRepo.Delete(ctx, keys...); err != nil {
		log.Printf("[QuizService] Ошибка инвалидации кеша %v: %v", keys, err)
	}
}
