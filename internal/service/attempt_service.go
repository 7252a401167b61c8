package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// MsgMissingSubmitFields возвращается, когда в попытке нет пользователя, викторины или ответов
const MsgMissingSubmitFields = "Missing required fields"

// ResultPublisher рассылает новые результаты подписчикам live-таблицы викторины
type ResultPublisher interface {
	HasSubscribers(quizID uint) bool
	PublishResult(quizID uint, result entity.QuizResult)
}

// SubmitInput описывает попытку прохождения викторины
type SubmitInput struct {
	UserID  uint            `json:"user_id"`
	QuizID  uint            `json:"quiz_id"`
	Answers []entity.Answer `json:"answers"`
}

// AttemptService оценивает попытки и отдает результаты
type AttemptService struct {
	quizRepo   repository.QuizRepository
	resultRepo repository.ResultRepository
	userRepo   repository.UserRepository
	publisher  ResultPublisher // может быть nil
	now        func() time.Time
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	quizRepo repository.QuizRepository,
	resultRepo repository.ResultRepository,
	userRepo repository.UserRepository,
	publisher ResultPublisher,
) *AttemptService {
	return &AttemptService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		userRepo:   userRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

// ScoreAnswers считает набранные и максимальные баллы.
// Максимум складывается из вопросов, у которых есть правильный вариант; если таких
// вариантов несколько, учитывается первый. Для каждого вопроса засчитывается только
// первый ответ, ответы на неизвестные вопросы игнорируются.
func ScoreAnswers(keys []entity.AnswerKey, answers []entity.Answer) (score, total int) {
	byQuestion := make(map[uint]entity.AnswerKey, len(keys))
	for _, k := range keys {
		if _, seen := byQuestion[k.QuestionID]; seen {
			continue
		}
		byQuestion[k.QuestionID] = k
		total += k.Points
	}

	answered := make(map[uint]struct{}, len(answers))
	for _, a := range answers {
		if _, dup := answered[a.QuestionID]; dup {
			continue
		}
		answered[a.QuestionID] = struct{}{}

		key, ok := byQuestion[a.QuestionID]
		if ok && key.OptionID == a.OptionID {
			score += key.Points
		}
	}
	return score, total
}

// Submit оценивает попытку и сохраняет результат
func (s *AttemptService) Submit(ctx context.Context, in SubmitInput) (*entity.Result, error) {
	if in.UserID == 0 || in.QuizID == 0 || in.Answers == nil {
		return nil, apperrors.Validation(MsgMissingSubmitFields)
	}

	keys, err := s.quizRepo.GetAnswerKeys(ctx, in.QuizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answer keys: %w", err)
	}

	score, total := ScoreAnswers(keys, in.Answers)
	result := &entity.Result{
		UserID:      in.UserID,
		QuizID:      in.QuizID,
		Score:       score,
		TotalPoints: total,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	log.Printf("[AttemptService] Результат #%d: пользователь #%d, викторина #%d, %d/%d",
		result.ID, result.UserID, result.QuizID, score, total)

	s.publish(ctx, result)
	return result, nil
}

func (s *AttemptService) publish(ctx context.Context, result *entity.Result) {
	if s.publisher == nil || !s.publisher.HasSubscribers(result.QuizID) {
		return
	}
	entry := entity.QuizResult{Result: *result}
	if user, err := s.userRepo.GetByID(ctx, result.UserID); err == nil {
		entry.Username = user.Username
	} else {
		log.Printf("[AttemptService] Не удалось получить пользователя #%d для live-ленты: %v", result.UserID, err)
	}
	s.publisher.PublishResult(result.QuizID, entry)
}

// ResultsByUser возвращает результаты пользователя, новые первыми
func (s *AttemptService) ResultsByUser(ctx context.Context, userID uint) ([]entity.UserResult, error) {
	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results of user #%d: %w", userID, err)
	}
	return results, nil
}

// ResultsByQuiz возвращает таблицу лидеров викторины
func (s *AttemptService) ResultsByQuiz(ctx context.Context, quizID uint) ([]entity.QuizResult, error) {
	results, err := s.resultRepo.ListByQuiz(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results of quiz #%d: %w", quizID, err)
	}
	return results, nil
}
