package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// CreateQuizRequest описывает тело запроса создания викторины.
// Вложенные вопросы и варианты проверяет сервис.
type CreateQuizRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	TimeLimitMinutes int                     `json:"time_limit_minutes"`
	CreatedBy        uint                    `json:"created_by" binding:"required"`
	Questions        []service.QuestionInput `json:"questions" binding:"required"`
}

// ToInput переводит запрос во входные данные сервиса
func (r CreateQuizRequest) ToInput() service.CreateQuizInput {
	return service.CreateQuizInput{
		Title:            r.Title,
		Description:      r.Description,
		TimeLimitMinutes: r.TimeLimitMinutes,
		CreatedBy:        r.CreatedBy,
		Questions:        r.Questions,
	}
}

// UpdateQuizRequest описывает тело запроса замены викторины.
// Отсутствующее поле questions оставляет вопросы нетронутыми.
type UpdateQuizRequest struct {
	Title            string                  `json:"title" binding:"required"`
	Description      string                  `json:"description"`
	TimeLimitMinutes int                     `json:"time_limit_minutes"`
	Questions        []service.QuestionInput `json:"questions"`
}

// ToInput переводит запрос во входные данные сервиса
func (r UpdateQuizRequest) ToInput() service.ReplaceQuizInput {
	return service.ReplaceQuizInput{
		Title:            r.Title,
		Description:      r.Description,
		TimeLimitMinutes: r.TimeLimitMinutes,
		Questions:        r.Questions,
	}
}

// OptionResponse представляет вариант ответа в формате для ответа клиенту
type OptionResponse struct {
	ID         uint   `json:"id"`
	QuestionID uint   `json:"question_id"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct"`
}

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID           uint             `json:"id"`
	QuizID       uint             `json:"quiz_id"`
	QuestionText string           `json:"question_text"`
	QuestionType string           `json:"question_type"`
	Points       int              `json:"points"`
	Options      []OptionResponse `json:"options"`
}

// QuizSummaryResponse описывает элемент списка викторин без вопросов
type QuizSummaryResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	TimeLimitMinutes int       `json:"time_limit_minutes"`
	CreatedBy        *uint     `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}

// QuizResponse содержит викторину со всеми вопросами и вариантами
type QuizResponse struct {
	QuizSummaryResponse
	Questions []QuestionResponse `json:"questions"`
}

// CreateQuizResponse описывает ответ на создание викторины
type CreateQuizResponse struct {
	Message string `json:"message"`
	QuizID  uint   `json:"quizId"`
}

// NewQuizSummaryResponse создает DTO для элемента списка
func NewQuizSummaryResponse(quiz *entity.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		TimeLimitMinutes: quiz.TimeLimitMinutes,
		CreatedBy:        quiz.CreatedBy,
		CreatedAt:        quiz.CreatedAt,
	}
}

// NewQuizListResponse создает DTO списка викторин. Пустой список сериализуется как [].
func NewQuizListResponse(quizzes []entity.Quiz) []QuizSummaryResponse {
	resp := make([]QuizSummaryResponse, 0, len(quizzes))
	for i := range quizzes {
		resp = append(resp, NewQuizSummaryResponse(&quizzes[i]))
	}
	return resp
}

// NewQuizResponse создает DTO викторины с деревом вопросов
func NewQuizResponse(quiz *entity.Quiz) QuizResponse {
	questions := make([]QuestionResponse, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		options := make([]OptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, OptionResponse{
				ID:         o.ID,
				QuestionID: o.QuestionID,
				OptionText: o.OptionText,
				IsCorrect:  o.IsCorrect,
			})
		}
		questions = append(questions, QuestionResponse{
			ID:           q.ID,
			QuizID:       q.QuizID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Options:      options,
		})
	}

	return QuizResponse{
		QuizSummaryResponse: NewQuizSummaryResponse(quiz),
		Questions:           questions,
	}
}
