package dto

import (
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// SubmitRequest описывает тело запроса отправки попытки. Пустой список ответов допустим.
type SubmitRequest struct {
	UserID  uint            `json:"user_id" binding:"required"`
	QuizID  uint            `json:"quiz_id" binding:"required"`
	Answers []entity.Answer `json:"answers" binding:"required"`
}

// ToInput переводит запрос во входные данные сервиса
func (r SubmitRequest) ToInput() service.SubmitInput {
	return service.SubmitInput{UserID: r.UserID, QuizID: r.QuizID, Answers: r.Answers}
}

// SubmitResponse описывает ответ на отправку попытки
type SubmitResponse struct {
	Message     string `json:"message"`
	ResultID    uint   `json:"resultId"`
	Score       int    `json:"score"`
	TotalPoints int    `json:"totalPoints"`
}

// UserResultResponse содержит результат пользователя с названием викторины
type UserResultResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	QuizID      uint      `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// QuizResultResponse описывает строку таблицы результатов викторины
type QuizResultResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	QuizID      uint      `json:"quiz_id"`
	Username    string    `json:"username"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewUserResultsResponse создает DTO списка результатов пользователя
func NewUserResultsResponse(results []entity.UserResult) []UserResultResponse {
	resp := make([]UserResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, UserResultResponse{
			ID:          r.ID,
			UserID:      r.UserID,
			QuizID:      r.QuizID,
			QuizTitle:   r.QuizTitle,
			Score:       r.Score,
			TotalPoints: r.TotalPoints,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return resp
}

// NewQuizResultsResponse создает DTO таблицы результатов викторины
func NewQuizResultsResponse(results []entity.QuizResult) []QuizResultResponse {
	resp := make([]QuizResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, QuizResultResponse{
			ID:          r.ID,
			UserID:      r.UserID,
			QuizID:      r.QuizID,
			Username:    r.Username,
			Score:       r.Score,
			TotalPoints: r.TotalPoints,
			SubmittedAt: r.SubmittedAt,
		})
	}
	return resp
}
