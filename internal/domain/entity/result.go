package entity

import (
	"time"
)

// Result фиксирует одну попытку прохождения викторины. После вставки не изменяется.
type Result struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	QuizID      uint      `gorm:"not null;index" json:"quiz_id"`
	Score       int       `gorm:"not null;default:0" json:"score"`
	TotalPoints int       `gorm:"not null;default:0" json:"total_points"`
	SubmittedAt time.Time `gorm:"not null" json:"submitted_at"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// Percent возвращает долю набранных баллов в процентах
func (r *Result) Percent() float64 {
	if r.TotalPoints == 0 {
		return 0
	}
	return float64(r.Score) * 100 / float64(r.TotalPoints)
}

// UserResult — результат пользователя с названием викторины
type UserResult struct {
	Result
	QuizTitle string `json:"quiz_title"`
}

// QuizResult — результат викторины с именем участника
type QuizResult struct {
	Result
	Username string `json:"username"`
}

// Answer — выбранный участником вариант ответа на вопрос
type Answer struct {
	QuestionID uint `json:"question_id"`
	OptionID   uint `json:"option_id"`
}

// AnswerKey — правильный вариант вопроса викторины и его стоимость
type AnswerKey struct {
	QuestionID uint
	OptionID   uint
	Points     int
}
