package entity

// Типы вопросов
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTrueFalse      = "true_false"
)

// DefaultQuestionPoints применяется, когда баллы за вопрос не заданы
const DefaultQuestionPoints = 1

// Question представляет вопрос викторины. Варианты упорядочены по ID.
type Question struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	QuizID       uint     `gorm:"not null;index" json:"quiz_id"`
	QuestionText string   `gorm:"type:text;not null" json:"question_text"`
	QuestionType string   `gorm:"size:20;not null;default:'multiple_choice'" json:"question_type"`
	Points       int      `gorm:"not null;default:1" json:"points"`
	Options      []Option `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"options"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsValidQuestionType проверяет, поддерживается ли тип вопроса
func IsValidQuestionType(t string) bool {
	return t == QuestionTypeMultipleChoice || t == QuestionTypeTrueFalse
}

// ApplyDefaults заполняет тип и баллы вопроса, если они не заданы
func (q *Question) ApplyDefaults() {
	if q.QuestionType == "" {
		q.QuestionType = QuestionTypeMultipleChoice
	}
	if q.Points == 0 {
		q.Points = DefaultQuestionPoints
	}
}

// CorrectOption возвращает первый правильный вариант или nil, если его нет
func (q *Question) CorrectOption() *Option {
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectCount возвращает количество вариантов, отмеченных правильными
func (q *Question) CorrectCount() int {
	n := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// Option представляет вариант ответа на вопрос
type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	OptionText string `gorm:"type:text;not null" json:"option_text"`
	IsCorrect  bool   `gorm:"not null;default:false" json:"is_correct"`
}

// TableName определяет имя таблицы для GORM
func (Option) TableName() string {
	return "options"
}
