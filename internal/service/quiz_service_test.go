package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func validCreateInput() CreateQuizInput {
	return CreateQuizInput{
		Title:     "Math",
		CreatedBy: 1,
		Questions: []QuestionInput{
			{
				QuestionText: "2+2?",
				Options: []OptionInput{
					{OptionText: "3"},
					{OptionText: "4", IsCorrect: true},
				},
			},
			{
				QuestionText: "Sky is blue",
				QuestionType: entity.QuestionTypeTrueFalse,
				Points:       5,
				Options: []OptionInput{
					{OptionText: "True", IsCorrect: true},
					{OptionText: "False"},
				},
			},
		},
	}
}

func TestQuizService_CreateQuiz_AppliesDefaultsAndKeepsOrder(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)

	var saved *entity.Quiz
	quizRepo.On("CreateWithQuestions", mock.Anything, mock.AnythingOfType("*entity.Quiz")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.Quiz)
			saved.ID = 7
		}).
		Return(nil).Once()

	quiz, err := svc.CreateQuiz(context.Background(), validCreateInput())

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(7), quiz.ID)
	assert.Equal(t, "", quiz.Description)
	assert.Equal(t, entity.DefaultTimeLimitMinutes, quiz.TimeLimitMinutes)
	require.NotNil(t, quiz.CreatedBy)
	assert.Equal(t, uint(1), *quiz.CreatedBy)

	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "2+2?", quiz.Questions[0].QuestionText)
	assert.Equal(t, entity.QuestionTypeMultipleChoice, quiz.Questions[0].QuestionType)
	assert.Equal(t, entity.DefaultQuestionPoints, quiz.Questions[0].Points)
	assert.Equal(t, []string{"3", "4"}, []string{quiz.Questions[0].Options[0].OptionText, quiz.Questions[0].Options[1].OptionText})
	assert.False(t, quiz.Questions[0].Options[0].IsCorrect)
	assert.True(t, quiz.Questions[0].Options[1].IsCorrect)

	assert.Equal(t, entity.QuestionTypeTrueFalse, quiz.Questions[1].QuestionType)
	assert.Equal(t, 5, quiz.Questions[1].Points)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_CreateQuiz_Validation(t *testing.T) {
	const topLevelMsg = "Invalid input. Title, created_by and questions array are required."

	tests := []struct {
		name    string
		mutate  func(in *CreateQuizInput)
		wantMsg string
	}{
		{
			name:    "нет названия",
			mutate:  func(in *CreateQuizInput) { in.Title = "" },
			wantMsg: topLevelMsg,
		},
		{
			name:    "нет автора",
			mutate:  func(in *CreateQuizInput) { in.CreatedBy = 0 },
			wantMsg: topLevelMsg,
		},
		{
			name:    "нет массива вопросов",
			mutate:  func(in *CreateQuizInput) { in.Questions = nil },
			wantMsg: topLevelMsg,
		},
		{
			name:    "пустой текст вопроса",
			mutate:  func(in *CreateQuizInput) { in.Questions[0].QuestionText = "" },
			wantMsg: "Invalid input. questions[0].question_text is required",
		},
		{
			name:    "пустой текст варианта",
			mutate:  func(in *CreateQuizInput) { in.Questions[1].Options[1].OptionText = "" },
			wantMsg: "Invalid input. questions[1].options[1].option_text is required",
		},
		{
			name:    "неизвестный тип вопроса",
			mutate:  func(in *CreateQuizInput) { in.Questions[0].QuestionType = "essay" },
			wantMsg: "Invalid input. questions[0].question_type must be one of: multiple_choice, true_false",
		},
		{
			name:    "отрицательные баллы",
			mutate:  func(in *CreateQuizInput) { in.Questions[1].Points = -1 },
			wantMsg: "Invalid input. questions[1].points must be greater than or equal to 0",
		},
		{
			name:    "два правильных варианта",
			mutate:  func(in *CreateQuizInput) { in.Questions[0].Options[0].IsCorrect = true },
			wantMsg: "Invalid input. questions[0].options must contain at most one correct option",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quizRepo := new(MockQuizRepository)
			svc := NewQuizService(quizRepo, nil, time.Minute)

			in := validCreateInput()
			tt.mutate(&in)

			quiz, err := svc.CreateQuiz(context.Background(), in)

			require.Error(t, err)
			assert.Nil(t, quiz)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
			msg, ok := apperrors.ClientMessage(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, msg)
			quizRepo.AssertNotCalled(t, "CreateWithQuestions", mock.Anything, mock.Anything)
		})
	}
}

func TestQuizService_CreateQuiz_EmptyQuestionListAllowed(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("CreateWithQuestions", mock.Anything, mock.AnythingOfType("*entity.Quiz")).Return(nil).Once()

	in := validCreateInput()
	in.Questions = []QuestionInput{}

	quiz, err := svc.CreateQuiz(context.Background(), in)

	require.NoError(t, err)
	assert.Empty(t, quiz.Questions)
}

func TestQuizService_CreateQuiz_ZeroCorrectOptionsAllowed(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("CreateWithQuestions", mock.Anything, mock.AnythingOfType("*entity.Quiz")).Return(nil).Once()

	in := validCreateInput()
	in.Questions[0].Options[1].IsCorrect = false

	_, err := svc.CreateQuiz(context.Background(), in)
	assert.NoError(t, err)
}

func TestQuizService_CreateQuiz_RepositoryFailure(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).Return(errors.New("tx aborted")).Once()

	quiz, err := svc.CreateQuiz(context.Background(), validCreateInput())

	require.Error(t, err)
	assert.Nil(t, quiz)
	assert.False(t, apperrors.IsClientError(err))
	assert.Contains(t, err.Error(), "tx aborted")
}

func TestQuizService_CreateQuiz_InvalidatesListCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cache := new(MockCacheRepository)
	svc := NewQuizService(quizRepo, cache, time.Minute)

	quizRepo.On("CreateWithQuestions", mock.Anything, mock.Anything).Return(nil).Once()
	cache.On("Delete", mock.Anything, []string{quizListCacheKey}).Return(nil).Once()

	_, err := svc.CreateQuiz(context.Background(), validCreateInput())

	require.NoError(t, err)
	cache.AssertExpectations(t)
}

func TestQuizService_ReplaceQuiz_WithoutQuestionsKeepsChildren(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)

	quizRepo.On("Replace", mock.Anything, mock.MatchedBy(func(q *entity.Quiz) bool {
		return q.ID == 3 && q.Title == "Renamed" && q.TimeLimitMinutes == entity.DefaultTimeLimitMinutes && q.Questions == nil
	}), false).Return(nil).Once()

	err := svc.ReplaceQuiz(context.Background(), 3, ReplaceQuizInput{Title: "Renamed"})

	require.NoError(t, err)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_ReplaceQuiz_EmptyQuestionsRemovesAll(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)

	quizRepo.On("Replace", mock.Anything, mock.MatchedBy(func(q *entity.Quiz) bool {
		return q.ID == 3 && len(q.Questions) == 0
	}), true).Return(nil).Once()

	err := svc.ReplaceQuiz(context.Background(), 3, ReplaceQuizInput{Title: "T", Questions: []QuestionInput{}})

	require.NoError(t, err)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_ReplaceQuiz_SuppliedQuestionsReplaceTree(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cache := new(MockCacheRepository)
	svc := NewQuizService(quizRepo, cache, time.Minute)

	in := ReplaceQuizInput{
		Title:            "T",
		TimeLimitMinutes: 15,
		Questions: []QuestionInput{{
			QuestionText: "new?",
			Options:      []OptionInput{{OptionText: "yes", IsCorrect: true}},
		}},
	}
	quizRepo.On("Replace", mock.Anything, mock.MatchedBy(func(q *entity.Quiz) bool {
		return q.TimeLimitMinutes == 15 && len(q.Questions) == 1 && q.Questions[0].Points == 1
	}), true).Return(nil).Once()
	cache.On("Delete", mock.Anything, []string{quizListCacheKey, "quiz:3"}).Return(nil).Once()

	require.NoError(t, svc.ReplaceQuiz(context.Background(), 3, in))
	quizRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestQuizService_ReplaceQuiz_MissingTitle(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)

	err := svc.ReplaceQuiz(context.Background(), 3, ReplaceQuizInput{})

	require.Error(t, err)
	msg, _ := apperrors.ClientMessage(err)
	assert.Equal(t, "Title is required", msg)
	quizRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuizService_ReplaceQuiz_UnknownQuizSucceeds(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("Replace", mock.Anything, mock.MatchedBy(func(q *entity.Quiz) bool { return q.ID == 99 }), false).
		Return(nil).Once()

	err := svc.ReplaceQuiz(context.Background(), 99, ReplaceQuizInput{Title: "T"})

	assert.NoError(t, err)
	quizRepo.AssertExpectations(t)
}

func TestQuizService_GetQuiz_NotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("GetWithQuestions", mock.Anything, uint(5)).Return(nil, apperrors.ErrNotFound).Once()

	quiz, err := svc.GetQuiz(context.Background(), 5)

	assert.Nil(t, quiz)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	msg, _ := apperrors.ClientMessage(err)
	assert.Equal(t, "Quiz not found", msg)
}

func TestQuizService_GetQuiz_CacheHit(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cache := new(MockCacheRepository)
	svc := NewQuizService(quizRepo, cache, time.Minute)

	cache.On("GetJSON", mock.Anything, "quiz:5", mock.AnythingOfType("*entity.Quiz")).
		Run(func(args mock.Arguments) {
			dest := args.Get(2).(*entity.Quiz)
			dest.ID = 5
			dest.Title = "cached"
		}).
		Return(nil).Once()

	quiz, err := svc.GetQuiz(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "cached", quiz.Title)
	quizRepo.AssertNotCalled(t, "GetWithQuestions", mock.Anything, mock.Anything)
}

func TestQuizService_GetQuiz_CacheMissFillsCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cache := new(MockCacheRepository)
	svc := NewQuizService(quizRepo, cache, time.Minute)

	stored := &entity.Quiz{ID: 5, Title: "db"}
	cache.On("GetJSON", mock.Anything, "quiz:5", mock.Anything).Return(apperrors.ErrNotFound).Once()
	quizRepo.On("GetWithQuestions", mock.Anything, uint(5)).Return(stored, nil).Once()
	cache.On("SetJSON", mock.Anything, "quiz:5", stored, time.Minute).Return(nil).Once()

	quiz, err := svc.GetQuiz(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "db", quiz.Title)
	cache.AssertExpectations(t)
}

func TestQuizService_ListQuizzes(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)
	quizRepo.On("List", mock.Anything).Return([]entity.Quiz{{ID: 2}, {ID: 1}}, nil).Once()

	quizzes, err := svc.ListQuizzes(context.Background())

	require.NoError(t, err)
	require.Len(t, quizzes, 2)
	assert.Equal(t, uint(2), quizzes[0].ID)
}

func TestQuizService_DeleteQuiz_InvalidatesCache(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	cache := new(MockCacheRepository)
	svc := NewQuizService(quizRepo, cache, time.Minute)

	quizRepo.On("Delete", mock.Anything, uint(4)).Return(nil).Once()
	cache.On("Delete", mock.Anything, []string{quizListCacheKey, "quiz:4"}).Return(nil).Once()

	require.NoError(t, svc.DeleteQuiz(context.Background(), 4))
	quizRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestQuizService_SeedQuizzes_SkipsExistingTitles(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewQuizService(quizRepo, nil, time.Minute)

	existing := validCreateInput()
	existing.Title = "Existing"
	fresh := validCreateInput()
	fresh.Title = "Fresh"
	fresh.CreatedBy = 0

	quizRepo.On("ExistsByTitle", mock.Anything, "Existing").Return(true, nil).Once()
	quizRepo.On("ExistsByTitle", mock.Anything, "Fresh").Return(false, nil).Once()
	quizRepo.On("CreateWithQuestions", mock.Anything, mock.MatchedBy(func(q *entity.Quiz) bool {
		return q.Title == "Fresh" && q.CreatedBy != nil && *q.CreatedBy == 9
	})).Return(nil).Once()

	created, err := svc.SeedQuizzes(context.Background(), 9, []CreateQuizInput{existing, fresh})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	quizRepo.AssertExpectations(t)
}
