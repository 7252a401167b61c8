package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const tagSingleCorrect = "single_correct"

// newValidator настраивает validator: имена полей берутся из json-тегов,
// а у вопроса проверяется, что правильных вариантов не больше одного.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		q := sl.Current().Interface().(QuestionInput)
		correct := 0
		for _, o := range q.Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct > 1 {
			sl.ReportError(q.Options, "options", "Options", tagSingleCorrect, "")
		}
	}, QuestionInput{})
	return v
}

// describeValidation превращает первую ошибку validator в понятное клиенту сообщение.
// Второй результат сообщает, относится ли ошибка к полю верхнего уровня.
func describeValidation(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error(), true
	}
	fe := verrs[0]

	// Namespace вида "CreateQuizInput.questions[0].options[1].option_text"
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	topLevel := !strings.ContainsAny(field, ".[")

	var rule string
	switch fe.Tag() {
	case "required":
		rule = "is required"
	case "oneof":
		rule = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		rule = fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case tagSingleCorrect:
		rule = "must contain at most one correct option"
	default:
		rule = fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
	return fmt.Sprintf("%s %s", field, rule), topLevel
}
