package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// QuestionResponse is a trivia question.
type QuestionResponse struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CreateQuestionRequest payload for POST /questions.
type CreateQuestionRequest struct {
	Question   string  `json:"question" form:"question" validate:"required"`
	Answer     string  `json:"answer" form:"answer" validate:"required"`
	Category   FlexInt `json:"category" form:"category" validate:"gt=0"`
	Difficulty int     `json:"difficulty" form:"difficulty" validate:"min=1,max=5"`
}

// SearchQuestionsRequest payload for POST /questions/search.
type SearchQuestionsRequest struct {
	SearchTerm string `json:"searchTerm" form:"searchTerm" validate:"required"`
}

// QuizCategory identifies the category a quiz is played in. ID 0 means every category.
type QuizCategory struct {
	ID   FlexInt `json:"id" validate:"gte=0"`
	Type string  `json:"type"`
}

// QuizRequest payload for POST /quizzes.
type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" validate:"required"`
	PreviousQuestions []int64       `json:"previous_questions" validate:"required"`
}

// FlexInt decodes a JSON number or a numeric string.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		*f = FlexInt(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexInt(v)
	return nil
}
