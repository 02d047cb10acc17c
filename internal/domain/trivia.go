package domain

// Category groups trivia questions.
type Category struct {
	ID   int64
	Type string
}

// Question is a trivia question with its answer.
type Question struct {
	ID         int64
	Question   string
	Answer     string
	Category   int64
	Difficulty int
}

// AllCategories is the quiz category id meaning "any category".
const AllCategories int64 = 0

// QuestionPage is one page of questions plus listing context.
type QuestionPage struct {
	Questions       []Question
	TotalQuestions  int
	Categories      map[int64]string
	CurrentCategory *string
}

// CategoryMap indexes category types by id.
func CategoryMap(categories []Category) map[int64]string {
	out := make(map[int64]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
