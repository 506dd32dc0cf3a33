package domain

import "time"

// Difficulty is the declared tier of a category.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category is a themed grouping of questions. Immutable after load.
type Category struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	QuestionCount int        `json:"questionCount"`
	Difficulty    Difficulty `json:"difficulty"`
}

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID         string   `json:"id"`
	Prompt     string   `json:"prompt"`
	Options    []Option `json:"options"`
	CategoryID string   `json:"categoryId"`
}

// AnswerRecord captures one submitted answer. Immutable once appended.
type AnswerRecord struct {
	QuestionID string  `json:"questionId"`
	OptionID   string  `json:"optionId"`
	Correct    bool    `json:"correct"`
	TimeSpent  float64 `json:"timeSpent"` // seconds, clamped to [0, time limit]
}

// AnswerResult summarizes the outcome of an accepted submission.
type AnswerResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Awarded    int    `json:"awarded"`
	TotalScore int    `json:"totalScore"`
	Final      bool   `json:"final"` // true when this answered the last question
}

// SessionState is a read-only snapshot of the active quiz session.
// Invariant: CurrentQuestion == len(Answers).
type SessionState struct {
	CurrentQuestion int            `json:"currentQuestion"`
	TimeSpent       float64        `json:"timeSpent"`
	Score           int            `json:"score"`
	Answers         []AnswerRecord `json:"answers"`
}

// PlayerScore is an immutable leaderboard entry produced from one
// completed (or quit) session.
type PlayerScore struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Score          int       `json:"score"`
	TimeSpent      float64   `json:"timeSpent"`
	CorrectAnswers int       `json:"correctAnswers"`
	TotalQuestions int       `json:"totalQuestions"`
	CategoryID     string    `json:"categoryId"`
	Date           time.Time `json:"date"`
}
