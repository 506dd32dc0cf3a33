package app_test

import (
	"context"
	"testing"
	"time"

	"pixel-trivia-service/internal/app"
	"pixel-trivia-service/internal/domain"
	"pixel-trivia-service/internal/infra/memory"
)

// minecraft's correct option per question, in authored order.
var minecraftCorrect = []struct{ questionID, optionID string }{
	{"mc-1", "mc-1-b"},
	{"mc-2", "mc-2-c"},
	{"mc-3", "mc-3-b"},
	{"mc-4", "mc-4-b"},
	{"mc-5", "mc-5-a"},
}

func newTestController(t *testing.T, opts ...app.Option) (*app.Controller, *memory.LeaderboardStore) {
	t.Helper()
	catalog := memory.NewCatalogRepository(memory.DefaultCatalog(), time.Minute)
	board := memory.NewLeaderboardStore()
	base := []app.Option{
		app.WithTimeLimit(30),
		app.WithFinalizeDelay(10 * time.Millisecond),
	}
	return app.NewController(catalog, board, append(base, opts...)...), board
}

func TestStartQuizValidation(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", ""); err != domain.ErrNameRequired {
		t.Fatalf("expected name error, got %v", err)
	}
	if err := controller.StartQuiz(ctx, "", "Ava"); err != domain.ErrCategoryRequired {
		t.Fatalf("expected category error, got %v", err)
	}
	if err := controller.StartQuiz(ctx, "does-not-exist", "Ava"); err != domain.ErrCategoryNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if controller.Active() {
		t.Fatalf("failed starts must not create a session")
	}
}

func TestStartQuizEmptyCategory(t *testing.T) {
	ctx := context.Background()
	loader := memory.NewStaticCatalogLoader(
		[]domain.Category{{ID: "empty", Name: "Empty", QuestionCount: 0}},
		map[string][]domain.Question{},
	)
	catalog := memory.NewCatalogRepository(loader, time.Minute)
	controller := app.NewController(catalog, memory.NewLeaderboardStore())

	if err := controller.StartQuiz(ctx, "empty", "Ava"); err != domain.ErrNoQuestions {
		t.Fatalf("expected content-missing error, got %v", err)
	}
	if controller.Active() {
		t.Fatalf("expected controller to stay idle")
	}
}

func TestStartQuizOpensSession(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	state, ok := controller.State()
	if !ok || state.CurrentQuestion != 0 || state.Score != 0 || len(state.Answers) != 0 {
		t.Fatalf("unexpected initial state: %+v ok=%v", state, ok)
	}
	if controller.PlayerName() != "Ava" || controller.CategoryID() != "minecraft" {
		t.Fatalf("session identity mismatch: %q %q", controller.PlayerName(), controller.CategoryID())
	}
	question, ok := controller.CurrentQuestion()
	if !ok || question.ID != "mc-1" {
		t.Fatalf("expected first question mc-1, got %+v ok=%v", question, ok)
	}
}

func TestPerfectRunScoresAndFinalizes(t *testing.T) {
	ctx := context.Background()
	completed := make(chan domain.PlayerScore, 1)
	controller, board := newTestController(t,
		app.WithCompletionHook(func(entry domain.PlayerScore) { completed <- entry }),
	)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i, answer := range minecraftCorrect {
		result, ok := controller.SubmitAnswer(answer.questionID, answer.optionID, 0)
		if !ok {
			t.Fatalf("submit %d rejected", i)
		}
		if !result.Correct || result.Awarded != 150 {
			t.Fatalf("submit %d: expected 150 points, got %+v", i, result)
		}
		if wantFinal := i == len(minecraftCorrect)-1; result.Final != wantFinal {
			t.Fatalf("submit %d: final=%v, want %v", i, result.Final, wantFinal)
		}
	}

	var entry domain.PlayerScore
	select {
	case entry = <-completed:
	case <-time.After(time.Second):
		t.Fatalf("session did not auto-finalize")
	}
	if entry.Score != 750 || entry.CorrectAnswers != 5 || entry.TotalQuestions != 5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Name != "Ava" || entry.CategoryID != "minecraft" || entry.ID == "" {
		t.Fatalf("unexpected entry identity: %+v", entry)
	}
	if entry.TimeSpent != 0 {
		t.Fatalf("expected zero cumulative time, got %v", entry.TimeSpent)
	}

	if controller.Active() {
		t.Fatalf("controller should be idle after finalization")
	}
	entries := board.List("minecraft")
	if len(entries) != 1 || entries[0].ID != entry.ID {
		t.Fatalf("expected the entry on the board, got %+v", entries)
	}
}

func TestEarlyQuitRecordsPartialEntry(t *testing.T) {
	ctx := context.Background()
	controller, board := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// One correct answer at the full limit (100 pts), one incorrect (0 pts).
	if result, ok := controller.SubmitAnswer("mc-1", "mc-1-b", 30); !ok || result.Awarded != 100 {
		t.Fatalf("expected 100 points at full limit, got %+v ok=%v", result, ok)
	}
	if result, ok := controller.SubmitAnswer("mc-2", "mc-2-a", 5); !ok || result.Awarded != 0 {
		t.Fatalf("expected incorrect answer to award 0, got %+v ok=%v", result, ok)
	}

	entry, ok := controller.EndQuiz()
	if !ok {
		t.Fatalf("expected quit to finalize")
	}
	if entry.Score != 100 || entry.CorrectAnswers != 1 || entry.TotalQuestions != 5 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.TimeSpent != 35 {
		t.Fatalf("expected cumulative time 35, got %v", entry.TimeSpent)
	}
	if got := board.List(""); len(got) != 1 {
		t.Fatalf("expected one board entry, got %d", len(got))
	}
}

func TestQuitWithoutAnswers(t *testing.T) {
	ctx := context.Background()
	controller, board := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	entry, ok := controller.EndQuiz()
	if !ok {
		t.Fatalf("expected zero-participation quit to still record")
	}
	if entry.Score != 0 || entry.CorrectAnswers != 0 || entry.TimeSpent != 0 || entry.TotalQuestions != 5 {
		t.Fatalf("unexpected zero entry: %+v", entry)
	}
	if len(board.List("")) != 1 {
		t.Fatalf("expected the zero entry on the board")
	}
}

func TestEndQuizWithoutSessionIsNoOp(t *testing.T) {
	controller, board := newTestController(t)
	if _, ok := controller.EndQuiz(); ok {
		t.Fatalf("expected silent no-op without a session")
	}
	if len(board.List("")) != 0 {
		t.Fatalf("expected no board entries")
	}
}

func TestSubmitAnswerNoOps(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)

	if _, ok := controller.SubmitAnswer("mc-1", "mc-1-b", 0); ok {
		t.Fatalf("submit without a session must be ignored")
	}

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Option id from a different question.
	if _, ok := controller.SubmitAnswer("mc-1", "mc-2-a", 0); ok {
		t.Fatalf("foreign option id must be ignored")
	}
	// Question id that is not the current one.
	if _, ok := controller.SubmitAnswer("mc-3", "mc-3-b", 0); ok {
		t.Fatalf("non-current question must be ignored")
	}

	state, _ := controller.State()
	if state.CurrentQuestion != 0 || state.Score != 0 || len(state.Answers) != 0 {
		t.Fatalf("no-op submissions mutated state: %+v", state)
	}
}

func TestSubmitAnswerClampsTime(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// Over the limit clamps to the limit: correct answer, no bonus.
	result, ok := controller.SubmitAnswer("mc-1", "mc-1-b", 999)
	if !ok || result.Awarded != 100 {
		t.Fatalf("expected clamped answer to award 100, got %+v", result)
	}
	state, _ := controller.State()
	if state.TimeSpent != 30 {
		t.Fatalf("expected clamped cumulative time 30, got %v", state.TimeSpent)
	}
}

func TestAnswerHistoryTracksIndex(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i, answer := range minecraftCorrect[:3] {
		controller.SubmitAnswer(answer.questionID, answer.optionID, 1)
		state, _ := controller.State()
		if state.CurrentQuestion != i+1 || len(state.Answers) != i+1 {
			t.Fatalf("index/history diverged after %d answers: %+v", i+1, state)
		}
		question, ok := controller.CurrentQuestion()
		if ok && question.ID != minecraftCorrect[i+1].questionID {
			t.Fatalf("derived question %s, want %s", question.ID, minecraftCorrect[i+1].questionID)
		}
	}
}

func TestStaleFinalizeTimerIsCancelled(t *testing.T) {
	ctx := context.Background()
	loader := memory.NewStaticCatalogLoader(
		[]domain.Category{
			{ID: "solo", Name: "Solo", QuestionCount: 1},
			{ID: "other", Name: "Other", QuestionCount: 1},
		},
		map[string][]domain.Question{
			"solo": {{
				ID:     "s-1",
				Prompt: "Pick one",
				Options: []domain.Option{
					{ID: "s-1-a", Text: "Yes", Correct: true},
					{ID: "s-1-b", Text: "No"},
				},
				CategoryID: "solo",
			}},
			"other": {{
				ID:     "o-1",
				Prompt: "Pick one",
				Options: []domain.Option{
					{ID: "o-1-a", Text: "Yes", Correct: true},
					{ID: "o-1-b", Text: "No"},
				},
				CategoryID: "other",
			}},
		},
	)
	catalog := memory.NewCatalogRepository(loader, time.Minute)
	board := memory.NewLeaderboardStore()
	controller := app.NewController(catalog, board,
		app.WithTimeLimit(30),
		app.WithFinalizeDelay(50*time.Millisecond),
	)

	if err := controller.StartQuiz(ctx, "solo", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, ok := controller.SubmitAnswer("s-1", "s-1-a", 0); !ok {
		t.Fatalf("submit rejected")
	}
	// Replace the session before the finalize timer fires.
	if err := controller.StartQuiz(ctx, "other", "Ava"); err != nil {
		t.Fatalf("restart: %v", err)
	}

	time.Sleep(150 * time.Millisecond)
	if len(board.List("")) != 0 {
		t.Fatalf("stale finalize timer recorded an entry for a replaced session")
	}
	if !controller.Active() {
		t.Fatalf("replacement session should still be in progress")
	}
}

func TestSetTimeLimitAffectsScoring(t *testing.T) {
	ctx := context.Background()
	controller, _ := newTestController(t)
	controller.SetTimeLimit(20)
	if controller.TimeLimit() != 20 {
		t.Fatalf("time limit not applied")
	}

	if err := controller.StartQuiz(ctx, "minecraft", "Ava"); err != nil {
		t.Fatalf("start: %v", err)
	}
	// t=10 of 20: bonus is floor(0.5 * 50) = 25.
	result, ok := controller.SubmitAnswer("mc-1", "mc-1-b", 10)
	if !ok || result.Awarded != 125 {
		t.Fatalf("expected 125 with a 20s limit, got %+v", result)
	}
}
