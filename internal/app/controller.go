package app

import (
	"context"
	"sync"
	"time"

	"pixel-trivia-service/internal/domain"

	"github.com/google/uuid"
)

// CatalogRepository supplies quiz content (from cache/backing store).
type CatalogRepository interface {
	GetCategory(ctx context.Context, categoryID string) (domain.Category, error)
	QuestionsByCategory(ctx context.Context, categoryID string) ([]domain.Question, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// LeaderboardStore holds completed-session records.
type LeaderboardStore interface {
	Add(entry domain.PlayerScore)
	List(categoryID string) []domain.PlayerScore
}

// DefaultTimeLimit is the per-question limit (seconds) for the "normal" tier.
const DefaultTimeLimit = 30

// DefaultFinalizeDelay is how long the controller waits after the last answer
// before finalizing, so clients can render feedback for the final question.
const DefaultFinalizeDelay = time.Second

// Controller owns a single player's quiz session: it is the only writer of
// session state and the only producer of leaderboard entries. Zero or one
// session is active at any time.
type Controller struct {
	catalog CatalogRepository
	board   LeaderboardStore

	now   func() time.Time
	newID func() string

	mu            sync.Mutex
	timeLimit     float64
	finalizeDelay time.Duration
	onComplete    func(domain.PlayerScore)
	sess          *session
	// generation invalidates pending finalize timers whenever the session
	// they were armed for is replaced or already finalized.
	generation uint64
}

// session is the in-progress quiz state. current == len(answers) always.
type session struct {
	categoryID string
	playerName string
	questions  []domain.Question
	current    int
	timeSpent  float64
	score      int
	answers    []domain.AnswerRecord
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeLimit sets the per-question time limit in seconds.
func WithTimeLimit(seconds float64) Option {
	return func(c *Controller) {
		if seconds > 0 {
			c.timeLimit = seconds
		}
	}
}

// WithFinalizeDelay overrides the post-last-answer finalization delay.
func WithFinalizeDelay(d time.Duration) Option {
	return func(c *Controller) { c.finalizeDelay = d }
}

// WithClock is test-only for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator is test-only for deterministic entry ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Controller) { c.newID = gen }
}

// WithCompletionHook registers a callback invoked (outside the controller
// lock) with the leaderboard entry whenever a session finalizes.
func WithCompletionHook(fn func(domain.PlayerScore)) Option {
	return func(c *Controller) { c.onComplete = fn }
}

func NewController(catalog CatalogRepository, board LeaderboardStore, opts ...Option) *Controller {
	c := &Controller{
		catalog:       catalog,
		board:         board,
		now:           time.Now,
		newID:         uuid.NewString,
		timeLimit:     DefaultTimeLimit,
		finalizeDelay: DefaultFinalizeDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartQuiz loads the category's questions and opens a session. Starting
// while a session is active replaces it; any pending finalization for the
// old session is cancelled.
func (c *Controller) StartQuiz(ctx context.Context, categoryID, playerName string) error {
	if playerName == "" {
		return domain.ErrNameRequired
	}
	if categoryID == "" {
		return domain.ErrCategoryRequired
	}

	if _, err := c.catalog.GetCategory(ctx, categoryID); err != nil {
		return err
	}
	questions, err := c.catalog.QuestionsByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return domain.ErrNoQuestions
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.sess = &session{
		categoryID: categoryID,
		playerName: playerName,
		questions:  questions,
	}
	return nil
}

// SubmitAnswer records an answer for the question at the current index.
// It reports ok=false — with no state change — when there is no active
// session, questionID does not match the current question, or optionID does
// not belong to it. This is the defensive guard against a desynchronized
// client, not an error path.
//
// Answering the final question schedules finalization automatically after the
// configured delay; no extra call is needed.
func (c *Controller) SubmitAnswer(questionID, optionID string, timeSpent float64) (domain.AnswerResult, bool) {
	c.mu.Lock()

	sess := c.sess
	if sess == nil || sess.current >= len(sess.questions) {
		c.mu.Unlock()
		return domain.AnswerResult{}, false
	}
	question := sess.questions[sess.current]
	if question.ID != questionID {
		c.mu.Unlock()
		return domain.AnswerResult{}, false
	}
	var selected *domain.Option
	for i := range question.Options {
		if question.Options[i].ID == optionID {
			selected = &question.Options[i]
			break
		}
	}
	if selected == nil {
		c.mu.Unlock()
		return domain.AnswerResult{}, false
	}

	if timeSpent < 0 {
		timeSpent = 0
	}
	if timeSpent > c.timeLimit {
		timeSpent = c.timeLimit
	}

	awarded := CalculateScore(selected.Correct, timeSpent, c.timeLimit)
	sess.answers = append(sess.answers, domain.AnswerRecord{
		QuestionID: questionID,
		OptionID:   optionID,
		Correct:    selected.Correct,
		TimeSpent:  timeSpent,
	})
	sess.current++
	sess.timeSpent += timeSpent
	sess.score += awarded

	result := domain.AnswerResult{
		QuestionID: questionID,
		Correct:    selected.Correct,
		Awarded:    awarded,
		TotalScore: sess.score,
		Final:      sess.current == len(sess.questions),
	}

	if result.Final {
		gen := c.generation
		delay := c.finalizeDelay
		c.mu.Unlock()
		time.AfterFunc(delay, func() { c.finalize(gen) })
		return result, true
	}
	c.mu.Unlock()
	return result, true
}

// EndQuiz finalizes the active session immediately — the early-quit path.
// A session quit before any answer still records a zero-score entry. Without
// an active session this is a silent no-op.
func (c *Controller) EndQuiz() (domain.PlayerScore, bool) {
	c.mu.Lock()
	return c.finalizeLocked()
}

// finalize is the auto-completion path armed after the last answer. The
// generation check keeps a stale timer from finalizing a replacement session.
func (c *Controller) finalize(generation uint64) {
	c.mu.Lock()
	if c.generation != generation {
		c.mu.Unlock()
		return
	}
	c.finalizeLocked()
}

// finalizeLocked consumes the session and releases c.mu before invoking the
// completion hook.
func (c *Controller) finalizeLocked() (domain.PlayerScore, bool) {
	sess := c.sess
	if sess == nil || sess.categoryID == "" || sess.playerName == "" {
		c.mu.Unlock()
		return domain.PlayerScore{}, false
	}

	correct := 0
	for _, a := range sess.answers {
		if a.Correct {
			correct++
		}
	}
	entry := domain.PlayerScore{
		ID:             c.newID(),
		Name:           sess.playerName,
		Score:          sess.score,
		TimeSpent:      sess.timeSpent,
		CorrectAnswers: correct,
		// Quitting early still reports the full category length so accuracy
		// stays comparable across entries.
		TotalQuestions: len(sess.questions),
		CategoryID:     sess.categoryID,
		Date:           c.now(),
	}
	c.sess = nil
	c.generation++
	hook := c.onComplete
	c.mu.Unlock()

	c.board.Add(entry)
	if hook != nil {
		hook(entry)
	}
	return entry, true
}

// CurrentQuestion derives the question at the current index, or ok=false when
// no session is active or all questions are answered.
func (c *Controller) CurrentQuestion() (domain.Question, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil || c.sess.current >= len(c.sess.questions) {
		return domain.Question{}, false
	}
	return c.sess.questions[c.sess.current], true
}

// State returns a snapshot of the active session.
func (c *Controller) State() (domain.SessionState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return domain.SessionState{}, false
	}
	answers := make([]domain.AnswerRecord, len(c.sess.answers))
	copy(answers, c.sess.answers)
	return domain.SessionState{
		CurrentQuestion: c.sess.current,
		TimeSpent:       c.sess.timeSpent,
		Score:           c.sess.score,
		Answers:         answers,
	}, true
}

// Active reports whether a session is in progress.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess != nil
}

// PlayerName returns the active session's player name, or "".
func (c *Controller) PlayerName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return ""
	}
	return c.sess.playerName
}

// CategoryID returns the active session's category, or "".
func (c *Controller) CategoryID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return ""
	}
	return c.sess.categoryID
}

// QuestionCount returns the number of questions loaded for the session.
func (c *Controller) QuestionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return 0
	}
	return len(c.sess.questions)
}

// TimeLimit returns the configured per-question limit in seconds.
func (c *Controller) TimeLimit() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeLimit
}

// SetTimeLimit updates the per-question limit. It applies to answers
// submitted from now on; already-recorded answers are untouched.
func (c *Controller) SetTimeLimit(seconds float64) {
	if seconds <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeLimit = seconds
}

// Leaderboard reads the score-ordered entries, optionally category-filtered.
func (c *Controller) Leaderboard(categoryID string) []domain.PlayerScore {
	return c.board.List(categoryID)
}
