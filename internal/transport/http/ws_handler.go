package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"pixel-trivia-service/internal/app"
	"pixel-trivia-service/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WSHandler runs one quiz session per websocket connection. The connection
// owns its Controller, so session state has exactly one writer; the shared
// catalog, leaderboard and preference stores are the only cross-connection
// state.
type WSHandler struct {
	catalog       app.CatalogRepository
	board         app.LeaderboardStore
	prefs         *app.PreferenceService
	log           zerolog.Logger
	upgrader      websocket.Upgrader
	finalizeDelay time.Duration
	// timeLimit overrides the preference-derived per-question limit when > 0.
	timeLimit float64
}

// WSOption configures a WSHandler.
type WSOption func(*WSHandler)

// WithFinalizeDelay overrides the post-last-answer delay (shortened in tests).
func WithFinalizeDelay(d time.Duration) WSOption {
	return func(h *WSHandler) { h.finalizeDelay = d }
}

// WithTimeLimit fixes the per-question limit in seconds instead of reading
// the stored duration tier.
func WithTimeLimit(seconds float64) WSOption {
	return func(h *WSHandler) { h.timeLimit = seconds }
}

func NewWSHandler(catalog app.CatalogRepository, board app.LeaderboardStore, prefs *app.PreferenceService, log zerolog.Logger, opts ...WSOption) *WSHandler {
	h := &WSHandler{
		catalog: catalog,
		board:   board,
		prefs:   prefs,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		finalizeDelay: app.DefaultFinalizeDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string  `json:"questionId"`
	OptionID   string  `json:"optionId"`
	TimeSpent  float64 `json:"timeSpent"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// optionView hides the correctness flag from clients.
type optionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type questionView struct {
	Index     int          `json:"index"`
	Total     int          `json:"total"`
	ID        string       `json:"id"`
	Prompt    string       `json:"prompt"`
	Options   []optionView `json:"options"`
	TimeLimit float64      `json:"timeLimit"`
}

type completedPayload struct {
	Entry       domain.PlayerScore   `json:"entry"`
	Leaderboard []domain.PlayerScore `json:"leaderboard"`
}

// ServeWS upgrades the request and drives a full quiz session: question out,
// answer in, with a server-side countdown per question and automatic
// finalization after the last answer.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categoryID := r.URL.Query().Get("category")
	playerName := r.URL.Query().Get("name")
	if playerName == "" {
		stored, err := h.prefs.PlayerName(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("load player name preference")
		}
		playerName = stored
	}
	if categoryID == "" || playerName == "" {
		http.Error(w, "missing category or name", http.StatusBadRequest)
		return
	}

	timeLimit := h.timeLimit
	if timeLimit <= 0 {
		var err error
		timeLimit, err = h.prefs.TimeLimitSeconds(ctx)
		if err != nil {
			h.log.Warn().Err(err).Msg("load duration preference")
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	sess := &wsSession{
		send:      make(chan outboundMessage[any], 16),
		done:      make(chan struct{}),
		timeLimit: timeLimit,
	}
	sess.controller = app.NewController(h.catalog, h.board,
		app.WithTimeLimit(timeLimit),
		app.WithFinalizeDelay(h.finalizeDelay),
		app.WithCompletionHook(sess.onComplete),
	)

	if err := sess.controller.StartQuiz(ctx, categoryID, playerName); err != nil {
		_ = conn.WriteJSON(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		sess.close()
		return
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case msg := <-sess.send:
				if err := conn.WriteJSON(msg); err != nil {
					h.log.Debug().Err(err).Msg("ws write error")
					return
				}
			case <-sess.done:
				return
			}
		}
	}()

	sess.dispatchQuestion()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				sess.enqueue(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				continue
			}
			sess.submit(payload.QuestionID, payload.OptionID, payload.TimeSpent)
		case "quit":
			sess.controller.EndQuiz()
		default:
			sess.enqueue(outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
	}

	sess.close()
	<-writerDone
}

// wsSession is the per-connection driver: it owns the countdown timer and
// forwards controller results to the write channel.
type wsSession struct {
	controller *app.Controller
	send       chan outboundMessage[any]
	done       chan struct{}
	timeLimit  float64

	mu        sync.Mutex
	countdown *time.Timer
	closed    bool
}

func (s *wsSession) enqueue(msg outboundMessage[any]) {
	select {
	case s.send <- msg:
	case <-s.done:
	}
}

func (s *wsSession) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.countdown != nil {
		s.countdown.Stop()
	}
	s.mu.Unlock()
	close(s.done)
}

// dispatchQuestion sends the current question and re-arms the countdown for
// it. The previous countdown is always stopped first, so a timer can never
// fire against a superseded question.
func (s *wsSession) dispatchQuestion() {
	question, ok := s.controller.CurrentQuestion()
	if !ok {
		return
	}
	state, ok := s.controller.State()
	if !ok {
		return
	}

	options := make([]optionView, 0, len(question.Options))
	for _, opt := range question.Options {
		options = append(options, optionView{ID: opt.ID, Text: opt.Text})
	}
	s.enqueue(outboundMessage[any]{Type: "question", Payload: questionView{
		Index:     state.CurrentQuestion,
		Total:     s.controller.QuestionCount(),
		ID:        question.ID,
		Prompt:    question.Prompt,
		Options:   options,
		TimeLimit: s.timeLimit,
	}})

	s.mu.Lock()
	if s.countdown != nil {
		s.countdown.Stop()
	}
	if s.closed {
		s.mu.Unlock()
		return
	}
	limit := time.Duration(s.timeLimit * float64(time.Second))
	s.countdown = time.AfterFunc(limit, func() { s.timeUp(question) })
	s.mu.Unlock()
}

// timeUp auto-submits a wrong option at the full limit when the countdown
// expires. The controller rejects the submission if the question has already
// been answered, which makes an expired-but-stale timer harmless.
func (s *wsSession) timeUp(question domain.Question) {
	var wrongOption string
	for _, opt := range question.Options {
		if !opt.Correct {
			wrongOption = opt.ID
			break
		}
	}
	s.submit(question.ID, wrongOption, s.timeLimit)
}

// submit pushes an answer through the controller. Rejected submissions
// (stale question or option ids) are dropped without any outbound traffic.
func (s *wsSession) submit(questionID, optionID string, timeSpent float64) {
	result, ok := s.controller.SubmitAnswer(questionID, optionID, timeSpent)
	if !ok {
		return
	}
	s.enqueue(outboundMessage[any]{Type: "answerResult", Payload: result})
	if !result.Final {
		s.dispatchQuestion()
	} else {
		s.mu.Lock()
		if s.countdown != nil {
			s.countdown.Stop()
		}
		s.mu.Unlock()
	}
}

// onComplete runs on the controller's finalization path (auto or quit) and
// pushes the leaderboard entry plus the category standings to the client.
func (s *wsSession) onComplete(entry domain.PlayerScore) {
	s.mu.Lock()
	if s.countdown != nil {
		s.countdown.Stop()
	}
	s.mu.Unlock()
	s.enqueue(outboundMessage[any]{Type: "completed", Payload: completedPayload{
		Entry:       entry,
		Leaderboard: s.controller.Leaderboard(entry.CategoryID),
	}})
}
