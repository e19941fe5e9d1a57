// Package chat owns the conversational session state: the ordered message
// log, the rolling history sent back to the backend as context, and the
// single-flight guard that keeps one send in flight at a time.
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tickermind/tickermind/internal/api"
	"github.com/tickermind/tickermind/internal/format"
)

// Role classifies a message in the conversation log.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleError     Role = "error"
)

// ErrorBubbleText is the fixed, user-facing content of an error message.
// The raw failure detail is kept separately in LastError.
const ErrorBubbleText = "Sorry, I couldn't process that request. Please try again."

var (
	// ErrBusy means a send was rejected because one is already in flight.
	ErrBusy = errors.New("a message is already being sent")
	// ErrEmptyMessage means a send was rejected for blank input.
	ErrEmptyMessage = errors.New("message text is empty")
)

// Message is one immutable entry in the conversation log. The annotation
// fields are populated only on assistant messages, verbatim from the
// backend response.
type Message struct {
	ID               int64
	Role             Role
	Content          string
	Ticker           string
	Signal           string
	Confidence       *float64
	Sources          []api.Source
	Intent           string
	ContextRetrieved bool
	Timestamp        time.Time
}

// ChatBackend is the slice of the API client the session needs.
type ChatBackend interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
}

// Session accumulates one conversation. All methods are safe for concurrent
// use; the pending guard ensures at most one send is in flight.
type Session struct {
	mu sync.Mutex

	backend       ChatBackend
	initialTicker string

	messages     []Message
	history      []api.HistoryTurn
	activeTicker string
	nextID       int64
	pending      bool
	lastError    string

	now func() time.Time
}

// NewSession creates a session bound to a backend. initialTicker may be
// empty; ClearMessages restores it.
func NewSession(backend ChatBackend, initialTicker string) *Session {
	ticker := format.NormalizeTicker(initialTicker)
	return &Session{
		backend:       backend,
		initialTicker: ticker,
		activeTicker:  ticker,
		nextID:        1,
		now:           time.Now,
	}
}

// SendMessage runs one conversational turn. It is a no-op returning ErrBusy
// while a send is pending and ErrEmptyMessage for blank text. An accepted
// call always grows the log by exactly two messages: the user message plus
// one assistant or error message. Backend failures are converted into an
// error message in the log (with the raw detail in LastError) rather than
// returned, so a nil result means the turn completed one way or the other.
func (s *Session) SendMessage(ctx context.Context, text, ticker string) error {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return ErrBusy
	}
	if text == "" {
		s.mu.Unlock()
		return ErrEmptyMessage
	}

	s.pending = true
	s.lastError = ""

	s.append(Message{
		Role:      RoleUser,
		Content:   text,
		Timestamp: s.now(),
	})

	effective := s.activeTicker
	if t := format.NormalizeTicker(ticker); t != "" {
		effective = t
	}
	req := api.ChatRequest{
		Query:       text,
		Ticker:      effective,
		ChatHistory: append([]api.HistoryTurn(nil), s.history...),
	}
	s.mu.Unlock()

	resp, err := s.backend.Chat(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.pending = false }()

	if err != nil {
		s.lastError = err.Error()
		s.append(Message{
			Role:      RoleError,
			Content:   ErrorBubbleText,
			Timestamp: s.now(),
		})
		return nil
	}

	ts := s.now()
	if t, perr := format.ParseTimestamp(resp.Timestamp); perr == nil {
		ts = t
	}
	s.append(Message{
		Role:             RoleAssistant,
		Content:          resp.Response,
		Ticker:           resp.Ticker,
		Signal:           resp.Signal,
		Confidence:       resp.Confidence,
		Sources:          resp.Sources,
		Intent:           resp.Intent,
		ContextRetrieved: resp.ContextRetrieved,
		Timestamp:        ts,
	})
	if t := format.NormalizeTicker(resp.Ticker); t != "" {
		s.activeTicker = t
	}
	s.history = append(s.history,
		api.HistoryTurn{Role: string(RoleUser), Content: text},
		api.HistoryTurn{Role: string(RoleAssistant), Content: resp.Response},
	)
	return nil
}

// append adds a message with a freshly allocated id. Caller holds the lock.
func (s *Session) append(m Message) {
	m.ID = s.nextID
	s.nextID++
	s.messages = append(s.messages, m)
}

// ClearMessages resets the log, history, and error state, and restores the
// active ticker to the construction-time value. Idempotent.
func (s *Session) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.history = nil
	s.lastError = ""
	s.activeTicker = s.initialTicker
}

// SetActiveTicker overrides the ticker used for subsequent sends.
func (s *Session) SetActiveTicker(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTicker = format.NormalizeTicker(ticker)
}

// ActiveTicker returns the ticker currently attached to outgoing turns.
func (s *Session) ActiveTicker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeTicker
}

// Messages returns a copy of the ordered conversation log.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.messages...)
}

// History returns a copy of the (role, content) pairs from completed
// user/assistant exchanges. Error turns are never included.
func (s *Session) History() []api.HistoryTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.HistoryTurn(nil), s.history...)
}

// Pending reports whether a send is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastError returns the raw detail of the most recent failure, or "" if the
// last send succeeded. It is cleared at the start of each new send.
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}
