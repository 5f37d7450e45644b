// Package session hosts independent single-player games for the server. Each
// Session owns its own game state and real-time scheduler, and serializes
// commands with the continuations that the scheduler fires.
package session

import (
	"errors"
	"sync"

	"github.com/dekarrin/darkstar/internal/game"
	"github.com/dekarrin/darkstar/internal/sched"
	"github.com/dekarrin/darkstar/internal/tuning"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNotFound is returned when no session has the requested ID.
	ErrNotFound = errors.New("no session with that ID exists")

	// ErrEnded is returned when a command is sent to a session whose game has
	// been quit or that has been closed.
	ErrEnded = errors.New("the session has ended")
)

// backlogSize is how many deferred events are kept for a subscriber that has
// not connected yet.
const backlogSize = 64

// EventType is the kind of side-channel output an Event carries.
type EventType string

const (
	EventText  EventType = "text"
	EventImage EventType = "image"
)

// Event is a single image or text shown by the game outside of the direct
// response to a command.
type Event struct {
	Type  EventType `json:"type"`
	Value string    `json:"value"`
}

// Info is a snapshot of a session.
type Info struct {
	ID      uuid.UUID
	Room    string
	Objects []string
	Pending game.PendingKind
	Time    string
	Ended   bool
}

// Result is the outcome of one command.
type Result struct {
	Output  string
	Events  []Event
	Pending game.PendingKind
}

// Session is one running game.
type Session struct {
	ID uuid.UUID

	mu        sync.Mutex
	state     *game.State
	loop      *sched.Loop
	log       *logrus.Entry
	capturing bool
	captured  []Event
	backlog   []Event
	subs      map[chan Event]struct{}
	closed    bool
	done      chan struct{}
}

// New starts a session over world. The world must not be shared with any
// other session.
func New(world *game.World, tune tuning.Config, log *logrus.Entry) (*Session, error) {
	id := uuid.New()
	s := &Session{
		ID:   id,
		loop: sched.NewLoop(),
		log:  log.WithField("session", id.String()),
		subs: make(map[chan Event]struct{}),
		done: make(chan struct{}),
	}

	var err error
	s.state, err = game.New(world, game.Options{
		Presenter: s,
		Scheduler: s.loop,
		Tuning:    &tune,
		Log:       s.log,
	})
	if err != nil {
		s.loop.Stop()
		return nil, err
	}

	go s.run()
	return s, nil
}

// run executes fired continuations until the session is closed.
func (s *Session) run() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.loop.Fired():
			s.mu.Lock()
			if !s.closed {
				fn()
			}
			s.mu.Unlock()
		}
	}
}

// ShowImage implements game.Presenter.
func (s *Session) ShowImage(path string) {
	s.emit(Event{Type: EventImage, Value: path})
}

// ShowText implements game.Presenter.
func (s *Session) ShowText(text string) {
	s.emit(Event{Type: EventText, Value: text})
}

// emit is only called with mu held, from within a command or a continuation.
func (s *Session) emit(ev Event) {
	if s.capturing {
		s.captured = append(s.captured, ev)
		return
	}

	if len(s.subs) == 0 {
		s.backlog = append(s.backlog, ev)
		if len(s.backlog) > backlogSize {
			s.backlog = s.backlog[len(s.backlog)-backlogSize:]
		}
		return
	}
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.log.WithField("event", ev.Type).Warn("subscriber is not keeping up; dropping event")
		}
	}
}

// Intro returns the description of the starting room.
func (s *Session) Intro() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Describe()
}

// Info returns a snapshot of the session.
func (s *Session) Info() Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Info{
		ID:      s.ID,
		Room:    s.state.CurrentRoom.ID,
		Objects: s.state.CurrentRoom.ObjectNames(),
		Pending: s.state.Pending(),
		Time:    s.state.Clock.String(),
		Ended:   s.closed || s.state.Ended(),
	}
}

// Command processes one line of input. Images and text the game shows while
// doing so are returned as Events alongside the direct output.
func (s *Session) Command(input string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.state.Ended() {
		return Result{}, ErrEnded
	}

	s.capturing = true
	s.captured = nil
	out := s.state.Process(input)
	s.capturing = false

	res := Result{
		Output:  out,
		Events:  s.captured,
		Pending: s.state.Pending(),
	}
	s.captured = nil
	return res, nil
}

// Subscribe returns a channel that receives every deferred Event from now on,
// starting with any that were shown while nobody was subscribed. The returned
// function ends the subscription. The channel is closed when the subscription
// or the session ends.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, backlogSize+16)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	for _, ev := range s.backlog {
		ch <- ev
	}
	s.backlog = nil
	s.subs[ch] = struct{}{}
	s.log.Debug("event subscriber added")

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
				s.log.Debug("event subscriber removed")
			}
		})
	}
	return ch, cancel
}

// Close stops the session. Pending continuations are dropped and all
// subscriptions end.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.loop.Stop()
	close(s.done)
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.log.Info("session closed")
}
