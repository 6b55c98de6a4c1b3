package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gregoryjjb/looper/circularbuffer"
	"gregoryjjb/looper/pubsub"
)

var qlog zerolog.Logger

func init() {
	qlog = log.With().Str("component", "sequencer").Logger()
}

var (
	ErrPlaylistDone   = errors.New("playlist finished")
	ErrAlreadyRunning = errors.New("sequencer loop already running")
)

type Command string

const (
	CommandPlay  Command = "play"
	CommandStop  Command = "stop"
	CommandNext  Command = "next"
	CommandPrev  Command = "prev"
	CommandJump  Command = "jump"
	CommandReset Command = "reset"
)

type SequencerState string

const (
	StateIdle    SequencerState = "idle"
	StatePlaying SequencerState = "playing"
	StateDone    SequencerState = "done"
)

type SequencerMessage struct {
	Command Command
	Offset  int
	reply   chan error
}

// Status is a point in time view of the sequencer.
type Status struct {
	State     SequencerState `json:"state"`
	Current   *Entry         `json:"current"`
	Next      *Entry         `json:"next"`
	Lap       uint64         `json:"lap"`
	Step      int            `json:"step"`
	Remaining *int           `json:"remaining"`
	Length    int            `json:"length"`
	Repeat    string         `json:"repeat"`
}

// Sequencer walks a playlist that repeats according to the configured bound.
// Commands are serialised through Run; queries may be made from any
// goroutine.
type Sequencer struct {
	config   *Config
	metrics  *Metrics
	commands chan SequencerMessage
	running  atomic.Bool

	mu    sync.RWMutex
	state SequencerState
	list  *CircularList[Entry]

	ps      *pubsub.Pubsub[Event]
	history *circularbuffer.CircularBuffer[Event]
	now     func() time.Time
}

func NewSequencer(config *Config, metrics *Metrics) (*Sequencer, error) {
	list, err := NewCircularList(config.Entries(), config.Repeat())
	if err != nil {
		return nil, err
	}

	s := &Sequencer{
		config:   config,
		metrics:  metrics,
		commands: make(chan SequencerMessage),
		state:    StateIdle,
		list:     list,
		ps:       pubsub.New[Event](),
		history:  circularbuffer.New[Event](config.HistorySize()),
		now:      time.Now,
	}
	if list.Done() {
		s.state = StateDone
	}
	metrics.ObserveState(s.state)

	return s, nil
}

func (s *Sequencer) Play() error  { return s.Send(context.Background(), CommandPlay, 0) }
func (s *Sequencer) Stop() error  { return s.Send(context.Background(), CommandStop, 0) }
func (s *Sequencer) Next() error  { return s.Send(context.Background(), CommandNext, 0) }
func (s *Sequencer) Prev() error  { return s.Send(context.Background(), CommandPrev, 0) }
func (s *Sequencer) Reset() error { return s.Send(context.Background(), CommandReset, 0) }

func (s *Sequencer) Jump(offset int) error {
	return s.Send(context.Background(), CommandJump, offset)
}

// Send hands a command to the loop and waits for its result.
func (s *Sequencer) Send(ctx context.Context, cmd Command, offset int) error {
	msg := SequencerMessage{Command: cmd, Offset: offset, reply: make(chan error, 1)}

	select {
	case s.commands <- msg:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-msg.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe streams events whose kinds overlap with kinds. The returned
// function ends the subscription.
func (s *Sequencer) Subscribe(kinds EventKinds) (func(), <-chan Event) {
	handle, ch := s.ps.Subscribe(func(e Event) bool {
		return e.Kinds.Intersect(kinds).HasAny()
	})
	return func() {
		s.ps.Unsubscribe(handle)
	}, ch
}

// Run processes commands and advances on the configured interval until ctx
// is cancelled.
func (s *Sequencer) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	qlog.Info().
		Int("length", s.list.Length()).
		Str("repeat", s.list.Repeat().String()).
		Dur("interval", s.config.Interval()).
		Msg("Running sequencer loop")

	timer := time.NewTimer(0)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			qlog.Info().Msg("Stopping sequencer")
			return nil

		case msg := <-s.commands:
			qlog.Debug().
				Str("command", string(msg.Command)).
				Int("offset", msg.Offset).
				Msg("Received command")

			err := s.handle(msg)
			if err != nil {
				qlog.Warn().Err(err).Str("command", string(msg.Command)).Msg("Command failed")
			}
			s.metrics.ObserveCommand(msg.Command, err)
			msg.reply <- err
			s.schedule(timer)

		case <-timer.C:
			if err := s.advance(); err != nil {
				qlog.Err(err).Msg("Automatic advance failed")
			}
			s.schedule(timer)
		}
	}
}

// schedule arms the timer for the dwell time of the current entry.
func (s *Sequencer) schedule(timer *time.Timer) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timer.Stop()

	interval := s.config.Interval()
	if s.state != StatePlaying || interval <= 0 {
		return
	}
	if e, ok := s.list.Current(); ok {
		timer.Reset(e.Dwell(interval))
	}
}

func (s *Sequencer) advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePlaying {
		return nil
	}
	return s.move(1)
}

func (s *Sequencer) handle(msg SequencerMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Command {
	case CommandPlay:
		if s.list.Length() == 0 {
			return ErrEmptyPlaylist
		}
		if s.list.Done() {
			return ErrPlaylistDone
		}
		s.setState(StatePlaying)

	case CommandStop:
		if s.state == StatePlaying {
			s.setState(StateIdle)
		}

	case CommandNext:
		return s.move(1)

	case CommandPrev:
		return s.move(-1)

	case CommandJump:
		return s.move(msg.Offset)

	case CommandReset:
		s.list.Reset()
		s.publish(KindsOf(EventAdvance))
		if s.list.Done() {
			s.setState(StateDone)
		} else {
			s.setState(StateIdle)
		}

	default:
		return fmt.Errorf("%w: unknown command %q", ErrValidation, msg.Command)
	}

	return nil
}

// move must be called with mu held.
func (s *Sequencer) move(k int) error {
	if k == 0 {
		return nil
	}

	lap := s.list.Lap()
	if err := s.list.Move(k); err != nil {
		return err
	}

	kinds := KindsOf(EventAdvance)
	crossed := lapDistance(lap, s.list.Lap())
	if crossed > 0 {
		kinds.Set(EventLap)
	}
	s.metrics.ObserveMove(k, crossed, s.list.Step(), s.list.Lap())

	e := s.publish(kinds)
	if e.Entry != nil {
		s.history.Push(e)
	}

	switch {
	case s.list.Done():
		s.setState(StateDone)
	case s.state == StateDone:
		s.setState(StateIdle)
	}
	return nil
}

// setState must be called with mu held.
func (s *Sequencer) setState(state SequencerState) {
	if s.state == state {
		return
	}

	qlog.Info().Str("from", string(s.state)).Str("to", string(state)).Msg("State changed")
	s.state = state
	s.metrics.ObserveState(state)
	s.publish(KindsOf(EventState))
}

func (s *Sequencer) publish(kinds EventKinds) Event {
	e := Event{
		Kinds: kinds,
		State: s.state,
		Lap:   s.list.Lap(),
		Step:  s.list.Step(),
		Time:  s.now(),
	}
	if cur, ok := s.list.Current(); ok {
		e.Entry = &cur
	}

	if s.ps.Publish(e) == 0 {
		s.metrics.ObserveUndelivered()
	}
	return e
}

func lapDistance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// State returns the current state.
func (s *Sequencer) State() SequencerState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Sequencer) Snapshot() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		State:  s.state,
		Lap:    s.list.Lap(),
		Step:   s.list.Step(),
		Length: s.list.Length(),
		Repeat: s.list.Repeat().String(),
	}
	if cur, ok := s.list.Current(); ok {
		st.Current = &cur
	}
	if next, ok := s.list.Peek(1); ok {
		st.Next = &next
	}
	if n, ok := s.list.Remaining(); ok {
		st.Remaining = &n
	}
	return st
}

// Peek returns the entry k steps from the current one.
func (s *Sequencer) Peek(k int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list.Peek(k)
}

// Window copies up to count entries starting k steps from the current one.
func (s *Sequencer) Window(k, count int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list.Window(k, count)
}

// Size is the number of steps in a bounded playlist.
func (s *Sequencer) Size() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list.Size()
}

func (s *Sequencer) Playlist() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.list.Items()
}

func (s *Sequencer) History() []Event {
	return s.history.Snapshot()
}
