package dialog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/PetrKevich/bot/core/logger"
	"github.com/PetrKevich/bot/internal/handoff"
	"github.com/PetrKevich/bot/internal/order"
	"github.com/PetrKevich/bot/internal/session"
)

// ErrClosed is returned by Handle after Close.
var ErrClosed = errors.New("dialog: service closed")

// Session is the per-user conversation record.
type Session struct {
	State State
	Order *order.Order
}

func newSession() Session {
	return Session{State: StateIdle, Order: order.New()}
}

// Options tune a Service.
type Options struct {
	// Sink receives completed orders. Nil discards them.
	Sink handoff.Sink
	// DeliveryTimeout bounds a single hand-off. Zero means no limit.
	DeliveryTimeout time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service owns the sessions and runs transitions one user at a time.
type Service struct {
	machine *Machine
	store   *session.Store[Session]
	sink    handoff.Sink
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewService wires a machine to a fresh session store.
func NewService(m *Machine, opts Options) *Service {
	if m == nil {
		m = NewMachine(nil)
	}
	if opts.Sink == nil {
		opts.Sink = handoff.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		machine: m,
		store:   session.NewStore(newSession),
		sink:    opts.Sink,
		timeout: opts.DeliveryTimeout,
		now:     opts.Now,
	}
}

// Machine returns the transition function the service runs.
func (s *Service) Machine() *Machine {
	return s.machine
}

// Handle applies one customer input. Calls for the same customer are serialized.
func (s *Service) Handle(ctx context.Context, c order.Customer, in Input) (Reply, error) {
	return s.handle(ctx, c, in, nil)
}

// Respond applies one customer input and passes the reply to emit while the
// customer is still locked, so replies leave in the order inputs were applied.
func (s *Service) Respond(ctx context.Context, c order.Customer, in Input, emit func(Reply) error) error {
	_, err := s.handle(ctx, c, in, emit)
	return err
}

func (s *Service) handle(ctx context.Context, c order.Customer, in Input, emit func(Reply) error) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	if s.isClosed() {
		return Reply{}, ErrClosed
	}

	unlock := s.store.Lock(c.ID)
	defer unlock()

	sess := s.store.Get(c.ID)
	prev := sess.State

	var r Reply
	switch in.Kind {
	case KindRestart:
		sess = newSession()
		r = Reply{State: StateCategory, Prompts: []Prompt{PromptWelcome}, Order: sess.Order.Clone()}
	case KindCancel:
		r = Reply{State: StateIdle, Prompts: []Prompt{PromptCancelled}}
	default:
		_, r = s.machine.Transition(sess.State, sess.Order, in)
	}

	if r.State.InProgress() {
		sess.State = r.State
		s.store.Put(c.ID, sess)
	} else {
		s.store.Clear(c.ID)
	}

	if r.Submitted {
		q := s.machine.Engine().Quote(r.Order)
		p := handoff.New(c, r.Order, q, s.now())
		r.Handoff = &p
		s.deliver(ctx, p)
	}

	logTransition(ctx, c.ID, prev, in, r)
	if emit != nil {
		if err := emit(r); err != nil {
			return r, err
		}
	}
	return r, nil
}

// State returns the customer's current state without creating a session.
func (s *Service) State(userID int64) State {
	if sess, ok := s.store.Peek(userID); ok {
		return sess.State
	}
	return StateIdle
}

// InProgress reports whether the customer is in the middle of an order.
func (s *Service) InProgress(userID int64) bool {
	return s.State(userID).InProgress()
}

// Active returns the number of conversations in progress.
func (s *Service) Active() int {
	return s.store.Len()
}

// Close stops accepting input and waits for pending hand-offs.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.inflight.Wait()
}

func (s *Service) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// deliver hands the payload to the sink in the background. The customer has
// already been answered, so failures are only logged.
func (s *Service) deliver(ctx context.Context, p handoff.Payload) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		logger.Warn(ctx, logger.CompHandoff, "handoff.dropped", slog.String("order_id", p.ID.String()))
		return
	}
	s.inflight.Add(1)
	s.mu.Unlock()

	dctx := context.WithoutCancel(ctx)
	go func() {
		defer s.inflight.Done()
		ctx := dctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		start := time.Now()
		err := s.sink.Deliver(ctx, p)
		attrs := []slog.Attr{
			slog.String("order_id", p.ID.String()),
			slog.String("sink", s.sink.Name()),
			slog.String("category", string(p.Category)),
			slog.String("total", p.Total.String()),
			slog.Duration("took", logger.Took(start)),
		}
		if err != nil {
			logger.Error(ctx, logger.CompHandoff, "handoff.failed", append(attrs, logger.Err(err))...)
			return
		}
		logger.Info(ctx, logger.CompHandoff, "handoff.delivered", attrs...)
	}()
}

func logTransition(ctx context.Context, userID int64, prev State, in Input, r Reply) {
	attrs := []slog.Attr{
		slog.Int64("user_id", userID),
		slog.String("state", string(prev)),
		slog.String("next_state", string(r.State)),
		slog.String("input", in.Kind.String()),
	}
	switch {
	case r.Submitted:
		if r.Handoff != nil {
			attrs = append(attrs, slog.String("order_id", r.Handoff.ID.String()), slog.String("total", r.Handoff.Total.String()))
		}
		logger.Info(ctx, logger.CompDialog, "dialog.submitted", attrs...)
	case in.Kind == KindCancel, prev != StateIdle && r.State == StateIdle:
		logger.Info(ctx, logger.CompDialog, "dialog.cancelled", attrs...)
	case in.Kind == KindRestart:
		logger.Info(ctx, logger.CompDialog, "dialog.started", attrs...)
	default:
		logger.Debug(ctx, logger.CompDialog, "dialog.transition", attrs...)
	}
}
