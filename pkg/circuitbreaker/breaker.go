package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/civiclens/backend/pkg/logger"
)

var (
	// ErrOpen is returned while the breaker is cooling down after repeated
	// failures.
	ErrOpen = errors.New("circuit breaker open")
	// ErrProbeLimit is returned when the half-open probe budget is spent.
	ErrProbeLimit = errors.New("circuit breaker probe limit reached")
)

type State int

const (
	StateClosed State = iota
	StateHalfOpen
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Config tunes a Breaker. Zero values take the defaults noted per field.
type Config struct {
	// FailureThreshold is how many consecutive failures open the breaker
	// (default 5).
	FailureThreshold int
	// SuccessThreshold is how many consecutive half-open successes close it
	// again (default 2).
	SuccessThreshold int
	// Cooldown is how long the breaker stays open before allowing probes
	// (default 30s).
	Cooldown time.Duration
	// MaxProbes caps concurrent-cycle requests while half-open (default 1).
	MaxProbes int
}

// Breaker fails fast once a downstream dependency has failed repeatedly,
// giving it a cooldown window before traffic resumes.
type Breaker struct {
	name string
	cfg  Config

	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	probes       int
	openedAt     time.Time
}

func New(name string, cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.MaxProbes <= 0 {
		cfg.MaxProbes = 1
	}
	return &Breaker{name: name, cfg: cfg, state: StateClosed}
}

// Execute runs fn under the breaker. A panic in fn counts as a failure and
// is re-raised.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.admit(); err != nil {
		return err
	}

	done := false
	defer func() {
		if !done {
			b.record(false)
		}
	}()

	err := fn()
	done = true
	b.record(err == nil)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.refresh() {
	case StateOpen:
		return ErrOpen
	case StateHalfOpen:
		if b.probes >= b.cfg.MaxProbes {
			return ErrProbeLimit
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := b.refresh()

	if success {
		b.failures = 0
		if state == StateHalfOpen {
			b.successes++
			if b.successes >= b.cfg.SuccessThreshold {
				b.transition(StateClosed)
			}
		}
		return
	}

	b.successes = 0
	switch state {
	case StateHalfOpen:
		b.transition(StateOpen)
	case StateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.transition(StateOpen)
		}
	}
}

// refresh moves an expired open state to half-open. Callers hold the lock.
func (b *Breaker) refresh() State {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cfg.Cooldown {
		b.transition(StateHalfOpen)
	}
	return b.state
}

func (b *Breaker) transition(next State) {
	if b.state == next {
		return
	}
	prev := b.state
	b.state = next
	b.probes = 0
	b.successes = 0

	if next == StateOpen {
		b.openedAt = time.Now()
	}

	logger.Info("Circuit breaker state changed",
		zap.String("name", b.name),
		zap.String("from", prev.String()),
		zap.String("to", next.String()),
	)
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refresh()
}
