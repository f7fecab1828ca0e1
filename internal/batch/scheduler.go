package batch

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/domain/blueprint"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/infra"
	"github.com/Prasannaverse13/FIBO-Studio-OS/internal/providers/image"
)

// DefaultStagger spaces batch submissions so a burst of renders does not hit
// the engine at the same instant.
const DefaultStagger = 300 * time.Millisecond

// defaultRetain bounds how many superseded rounds stay addressable by token.
// Settled rounds beyond the cap are evicted oldest-first when a new round
// starts; in-flight rounds are never evicted.
const defaultRetain = 16

// Slot is one position in a round. Result stays nil until the render for
// that position finishes, successfully or not.
type Slot struct {
	Scene  blueprint.Scene `json:"scene"`
	Result *image.Result   `json:"result,omitempty"`
}

// Round tracks one staggered batch of generations. Slots fill in as renders
// complete; Done is closed once every slot has settled.
type Round struct {
	id      string
	slots   []Slot
	pending int
	done    chan struct{}
	started time.Time

	mu sync.Mutex
}

// ID returns the round token handed back to callers at submission time.
func (r *Round) ID() string { return r.id }

// Done is closed when every slot in the round has a result.
func (r *Round) Done() <-chan struct{} { return r.done }

// Snapshot copies the current slot state. Results are per-slot copies so the
// caller can serialize them without holding the round lock.
func (r *Round) Snapshot() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slot, len(r.slots))
	for i, s := range r.slots {
		out[i] = Slot{Scene: s.Scene.Clone()}
		if s.Result != nil {
			res := *s.Result
			out[i].Result = &res
		}
	}
	return out
}

// Complete reports whether every slot has settled.
func (r *Round) Complete() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending == 0
}

func (r *Round) settle(index int, res image.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slots[index].Result != nil {
		return
	}
	r.slots[index].Result = &res
	r.pending--
	if r.pending == 0 {
		close(r.done)
	}
}

// Scheduler fans a batch of scenes out to the generator with a fixed delay
// between submissions. Starting a new round supersedes the previous one:
// in-flight renders from an old round still run to completion and settle
// their own round's slots, but only the newest round is the active one.
type Scheduler struct {
	generator image.Generator
	stagger   time.Duration
	logger    *infra.Logger

	mu     sync.Mutex
	rounds map[string]*Round
	active *Round
	retain int
}

// NewScheduler builds a scheduler around the given generator. A zero stagger
// falls back to DefaultStagger.
func NewScheduler(generator image.Generator, stagger time.Duration, logger *infra.Logger) *Scheduler {
	if stagger <= 0 {
		stagger = DefaultStagger
	}
	if logger == nil {
		l := zerolog.New(io.Discard)
		logger = &l
	}
	return &Scheduler{
		generator: generator,
		stagger:   stagger,
		logger:    logger,
		rounds:    make(map[string]*Round),
		retain:    defaultRetain,
	}
}

// Start launches one generation per scene, offset by the stagger interval,
// and returns the new round immediately. The context bounds every render in
// the round.
func (s *Scheduler) Start(ctx context.Context, scenes []blueprint.Scene) *Round {
	round := &Round{
		id:      uuid.NewString(),
		slots:   make([]Slot, len(scenes)),
		pending: len(scenes),
		done:    make(chan struct{}),
		started: time.Now(),
	}
	for i, scene := range scenes {
		round.slots[i].Scene = scene.Clone()
	}
	if len(scenes) == 0 {
		round.pending = 0
		close(round.done)
	}

	s.mu.Lock()
	s.rounds[round.id] = round
	s.active = round
	s.evictLocked()
	s.mu.Unlock()

	s.logger.Info().
		Str("round_id", round.id).
		Int("slots", len(scenes)).
		Dur("stagger", s.stagger).
		Msg("batch round started")

	for i := range round.slots {
		go s.run(ctx, round, i, time.Duration(i)*s.stagger)
	}
	return round
}

func (s *Scheduler) run(ctx context.Context, round *Round, index int, delay time.Duration) {
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			round.settle(index, image.ErrorResult(ctx.Err().Error()))
			return
		}
	}

	result, err := s.generator.Generate(ctx, round.slots[index].Scene)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("round_id", round.id).
			Int("slot", index).
			Msg("batch slot failed")
		result = image.ErrorResult(err.Error())
	}
	round.settle(index, result)
}

// evictLocked drops the oldest settled rounds until the map is back under the
// retention cap. Caller holds s.mu.
func (s *Scheduler) evictLocked() {
	for len(s.rounds) > s.retain {
		var oldest *Round
		for _, r := range s.rounds {
			if r == s.active || !r.Complete() {
				continue
			}
			if oldest == nil || r.started.Before(oldest.started) {
				oldest = r
			}
		}
		if oldest == nil {
			return
		}
		delete(s.rounds, oldest.id)
	}
}

// Round looks up a round by token, current or superseded.
func (s *Scheduler) Round(id string) (*Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rounds[id]
	return r, ok
}

// Active returns the most recently started round, nil before the first one.
func (s *Scheduler) Active() *Round {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// IsActive reports whether the given round is still the newest one. Callers
// updating shared view state use this to discard results from superseded
// rounds.
func (s *Scheduler) IsActive(r *Round) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active == r
}
