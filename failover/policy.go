package failover

import (
	"math/rand"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// Endpoint is one broker choice handed back by Policy.Next, paired
// with the delay the caller should wait before dialing it.
type Endpoint struct {
	Host    string
	Port    int
	DelayMS int64
}

// ErrNoMoreBrokers is returned by Policy.Next when the configured
// reconnect-attempt budget has been exhausted (spec §7 "Failover
// errors": "no_more_brokers is a normal terminal value of the
// iterator").
type ErrNoMoreBrokers struct{}

func (ErrNoMoreBrokers) Error() string { return "stomp: failover: no more brokers" }

// Policy is a stateful iterator over a Config's broker list, producing
// the next endpoint to dial along with the backoff delay accumulated
// since the last successful connection (spec §4.4).
//
// Not safe for concurrent use: like the session and codec, a Policy is
// single-owner and the host must serialize access (spec §5).
type Policy struct {
	cfg *Config
	rng *rand.Rand

	order []int // current pass's broker order, as indices into cfg.Brokers
	pos   int

	bo             *backoff.ExponentialBackOff
	attempts       int
	everSucceeded  bool
	pendingDelayMS int64
}

// NewPolicy creates a Policy over cfg. A fixed seed produces a
// deterministic shuffle order; callers that want true randomness
// should seed from entropy before constructing cfg's consumer. This
// mirrors the teacher's preference for small, explicit constructors
// over hidden global state (spec §9 "No global state").
func NewPolicy(cfg *Config, seed int64) *Policy {
	p := &Policy{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	p.bo = newExponentialBackOff(cfg)
	p.reshuffle()
	return p
}

func newExponentialBackOff(cfg *Config) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Duration(cfg.InitialReconnectDelayMS) * time.Millisecond
	bo.MaxInterval = time.Duration(cfg.MaxReconnectDelayMS) * time.Millisecond
	bo.Multiplier = cfg.BackOffMultiplier
	bo.RandomizationFactor = 0
	bo.Reset()
	return bo
}

func (p *Policy) reshuffle() {
	n := len(p.cfg.Brokers)
	p.order = make([]int, n)
	for i := range p.order {
		p.order[i] = i
	}
	if p.cfg.Randomize {
		p.rng.Shuffle(n, func(i, j int) {
			p.order[i], p.order[j] = p.order[j], p.order[i]
		})
	}
	p.pos = 0
}

// effectiveMaxAttempts is maxReconnectAttempts, overridden by a positive
// startupMaxReconnectAttempts until the first successful connection; a
// startupMaxReconnectAttempts of zero or less leaves maxReconnectAttempts
// in force.
func (p *Policy) effectiveMaxAttempts() int {
	if !p.everSucceeded && p.cfg.StartupMaxReconnectAttempts > 0 {
		return p.cfg.StartupMaxReconnectAttempts
	}
	return p.cfg.MaxReconnectAttempts
}

// Next returns the next broker to try and the delay, in milliseconds,
// the caller should wait before dialing it. The very first call (and
// the first call after NoteSuccess) always carries a zero delay.
func (p *Policy) Next() (Endpoint, error) {
	// The attempt budget is per broker: a limit of N allows N+1 attempts
	// for each configured broker within one failure streak.
	max := p.effectiveMaxAttempts()
	if max >= 0 && p.attempts >= (max+1)*len(p.cfg.Brokers) {
		return Endpoint{}, ErrNoMoreBrokers{}
	}
	if len(p.cfg.Brokers) == 0 {
		return Endpoint{}, ErrNoMoreBrokers{}
	}

	idx := p.nextIndex()
	b := p.cfg.Brokers[idx]
	return Endpoint{Host: b.Host, Port: b.Port, DelayMS: p.pendingDelayMS}, nil
}

func (p *Policy) nextIndex() int {
	if p.cfg.PriorityBackup && p.attempts > 0 {
		// once an attempt has failed, every call returns the first
		// broker in declaration order; the remaining brokers are not
		// tried again until NoteSuccess resets the attempt counter.
		return 0
	}
	if p.pos >= len(p.order) {
		p.reshuffle()
	}
	idx := p.order[p.pos]
	p.pos++
	return idx
}

// NoteSuccess resets the delay and attempt counters (spec §4.4: "On
// reported success it resets the delay and attempt counters").
func (p *Policy) NoteSuccess() {
	p.everSucceeded = true
	p.attempts = 0
	p.pendingDelayMS = 0
	p.bo.Reset()
}

// NoteFailure records a failed connection attempt and advances the
// backoff delay that Next will report on its next call.
func (p *Policy) NoteFailure() {
	p.attempts++
	if !p.cfg.UseExponentialBackOff {
		p.pendingDelayMS = int64(p.cfg.InitialReconnectDelayMS)
		if p.pendingDelayMS > int64(p.cfg.MaxReconnectDelayMS) {
			p.pendingDelayMS = int64(p.cfg.MaxReconnectDelayMS)
		}
		return
	}
	// v5's ExponentialBackOff has no elapsed-time cutoff of its own; it
	// already clamps to WithMaxInterval, so the delay it returns never
	// needs a second clamp here.
	p.pendingDelayMS = p.bo.NextBackOff().Milliseconds()
}
