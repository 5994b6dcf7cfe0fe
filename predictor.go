package predictor

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"time"

	"github.com/alaingilbert/predictor/internal/core"
	"github.com/alaingilbert/predictor/internal/mtx"
	"github.com/alaingilbert/predictor/internal/pubsub"
	"github.com/alaingilbert/predictor/internal/utils"
	"github.com/jonboulle/clockwork"
)

// Generator is a random number generator returning values in [0.0,1.0).
type Generator func() float64

// ArmID identifies one successful Arm call.
type ArmID string

// Predictor substitutes a controllable Source for a random number generator.
// While armed, Float64 answers from the Source; while disarmed it answers from
// the original generator captured at construction.
//
// Sources keep their position without locking. Draws from an armed Predictor
// must not run concurrently.
type Predictor struct {
	original Generator                        // Generator captured at construction, restored on disarm
	clock    clockwork.Clock                  // Clock interface (real or mock) used for timestamps
	logger   *log.Logger                      // Logger
	current  mtx.RWMtx[*arming]               // Installed arming, nil when disarmed
	events   *pubsub.PubSub[EventType, Event] // Lifecycle events fan-out
}

type arming struct {
	id      ArmID
	kind    Kind
	repeat  bool
	armedAt time.Time
	next    generator
	calls   atomic.Int64
}

// State is a snapshot of a Predictor.
type State struct {
	Armed   bool
	ID      ArmID
	Kind    Kind
	Repeat  bool
	ArmedAt time.Time
	Calls   int64 // substituted draws since ArmedAt
}

//-----------------------------------------------------------------------------

// New returns a disarmed Predictor.
func New(opts ...Option) *Predictor {
	cfg := utils.BuildConfig(opts)
	original := cfg.Generator
	if original == nil {
		original = core.Float64
	}
	return &Predictor{
		original: original,
		clock:    utils.Or(cfg.Clock, clockwork.NewRealClock()),
		logger:   utils.Or(cfg.Logger, log.New(os.Stderr, "predictor", log.LstdFlags)),
		events:   pubsub.NewPubSub[EventType, Event](),
	}
}

// Arm installs a prediction. It accepts a Source, a number (Constant), a slice
// or array (Sequence), or a func() float64, func() (float64, bool) or
// func() any (Rule). Anything else returns ErrUnknownPrediction and leaves the
// Predictor untouched. Arming an armed Predictor replaces the previous arming.
func (p *Predictor) Arm(prediction any, opts ...ArmOption) error {
	return p.arm(prediction, opts...)
}

// IsArmed reports whether draws are currently answered by a prediction.
func (p *Predictor) IsArmed() bool {
	return p.current.Get() != nil
}

// Disarm restores the original generator. It is a no-op when already disarmed.
func (p *Predictor) Disarm() {
	p.disarm()
}

// Reset is an alias for Disarm.
func (p *Predictor) Reset() {
	p.disarm()
}

// Float64 is the substituted generator call. It returns the next predicted
// value, or a value from the original generator when disarmed.
func (p *Predictor) Float64() (float64, error) {
	return p.nextFloat64()
}

// MustFloat64 is like Float64 but panics if the predicted value is invalid.
func (p *Predictor) MustFloat64() float64 {
	v, err := p.nextFloat64()
	if err != nil {
		panic(err)
	}
	return v
}

// Original returns the generator captured at construction.
func (p *Predictor) Original() Generator {
	return p.original
}

// State returns a snapshot of the current arming.
func (p *Predictor) State() State {
	return p.getState()
}

// Subscribe returns a Subscription receiving events of the given types,
// or of every type if none is given. Events are dropped when its buffer is full.
func (p *Predictor) Subscribe(types ...EventType) *Subscription {
	return &Subscription{sub: p.events.Subscribe(types...)}
}

//-----------------------------------------------------------------------------

func (p *Predictor) arm(prediction any, opts ...ArmOption) error {
	src, err := castIntoSource(prediction)
	if err == nil {
		err = src.check()
	}
	if err != nil {
		return err
	}
	cfg := utils.BuildConfig(opts)
	repeat := utils.Default(cfg.Repeat, true)
	a := &arming{
		id:      ArmID(utils.UuidV4()),
		kind:    src.Kind(),
		repeat:  repeat,
		armedAt: p.clock.Now(),
		next:    src.newGenerator(repeat),
	}
	if prev := p.current.Swap(a); prev != nil {
		p.publishDisarmed(prev, Replaced)
	}
	p.publish(p.newEvent(Armed, a))
	return nil
}

func (p *Predictor) disarm() {
	if prev := p.current.Swap(nil); prev != nil {
		p.publishDisarmed(prev, Explicit)
	}
}

// disarmArming disarms only if "a" is still the installed arming.
func (p *Predictor) disarmArming(a *arming, reason DisarmReason) {
	var removed bool
	p.current.With(func(cur **arming) {
		if removed = *cur == a; removed {
			*cur = nil
		}
	})
	if removed {
		p.publishDisarmed(a, reason)
	}
}

func (p *Predictor) publishDisarmed(a *arming, reason DisarmReason) {
	evt := p.newEvent(Disarmed, a)
	evt.Reason = reason
	p.publish(evt)
}

func (p *Predictor) nextFloat64() (float64, error) {
	a := p.current.Get()
	if a == nil {
		return p.original(), nil
	}
	a.calls.Add(1)
	d := a.next() // runs user code, no lock held
	if d.disarm != 0 {
		defer p.disarmArming(a, d.disarm)
	}
	if d.fallback {
		return p.original(), nil
	}
	v, err := validate(d.value)
	if err != nil {
		p.logRejected(a, d, err)
		evt := p.newEvent(Rejected, a)
		evt.Err = err
		p.publish(evt)
		return 0, err
	}
	evt := p.newEvent(Drawn, a)
	evt.Value = v
	p.publish(evt)
	return v, nil
}

func (p *Predictor) logRejected(a *arming, d draw, err error) {
	msg := fmt.Sprintf("prediction %s (%s) rejected %#v", a.id, a.kind, d.value)
	msg += utils.TernaryOrZero(d.disarm != 0, " and disarmed")
	msg += " : " + err.Error()
	p.logger.Print(msg)
}

func (p *Predictor) getState() State {
	a := p.current.Get()
	if a == nil {
		return State{}
	}
	return State{
		Armed:   true,
		ID:      a.id,
		Kind:    a.kind,
		Repeat:  a.repeat,
		ArmedAt: a.armedAt,
		Calls:   a.calls.Load(),
	}
}
