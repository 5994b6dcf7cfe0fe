package predictor

import (
	"time"

	"github.com/alaingilbert/predictor/internal/pubsub"
)

type EventType int

const (
	Armed EventType = iota + 1
	Drawn
	Rejected
	Disarmed
)

func (e EventType) String() string {
	switch e {
	case Armed:
		return "Armed"
	case Drawn:
		return "Drawn"
	case Rejected:
		return "Rejected"
	case Disarmed:
		return "Disarmed"
	default:
		return "Unknown"
	}
}

// DisarmReason tells why an arming ended.
type DisarmReason int

const (
	Explicit  DisarmReason = iota + 1 // Disarm or Reset was called
	Exhausted                         // a single-use Constant or Sequence ran out
	Sentinel                          // a Rule signaled it has nothing more to give
	Replaced                          // Arm was called again
)

func (r DisarmReason) String() string {
	switch r {
	case Explicit:
		return "Explicit"
	case Exhausted:
		return "Exhausted"
	case Sentinel:
		return "Sentinel"
	case Replaced:
		return "Replaced"
	default:
		return "None"
	}
}

type Event struct {
	Typ       EventType
	ArmID     ArmID
	Kind      Kind
	Value     float64      // Drawn only
	Reason    DisarmReason // Disarmed only
	Err       error        // Rejected only
	CreatedAt time.Time
}

func (p *Predictor) newEvent(typ EventType, a *arming) Event {
	return Event{
		Typ:       typ,
		ArmID:     a.id,
		Kind:      a.kind,
		CreatedAt: p.clock.Now(),
	}
}

func (p *Predictor) publish(evt Event) {
	p.events.Pub(evt.Typ, evt)
}

// Subscription receives the events of a Predictor.
type Subscription struct {
	sub *pubsub.Sub[EventType, Event]
}

// Receive blocks until an event is available or the subscription is closed.
func (s *Subscription) Receive() (Event, error) {
	_, evt, err := s.sub.Receive()
	return evt, err
}

// ReceiveTimeout is Receive giving up after "timeout".
func (s *Subscription) ReceiveTimeout(timeout time.Duration) (Event, error) {
	_, evt, err := s.sub.ReceiveTimeout(timeout)
	return evt, err
}

// Pending returns how many events are buffered.
func (s *Subscription) Pending() int { return len(s.sub.ReceiveCh()) }

// Close stops the delivery of events.
func (s *Subscription) Close() { s.sub.Close() }
