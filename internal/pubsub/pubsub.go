package pubsub

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// BufferSize is the number of undelivered payloads a subscriber holds before
// new ones are dropped.
const BufferSize = 64

// PubSub contains and manage the map of topics -> subscribers
type PubSub[T comparable, P any] struct {
	sync.Mutex
	m   map[T][]*Sub[T, P]
	all []*Sub[T, P] // subscribed to every topic
}

func NewPubSub[T comparable, P any]() *PubSub[T, P] {
	return &PubSub[T, P]{m: make(map[T][]*Sub[T, P])}
}

func (p *PubSub[T, P]) getSubscribers(topic T) []*Sub[T, P] {
	p.Lock()
	defer p.Unlock()
	out := make([]*Sub[T, P], 0, len(p.m[topic])+len(p.all))
	out = append(out, p.m[topic]...)
	return append(out, p.all...)
}

func (p *PubSub[T, P]) addSubscriber(s *Sub[T, P]) {
	p.Lock()
	defer p.Unlock()
	if len(s.topics) == 0 {
		p.all = append(p.all, s)
		return
	}
	for _, topic := range s.topics {
		p.m[topic] = append(p.m[topic], s)
	}
}

func (p *PubSub[T, P]) removeSubscriber(s *Sub[T, P]) {
	p.Lock()
	defer p.Unlock()
	isSub := func(other *Sub[T, P]) bool { return other == s }
	if len(s.topics) == 0 {
		p.all = slices.DeleteFunc(p.all, isSub)
		return
	}
	for _, topic := range s.topics {
		p.m[topic] = slices.DeleteFunc(p.m[topic], isSub)
		if len(p.m[topic]) == 0 {
			delete(p.m, topic)
		}
	}
}

// Subscribe registers a subscriber for the given topics, or for every topic if none is given.
func (p *PubSub[T, P]) Subscribe(topics ...T) *Sub[T, P] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sub[T, P]{topics: topics, ch: make(chan Payload[T, P], BufferSize), ctx: ctx, cancel: cancel, p: p}
	p.addSubscriber(s)
	return s
}

// Pub publishes "msg" to every subscriber of "topic", without blocking.
func (p *PubSub[T, P]) Pub(topic T, msg P) {
	for _, s := range p.getSubscribers(topic) {
		s.publish(Payload[T, P]{topic, msg})
	}
}

type Payload[T comparable, P any] struct {
	Topic T
	Msg   P
}

// ErrTimeout error returned when timeout occurs
var ErrTimeout = errors.New("timeout")

// ErrCancelled error returned when the subscription is closed
var ErrCancelled = errors.New("cancelled")

// Sub subscriber will receive messages published on a Topic in his ch
type Sub[T comparable, P any] struct {
	topics []T                // Topics subscribed to, empty means all
	ch     chan Payload[T, P] // Receives messages in this channel
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	p      *PubSub[T, P]
}

// ReceiveTimeout returns a message received on the channel or timeout
func (s *Sub[T, P]) ReceiveTimeout(timeout time.Duration) (topic T, msg P, err error) {
	select {
	case p := <-s.ch:
		return p.Topic, p.Msg, nil
	case <-time.After(timeout):
		return topic, msg, ErrTimeout
	case <-s.ctx.Done():
		return topic, msg, ErrCancelled
	}
}

// Receive returns a message, blocking until one is published or the subscription is closed
func (s *Sub[T, P]) Receive() (topic T, msg P, err error) {
	select {
	case p := <-s.ch:
		return p.Topic, p.Msg, nil
	case <-s.ctx.Done():
		return topic, msg, ErrCancelled
	}
}

// ReceiveCh returns the underlying channel
func (s *Sub[T, P]) ReceiveCh() <-chan Payload[T, P] {
	return s.ch
}

// Close will remove the subscriber from the Topic subscribers. Safe to call more than once.
func (s *Sub[T, P]) Close() {
	s.once.Do(func() {
		s.cancel()
		s.p.removeSubscriber(s)
	})
}

// publish a message to the subscriber channel
func (s *Sub[T, P]) publish(p Payload[T, P]) {
	select {
	case s.ch <- p:
	default:
	}
}
