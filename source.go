package predictor

import (
	"reflect"
	"slices"

	"github.com/alaingilbert/predictor/internal/utils"
)

// Kind identifies the variant of a Source.
type Kind int

const (
	KindConstant Kind = iota + 1
	KindSequence
	KindRule
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindSequence:
		return "Sequence"
	case KindRule:
		return "Rule"
	default:
		return "Unknown"
	}
}

// Source is a prediction: a Constant, a Sequence or a Rule.
// The set of variants is closed, build one with the factories below.
type Source interface {
	Kind() Kind
	check() error
	newGenerator(repeat bool) generator
}

// draw is the outcome of one substituted call.
type draw struct {
	value    any          // raw value, validated by the Predictor
	disarm   DisarmReason // non-zero when this draw ends the arming
	fallback bool         // answer with the original generator instead of value
}

type generator func() draw

// Constant returns a Source answering "v" on every draw.
func Constant(v float64) Source { return constantSource{value: v} }

// Sequence returns a Source answering the values in order.
// The values are copied.
func Sequence(vs ...float64) Source {
	values := make([]any, len(vs))
	for i, v := range vs {
		values[i] = v
	}
	return sequenceSource{values: values}
}

// Rule returns a Source calling fn on every draw. Returning false as the
// second value disarms the Predictor, and that draw is answered by the
// original generator.
func Rule(fn func() (float64, bool)) Source {
	if fn == nil {
		return ruleSource{}
	}
	return ruleSource{fn: func() any {
		if v, ok := fn(); ok {
			return v
		}
		return nil
	}}
}

type constantSource struct{ value any }

func (constantSource) Kind() Kind   { return KindConstant }
func (constantSource) check() error { return nil }

func (s constantSource) newGenerator(repeat bool) generator {
	return func() draw {
		return draw{value: s.value, disarm: utils.TernaryOrZero(!repeat, Exhausted)}
	}
}

type sequenceSource struct{ values []any }

func (sequenceSource) Kind() Kind { return KindSequence }

func (s sequenceSource) check() error {
	if len(s.values) == 0 {
		return ErrEmptySequence
	}
	return nil
}

func (s sequenceSource) newGenerator(repeat bool) generator {
	values := slices.Clone(s.values)
	if repeat {
		var index int
		return func() draw {
			index %= len(values)
			v := values[index]
			index++
			return draw{value: v}
		}
	}
	return func() draw {
		if len(values) == 0 {
			return draw{disarm: Exhausted, fallback: true}
		}
		v := values[0]
		values = values[1:]
		return draw{value: v, disarm: utils.TernaryOrZero(len(values) == 0, Exhausted)}
	}
}

type ruleSource struct{ fn func() any }

func (ruleSource) Kind() Kind { return KindRule }

func (s ruleSource) check() error {
	if s.fn == nil {
		return ErrUnknownPrediction
	}
	return nil
}

func (s ruleSource) newGenerator(bool) generator {
	return func() draw {
		v := s.fn()
		if isFalsy(v) && !utils.IsNumeric(v) { // zero is a valid draw
			return draw{disarm: Sentinel, fallback: true}
		}
		return draw{value: v}
	}
}

// castIntoSource turns the dynamic shapes accepted by Arm into a Source.
func castIntoSource(v any) (Source, error) {
	switch p := v.(type) {
	case nil:
		return nil, ErrUnknownPrediction
	case Source:
		return p, nil
	case func() float64:
		if p == nil {
			return nil, ErrUnknownPrediction
		}
		return ruleSource{fn: func() any { return p() }}, nil
	case func() (float64, bool):
		return Rule(p), nil
	case func() any:
		return ruleSource{fn: p}, nil
	}
	if utils.IsNumeric(v) {
		return constantSource{value: v}, nil
	}
	if values, ok := utils.ToSlice(v); ok {
		return sequenceSource{values: values}, nil
	}
	return nil, ErrUnknownPrediction
}

// isFalsy reports nil, false, the empty string and nil references.
// Numbers are judged separately.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// validate checks that "value" is a legal random number in [0, 1).
func validate(value any) (float64, error) {
	f, ok := utils.ToFloat64(value)
	if !ok {
		return 0, ErrNotANumber
	}
	if !(f >= 0) {
		return 0, ErrBelowZero
	}
	if !(f < 1) {
		return 0, ErrNotBelowOne
	}
	return f, nil
}
