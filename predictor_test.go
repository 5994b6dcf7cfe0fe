package predictor

import (
	"errors"
	"io"
	"log"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value answered by the original generator in tests
const trueRandom = 0.987654

func newTestPredictor(opts ...Option) *Predictor {
	base := []Option{
		WithLogger(log.New(io.Discard, "", log.LstdFlags)),
		WithGenerator(func() float64 { return trueRandom }),
	}
	return New(append(base, opts...)...)
}

func mustDraw(t *testing.T, p *Predictor) float64 {
	t.Helper()
	v, err := p.Float64()
	require.NoError(t, err)
	return v
}

func TestConstantIndefinitely(t *testing.T) {
	p := newTestPredictor()
	assert.False(t, p.IsArmed())
	require.NoError(t, p.Arm(0.123456))
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.123456, mustDraw(t, p))
		assert.True(t, p.IsArmed())
	}
}

func TestConstantOnce(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(Constant(0.123456), Once()))
	assert.True(t, p.IsArmed())
	assert.Equal(t, 0.123456, mustDraw(t, p))
	assert.False(t, p.IsArmed())
	assert.Equal(t, trueRandom, mustDraw(t, p))
}

func TestSequenceIndefinitely(t *testing.T) {
	p := newTestPredictor()
	predictions := []float64{0, 0.1, 0.2, 0.3}
	require.NoError(t, p.Arm(predictions))
	for range 2 {
		for _, prediction := range predictions {
			assert.True(t, p.IsArmed())
			assert.Equal(t, prediction, mustDraw(t, p))
		}
	}
	assert.True(t, p.IsArmed())
}

func TestSequenceOnce(t *testing.T) {
	p := newTestPredictor()
	predictions := []float64{0, 0.1, 0.2, 0.3}
	require.NoError(t, p.Arm(Sequence(predictions...), Repeat(false)))
	for _, prediction := range predictions {
		assert.True(t, p.IsArmed())
		assert.Equal(t, prediction, mustDraw(t, p))
	}
	assert.False(t, p.IsArmed())
	assert.Equal(t, trueRandom, mustDraw(t, p))
}

func TestSequenceIsCopied(t *testing.T) {
	p := newTestPredictor()
	predictions := []float64{0.1, 0.2}
	require.NoError(t, p.Arm(predictions, Once()))
	predictions[0], predictions[1] = 0.8, 0.9
	assert.Equal(t, 0.1, mustDraw(t, p))
	assert.Equal(t, 0.2, mustDraw(t, p))
}

func TestSourceIsReusable(t *testing.T) {
	p := newTestPredictor()
	src := Sequence(0.1, 0.2)
	for range 2 {
		require.NoError(t, p.Arm(src, Once()))
		assert.Equal(t, 0.1, mustDraw(t, p))
		assert.Equal(t, 0.2, mustDraw(t, p))
		assert.False(t, p.IsArmed())
	}
}

func TestRuleIndefinitely(t *testing.T) {
	p := newTestPredictor()
	var number float64
	require.NoError(t, p.Arm(func() float64 {
		number++
		return number / 10
	}))
	for i := 1; i < 7; i++ {
		assert.True(t, p.IsArmed())
		assert.Equal(t, float64(i)/10, mustDraw(t, p))
	}
}

func TestRuleUntilFalsy(t *testing.T) {
	for _, falsy := range []any{nil, false, ""} {
		p := newTestPredictor()
		predictions := []any{0.4, 0.2, falsy}
		require.NoError(t, p.Arm(func() any {
			v := predictions[0]
			predictions = predictions[1:]
			return v
		}))
		assert.True(t, p.IsArmed())
		assert.Equal(t, 0.4, mustDraw(t, p))
		assert.True(t, p.IsArmed())
		assert.Equal(t, 0.2, mustDraw(t, p))
		assert.True(t, p.IsArmed())
		assert.Equal(t, trueRandom, mustDraw(t, p))
		assert.False(t, p.IsArmed())
	}
}

func TestRuleZeroIsValid(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(func() any { return 0 }))
	assert.Equal(t, 0.0, mustDraw(t, p))
	assert.True(t, p.IsArmed())
	require.NoError(t, p.Arm(Rule(func() (float64, bool) { return 0, true })))
	assert.Equal(t, 0.0, mustDraw(t, p))
	assert.True(t, p.IsArmed())
}

func TestTypedRule(t *testing.T) {
	p := newTestPredictor()
	predictions := []float64{0.5, 0.25}
	require.NoError(t, p.Arm(Rule(func() (float64, bool) {
		if len(predictions) == 0 {
			return 0, false
		}
		v := predictions[0]
		predictions = predictions[1:]
		return v, true
	}), Once())) // ignored by rules
	assert.Equal(t, 0.5, mustDraw(t, p))
	assert.True(t, p.IsArmed())
	assert.Equal(t, 0.25, mustDraw(t, p))
	assert.True(t, p.IsArmed())
	assert.Equal(t, trueRandom, mustDraw(t, p))
	assert.False(t, p.IsArmed())
}

func TestRuleMayInspectPredictor(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(func() float64 {
		assert.True(t, p.IsArmed())
		assert.True(t, p.State().Armed)
		return 0.5
	}))
	assert.Equal(t, 0.5, mustDraw(t, p))
}

func TestAssertsRealisticValue(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(12))
	_, err := p.Float64()
	assert.ErrorIs(t, err, ErrNotBelowOne)
	assert.EqualError(t, err, "Random value must be less than one")
	assert.True(t, p.IsArmed())

	require.NoError(t, p.Arm(-1))
	_, err = p.Float64()
	assert.EqualError(t, err, "Random value must be greater than or equal to zero")
	assert.True(t, p.IsArmed())

	require.NoError(t, p.Arm(1.0))
	_, err = p.Float64()
	assert.ErrorIs(t, err, ErrNotBelowOne)

	require.NoError(t, p.Arm(math.NaN()))
	_, err = p.Float64()
	assert.ErrorIs(t, err, ErrBelowZero)
}

func TestAssertsDataType(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm([]any{"0.5"}))
	_, err := p.Float64()
	assert.EqualError(t, err, "Random value must be a number")
	assert.True(t, p.IsArmed())

	require.NoError(t, p.Arm(func() any { return "0.5" }))
	_, err = p.Float64()
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.True(t, p.IsArmed())
}

func TestInvalidValueOnExhaustingDrawDisarms(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(2, Once()))
	_, err := p.Float64()
	assert.ErrorIs(t, err, ErrNotBelowOne)
	assert.False(t, p.IsArmed())

	require.NoError(t, p.Arm([]any{0.1, "x"}, Once()))
	assert.Equal(t, 0.1, mustDraw(t, p))
	_, err = p.Float64()
	assert.ErrorIs(t, err, ErrNotANumber)
	assert.False(t, p.IsArmed())
}

func TestSequenceContainingObject(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm([]any{0.4711, struct{}{}}))
	assert.Equal(t, 0.4711, mustDraw(t, p))
	_, err := p.Float64()
	assert.ErrorIs(t, err, ErrNotANumber)
	// position moved past the bad element
	assert.Equal(t, 0.4711, mustDraw(t, p))
}

func TestUnknownPredictionType(t *testing.T) {
	var nilRule func() float64
	var nilTypedRule func() (float64, bool)
	for _, prediction := range []any{
		nil,
		"random string",
		struct{}{},
		map[string]float64{},
		true,
		func(int) float64 { return 0 },
		nilRule,
		nilTypedRule,
		Rule(nil),
	} {
		p := newTestPredictor()
		err := p.Arm(prediction)
		assert.ErrorIs(t, err, ErrUnknownPrediction, "%#v", prediction)
		assert.EqualError(t, err, "Unknown prediction type")
		assert.False(t, p.IsArmed())
		assert.Equal(t, trueRandom, mustDraw(t, p))
	}
}

func TestUnknownPredictionKeepsPreviousArming(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(0.5))
	assert.Error(t, p.Arm("nope"))
	assert.True(t, p.IsArmed())
	assert.Equal(t, 0.5, mustDraw(t, p))
}

func TestEmptySequence(t *testing.T) {
	p := newTestPredictor()
	assert.ErrorIs(t, p.Arm([]float64{}), ErrEmptySequence)
	assert.ErrorIs(t, p.Arm(Sequence(), Once()), ErrEmptySequence)
	assert.False(t, p.IsArmed())
}

func TestErrorType(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(-0.5))
	_, err := p.Float64()
	var pe *PredictorError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Random value must be greater than or equal to zero", pe.Msg)
}

func TestDisarm(t *testing.T) {
	p := newTestPredictor()
	p.Disarm()
	assert.False(t, p.IsArmed())
	require.NoError(t, p.Arm(0.5))
	p.Disarm()
	assert.False(t, p.IsArmed())
	assert.Equal(t, trueRandom, mustDraw(t, p))
	p.Disarm()
	assert.False(t, p.IsArmed())

	require.NoError(t, p.Arm(0.5))
	p.Reset()
	assert.False(t, p.IsArmed())
}

func TestRearmReplaces(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm([]float64{0.1, 0.2}))
	assert.Equal(t, 0.1, mustDraw(t, p))
	require.NoError(t, p.Arm(0.7))
	assert.Equal(t, 0.7, mustDraw(t, p))
	assert.Equal(t, 0.7, mustDraw(t, p))
}

func TestMustFloat64(t *testing.T) {
	p := newTestPredictor()
	require.NoError(t, p.Arm(0.25))
	assert.Equal(t, 0.25, p.MustFloat64())
	require.NoError(t, p.Arm(5))
	assert.PanicsWithValue(t, ErrNotBelowOne, func() { p.MustFloat64() })
}

func TestOriginal(t *testing.T) {
	p := newTestPredictor()
	assert.Equal(t, trueRandom, p.Original()())
	v := New().Original()()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.Less(t, v, 1.0)
}

func TestState(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	p := newTestPredictor(WithClock(clock))
	assert.Equal(t, State{}, p.State())

	require.NoError(t, p.Arm([]float64{0.1, 0.2, 0.3}, Once()))
	clock.Advance(time.Minute)
	_ = mustDraw(t, p)
	_ = mustDraw(t, p)
	state := p.State()
	assert.True(t, state.Armed)
	assert.NotEmpty(t, state.ID)
	assert.Equal(t, KindSequence, state.Kind)
	assert.False(t, state.Repeat)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), state.ArmedAt)
	assert.Equal(t, int64(2), state.Calls)

	require.NoError(t, p.Arm(0.5))
	assert.NotEqual(t, state.ID, p.State().ID)
	assert.Equal(t, int64(0), p.State().Calls)
	assert.True(t, p.State().Repeat)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Constant", Constant(0).Kind().String())
	assert.Equal(t, "Sequence", Sequence(0).Kind().String())
	assert.Equal(t, "Rule", Rule(nil).Kind().String())
	assert.Equal(t, "Unknown", Kind(0).String())
}
