package predictor

// PredictorError is the only kind of error returned by this package.
// Use errors.Is against the sentinel values below to tell them apart.
type PredictorError struct {
	Msg string
}

func (e *PredictorError) Error() string { return e.Msg }

func newError(msg string) *PredictorError { return &PredictorError{Msg: msg} }

// ErrUnknownPrediction is returned by Arm when the prediction has an unsupported shape.
var ErrUnknownPrediction = newError("Unknown prediction type")

// ErrEmptySequence is returned by Arm when a sequence has no element to draw from.
var ErrEmptySequence = newError("Prediction sequence must not be empty")

// ErrNotANumber ...
var ErrNotANumber = newError("Random value must be a number")

// ErrBelowZero ...
var ErrBelowZero = newError("Random value must be greater than or equal to zero")

// ErrNotBelowOne ...
var ErrNotBelowOne = newError("Random value must be less than one")
