package predictor

// std is the process-wide Predictor behind the package-level functions.
var std = New()

// Default returns the process-wide Predictor.
func Default() *Predictor { return std }

// Arm installs a prediction on the process-wide Predictor. See Predictor.Arm.
func Arm(prediction any, opts ...ArmOption) error { return std.Arm(prediction, opts...) }

// IsArmed ...
func IsArmed() bool { return std.IsArmed() }

// Disarm restores the process-wide original generator.
func Disarm() { std.Disarm() }

// Reset is an alias for Disarm.
func Reset() { std.Reset() }

// Float64 is the ambient random call site. Code under test draws from it
// instead of calling a random generator directly.
func Float64() (float64, error) { return std.Float64() }

// MustFloat64 ...
func MustFloat64() float64 { return std.MustFloat64() }

// CurrentState returns a snapshot of the process-wide Predictor.
func CurrentState() State { return std.State() }

// Subscribe ...
func Subscribe(types ...EventType) *Subscription { return std.Subscribe(types...) }

// ArmT arms the process-wide Predictor for the duration of a test. See Predictor.ArmT.
func ArmT(tb TB, prediction any, opts ...ArmOption) { std.ArmT(tb, prediction, opts...) }
