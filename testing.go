package predictor

// TB is the part of testing.TB used by ArmT.
type TB interface {
	Helper()
	Cleanup(func())
	Fatalf(format string, args ...any)
}

// ArmT arms the Predictor and disarms it when the test and its subtests
// complete. An invalid prediction fails the test immediately.
func (p *Predictor) ArmT(tb TB, prediction any, opts ...ArmOption) {
	tb.Helper()
	if err := p.Arm(prediction, opts...); err != nil {
		tb.Fatalf("predictor: arm: %v", err)
	}
	tb.Cleanup(p.Disarm)
}
