package core

import (
	"crypto/rand"
	"encoding/binary"
	mathRand "math/rand/v2"

	"github.com/alaingilbert/predictor/internal/mtx"
)

// RandSrc is the process random source, the generator a Predictor falls back to
// when nothing is armed.
var RandSrc mtx.Mtx[*mathRand.Rand]

func init() {
	var seedBytes [16]byte
	_, _ = rand.Read(seedBytes[:])
	seedState := binary.LittleEndian.Uint64(seedBytes[:8])
	seedStream := binary.LittleEndian.Uint64(seedBytes[8:])
	RandSrc.Set(mathRand.New(mathRand.NewPCG(seedState, seedStream)))
}

// Float64 returns a pseudo-random number in [0.0,1.0) from RandSrc.
func Float64() (out float64) {
	RandSrc.With(func(v **mathRand.Rand) {
		out = (*v).Float64()
	})
	return
}
