package engine

import (
	"crypto/rand"
	"encoding/binary"
)

// Environment carries the random state shared by every stochastic part of
// the solver: individual generation, the B3 and G+ packers, crossover, and
// mutation all draw from the same Environment so that a fixed Seed makes a
// full solver run reproducible.
type Environment struct {
	seed  uint64
	state uint64
}

// NewEnvironment seeds an Environment from the OS entropy source.
func NewEnvironment() *Environment {
	e := &Environment{}
	e.reseed(systemSeed())
	return e
}

// NewEnvironmentSeeded seeds an Environment deterministically.
func NewEnvironmentSeeded(seed uint64) *Environment {
	e := &Environment{}
	e.reseed(seed)
	return e
}

// Seed reports the seed this Environment was last (re)seeded with.
func (e *Environment) Seed() uint64 {
	return e.seed
}

// Reseed resets the generator to a fresh OS-entropy seed.
func (e *Environment) Reseed() {
	e.reseed(systemSeed())
}

// ReseedWith resets the generator to a specific seed.
func (e *Environment) ReseedWith(seed uint64) {
	e.reseed(seed)
}

func (e *Environment) reseed(seed uint64) {
	e.seed = seed
	e.state = seed + splitmix64Increment
	if e.state == 0 {
		e.state = splitmix64Increment
	}
}

const splitmix64Increment = 0x9e3779b97f4a7c15

// next draws the next raw uint32 from a splitmix64-derived xorshift stream.
// It is not cryptographically secure; it exists only to give every solver
// run a deterministic, full-range, seedable bit source without depending on
// the default global math/rand generator's state.
func (e *Environment) next() uint32 {
	e.state += splitmix64Increment
	z := e.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z = z ^ (z >> 31)
	return uint32(z>>32) ^ uint32(z)
}

// BoundedRand returns a uniformly distributed value in [0, n) using Lemire's
// rejection sampling, so that the distribution has no modulo bias even when
// n does not divide 2^32 evenly.
func (e *Environment) BoundedRand(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	p := uint64(e.next()) * uint64(n)
	if uint32(p) < n {
		t := -n % n
		for uint32(p) < t {
			p = uint64(e.next()) * uint64(n)
		}
	}
	return uint32(p >> 32)
}

// Shuffle performs an in-place Fisher-Yates shuffle of s[0:n] using
// BoundedRand, mirroring the iterative std::shuffle reimplementation the
// packers in this package were ported from.
func (e *Environment) Shuffle(n int, swap func(i, j int)) {
	for n > 1 {
		chosen := int(e.BoundedRand(uint32(n)))
		n--
		swap(chosen, n)
	}
}

// SampleInPlace randomly moves n elements of s[0:len] to the front of the
// range in place, leaving s[0:n] holding a uniform random sample without
// replacement. Controlled selection uses it to draw random halves of its
// candidate pools.
func SampleInPlace[T any](e *Environment, s []T, n int) []T {
	d := len(s)
	i := 0
	for n > 0 && d > 0 {
		r := i + int(e.BoundedRand(uint32(d)))
		s[i], s[r] = s[r], s[i]
		n--
		d--
		i++
	}
	return s[:i]
}

// Uniform01 returns a value uniformly distributed in [0, 1), the same shape
// as C++'s std::uniform_real_distribution<>{} used to drive adaptive
// mutation's Beta-derived schedule.
func (e *Environment) Uniform01() float64 {
	return float64(e.next()) / (1 << 32)
}

// SampleSuffixInPlace randomly moves up to n elements of s to the end of the
// slice in place, leaving its trailing min(n, len(s)) elements holding a
// uniform random sample without replacement. It is SampleInPlace's mirror
// image, used by adaptive mutation to pick which blocks (besides the
// protected trailing minimum) join the always-torn-down suffix.
func SampleSuffixInPlace[T any](e *Environment, s []T, n int) {
	d := len(s)
	for n > 0 && d > 0 {
		r := int(e.BoundedRand(uint32(d)))
		last := d - 1
		s[r], s[last] = s[last], s[r]
		n--
		d--
	}
}

func systemSeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a hard OS-level failure; fall back to a
		// fixed seed rather than leaving the Environment uninitialized.
		return splitmix64Increment
	}
	return binary.LittleEndian.Uint64(buf[:])
}
