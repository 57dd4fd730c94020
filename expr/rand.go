package expr

import "math/rand/v2"

// pseudoRandom backs the 'rnd' kernel. It is the module's only source of
// nondeterminism, which is exactly why 'rnd' is registered with canVary
// set: the constant folder must never collapse a subtree that calls it.
func pseudoRandom() float64 {
	return rand.Float64()
}
