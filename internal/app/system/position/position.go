// Package position implements the ordering-key arithmetic shared by lists
// (ordered within a board) and cards (ordered within a list).
//
// Keys are float64 values meaningful only for sorting. Appending leaves a
// fixed gap after the current maximum so later insertions between siblings
// stay O(1); inserting between two siblings takes the midpoint of their
// keys.
//
// Known limitation: repeated insertion into the same slot halves the gap
// each time and exhausts float64 precision after ~50 splits. Stores expose
// Rebalance to reassign whole-step keys in current sort order; it is invoked
// out of band, never automatically mid-request.
package position

// DefaultStep is the gap left between appended siblings.
const DefaultStep = 1000

// Append returns the key for an item placed after all current siblings.
// max is the current highest key in the container; zero-valued for an empty
// container, which yields step as the first key.
func Append(max float64, step float64) float64 {
	if step <= 0 {
		step = DefaultStep
	}
	return max + step
}

// Between returns a key strictly between a and b for a < b. Callers are
// responsible for ordering the arguments; Between normalizes them so a
// swapped pair still lands in the gap.
func Between(a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	return a + (b-a)/2
}

// Exhausted reports whether the gap between two neighboring keys can no
// longer be split, i.e. Between would collide with one of its bounds.
// Containers in this state need a rebalance before further same-slot
// insertions.
func Exhausted(a, b float64) bool {
	mid := Between(a, b)
	return mid == a || mid == b
}

// Sequence returns n whole-step keys (step, 2*step, ...) for reassigning a
// container's siblings in their current sort order.
func Sequence(n int, step float64) []float64 {
	if step <= 0 {
		step = DefaultStep
	}
	keys := make([]float64, n)
	for i := range keys {
		keys[i] = float64(i+1) * step
	}
	return keys
}
