package expr

import "math"

// evaluate walks prog's linked list once, calling each node's op and
// stopping at the first error in a single pass. A nil prog is not an
// error and runs nothing. A program with an empty list (compiled from
// empty text, or from a bare variable reference) runs nothing either;
// Result then reads prog.result, which Compile or linearize set directly.
func evaluate(prog *program) error {
	if prog == nil {
		return nil
	}
	for node := prog.head; node != nil; node = node.next {
		if err := node.op(node); err != nil {
			return err
		}
	}
	return nil
}

// emptyResult is the sentinel Result reports when a Registry has no
// current expression, or the current expression compiled from empty text.
func emptyResult() float64 {
	return math.NaN()
}
