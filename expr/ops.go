package expr

import (
	"math"
	"strings"
)

// opFunc is the function pointer every exprRec carries at evaluation time.
// It reads through rec.args (predecessor result cells or variable
// addresses) and writes rec.res, returning a MathError on domain failure
// rather than panicking.
type opFunc func(rec *exprRec) error

const cmpTolerance = 1e-30

func arg(rec *exprRec, i int) float64 { return *rec.args[i] }

func roundInt(f float64) int64 { return int64(math.Round(f)) }

func opAdd(rec *exprRec) error { rec.res = arg(rec, 0) + arg(rec, 1); return nil }
func opSub(rec *exprRec) error { rec.res = arg(rec, 0) - arg(rec, 1); return nil }
func opMul(rec *exprRec) error { rec.res = arg(rec, 0) * arg(rec, 1); return nil }
func opDiv(rec *exprRec) error { rec.res = arg(rec, 0) / arg(rec, 1); return nil }

func opPow(rec *exprRec) error {
	rec.res = math.Pow(arg(rec, 0), arg(rec, 1))
	return nil
}

// opIntPow is the '^@' promotion of '^' when the right operand is a
// decimal-separator-free numeric constant: a cheaper integer power.
func opIntPow(rec *exprRec) error {
	base := arg(rec, 0)
	n := roundInt(arg(rec, 1))
	neg := n < 0
	if neg {
		n = -n
	}
	res := 1.0
	for ; n > 0; n-- {
		res *= base
	}
	if neg {
		if res == 0 {
			return newMathError("^@", "division by zero raising to a negative power")
		}
		res = 1 / res
	}
	rec.res = res
	return nil
}

func opDivInt(rec *exprRec) error {
	b := roundInt(arg(rec, 1))
	if b == 0 {
		return newMathError("div", "division by zero")
	}
	rec.res = float64(roundInt(arg(rec, 0)) / b)
	return nil
}

func opMod(rec *exprRec) error {
	b := roundInt(arg(rec, 1))
	if b == 0 {
		return newMathError("mod", "division by zero")
	}
	rec.res = float64(roundInt(arg(rec, 0)) % b)
	return nil
}

func opEq(rec *exprRec) error {
	rec.res = boolF(math.Abs(arg(rec, 0)-arg(rec, 1)) < cmpTolerance)
	return nil
}
func opNeq(rec *exprRec) error {
	rec.res = boolF(math.Abs(arg(rec, 0)-arg(rec, 1)) >= cmpTolerance)
	return nil
}
func opLt(rec *exprRec) error {
	rec.res = boolF(arg(rec, 0) < arg(rec, 1))
	return nil
}
func opGt(rec *exprRec) error {
	rec.res = boolF(arg(rec, 0) > arg(rec, 1))
	return nil
}
func opGte(rec *exprRec) error {
	rec.res = boolF(arg(rec, 0)-arg(rec, 1) > -cmpTolerance)
	return nil
}
func opLte(rec *exprRec) error {
	rec.res = boolF(arg(rec, 0)-arg(rec, 1) < cmpTolerance)
	return nil
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func opAnd(rec *exprRec) error {
	rec.res = float64(roundInt(arg(rec, 0)) & roundInt(arg(rec, 1)))
	return nil
}
func opOr(rec *exprRec) error {
	rec.res = float64(roundInt(arg(rec, 0)) | roundInt(arg(rec, 1)))
	return nil
}
func opXor(rec *exprRec) error {
	rec.res = float64(roundInt(arg(rec, 0)) ^ roundInt(arg(rec, 1)))
	return nil
}
func opNot(rec *exprRec) error {
	rec.res = boolF(roundInt(arg(rec, 0)) == 0)
	return nil
}

func opNeg(rec *exprRec) error { rec.res = -arg(rec, 0); return nil }
func opPos(rec *exprRec) error { rec.res = arg(rec, 0); return nil }

func opPercent(rec *exprRec) error { rec.res = arg(rec, 0) * 0.01; return nil }

func opFactorial(rec *exprRec) error {
	n := math.Round(arg(rec, 0))
	if n < 0 {
		return newMathError("!", "factorial of a negative number")
	}
	if n > 170 {
		return newMathError("!", "factorial argument too large")
	}
	res := 1.0
	for n > 1.1 {
		res *= n
		n--
	}
	rec.res = res
	return nil
}

func opAssign(rec *exprRec) error {
	v := arg(rec, 1)
	*rec.args[0] = v
	rec.res = v
	return nil
}

func opIf(rec *exprRec) error {
	if arg(rec, 0) != 0 {
		rec.res = arg(rec, 1)
	} else {
		rec.res = arg(rec, 2)
	}
	return nil
}

func opMin(rec *exprRec) error { rec.res = math.Min(arg(rec, 0), arg(rec, 1)); return nil }
func opMax(rec *exprRec) error { rec.res = math.Max(arg(rec, 0), arg(rec, 1)); return nil }
func opAbs(rec *exprRec) error { rec.res = math.Abs(arg(rec, 0)); return nil }
func opExp(rec *exprRec) error { rec.res = math.Exp(arg(rec, 0)); return nil }

func opSqrt(rec *exprRec) error {
	x := arg(rec, 0)
	if x < 0 {
		return newMathError("sqrt", "square root of a negative number")
	}
	rec.res = math.Sqrt(x)
	return nil
}

func opLn(rec *exprRec) error {
	x := arg(rec, 0)
	if x <= 0 {
		return newMathError("ln", "logarithm of a non-positive number")
	}
	rec.res = math.Log(x)
	return nil
}

func opLog10(rec *exprRec) error {
	x := arg(rec, 0)
	if x <= 0 {
		return newMathError("log", "logarithm of a non-positive number")
	}
	rec.res = math.Log10(x)
	return nil
}

func opSin(rec *exprRec) error { rec.res = math.Sin(arg(rec, 0)); return nil }
func opCos(rec *exprRec) error { rec.res = math.Cos(arg(rec, 0)); return nil }
func opTan(rec *exprRec) error { rec.res = math.Tan(arg(rec, 0)); return nil }

func opAsin(rec *exprRec) error {
	x := arg(rec, 0)
	if x < -1 || x > 1 {
		return newMathError("asin", "argument out of domain [-1, 1]")
	}
	rec.res = math.Asin(x)
	return nil
}

func opAcos(rec *exprRec) error {
	x := arg(rec, 0)
	if x < -1 || x > 1 {
		return newMathError("acos", "argument out of domain [-1, 1]")
	}
	rec.res = math.Acos(x)
	return nil
}

func opAtan(rec *exprRec) error { rec.res = math.Atan(arg(rec, 0)); return nil }

// opRnd is the module's one nondeterministic kernel: it must never be
// constant-folded, hence canVary=true on its word.
func opRnd(rec *exprRec) error {
	rec.res = pseudoRandom()
	return nil
}

func stringValueOf(w *word) string {
	if w.kind == kindStringVariable && w.strPtr != nil {
		return *w.strPtr
	}
	return w.strValue
}

func stringIn(needle, haystack string) bool {
	for _, part := range strings.Split(haystack, ",") {
		if strings.TrimSpace(part) == needle {
			return true
		}
	}
	return false
}

func opLogicalString(rec *exprRec) error {
	lhs := stringValueOf(rec.w.lhs)
	rhs := stringValueOf(rec.w.rhs)
	var result bool
	switch rec.w.cmpOp {
	case "=":
		result = lhs == rhs
	case "<>":
		result = lhs != rhs
	case "<":
		result = lhs < rhs
	case "<=":
		result = lhs <= rhs
	case ">":
		result = lhs > rhs
	case ">=":
		result = lhs >= rhs
	case "in":
		result = stringIn(lhs, rhs)
	default:
		return newMathError(rec.w.cmpOp, "unsupported string operator")
	}
	rec.res = boolF(result)
	return nil
}

func opLoadConstant(rec *exprRec) error {
	rec.res = rec.w.numValue
	return nil
}

// registerBuiltins installs every built-in operator and function word
// into dict, with the precedence table below governing how the tree
// builder groups them.
func registerBuiltins(dict *dictionary) {
	op := func(name string, nArgs, prec int, canVary bool, fn opFunc) *word {
		w := &word{name: name, kind: kindFunction, nArgs: nArgs, precedence: prec, isOperator: true, canVary: canVary, op: fn}
		dict.add(w)
		return w
	}
	boolOp := func(name string, nArgs, prec int, fn opFunc) *word {
		w := &word{name: name, kind: kindBooleanFunction, nArgs: nArgs, precedence: prec, isOperator: true, op: fn}
		dict.add(w)
		return w
	}
	fn := func(name string, nArgs int, canVary bool, fn opFunc) *word {
		w := &word{name: name, kind: kindFunction, nArgs: nArgs, isOperator: false, canVary: canVary, op: fn}
		dict.add(w)
		return w
	}

	op("+", 2, 40, false, opAdd)
	op("-", 2, 40, false, opSub)
	op("*", 2, 30, false, opMul)
	op("/", 2, 30, false, opDiv)
	op("^", 2, 20, false, opPow)
	op("^@", 2, 20, false, opIntPow)
	op("div", 2, 30, false, opDivInt)
	op("mod", 2, 30, false, opMod)
	op(":=", 2, 200, true, opAssign)

	op("-@", 1, 10, false, opNeg)
	op("+@", 1, 10, false, opPos)
	op("!", 1, 10, false, opFactorial).postfix = true
	op("%", 1, 10, false, opPercent).postfix = true

	boolOp("=", 2, 50, opEq)
	boolOp("<>", 2, 50, opNeq)
	boolOp("<", 2, 50, opLt)
	boolOp(">", 2, 50, opGt)
	boolOp("<=", 2, 50, opLte)
	boolOp(">=", 2, 50, opGte)
	boolOp("and", 2, 70, opAnd)
	boolOp("or", 2, 70, opOr)
	boolOp("xor", 2, 70, opXor)
	boolOp("not", 1, 60, opNot)

	// The bare 'in' operator only survives shaping when its operands are
	// not both strings; the shaper always fuses a valid string 'in' into
	// a LogicalStringOper leaf before the tree builder runs. A leftover
	// 'in' token is therefore always a numeric-operand misuse, per
	// DESIGN.md's Open Question resolution.
	boolOp("in", 2, 10, func(rec *exprRec) error {
		return newMathError("in", "numeric operands to 'in' are not supported")
	})

	fn("if", 3, false, opIf)
	fn("min", 2, false, opMin)
	fn("max", 2, false, opMax)
	fn("abs", 1, false, opAbs)
	fn("sqrt", 1, false, opSqrt)
	fn("ln", 1, false, opLn)
	fn("log", 1, false, opLog10)
	fn("exp", 1, false, opExp)
	fn("sin", 1, false, opSin)
	fn("cos", 1, false, opCos)
	fn("tan", 1, false, opTan)
	fn("asin", 1, false, opAsin)
	fn("acos", 1, false, opAcos)
	fn("atan", 1, false, opAtan)
	fn("rnd", 0, true, opRnd)
}
