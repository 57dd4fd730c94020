package expr

import "strings"

// shape rewrites the lexed token stream in place: sign
// collapsing, double-not collapsing, adjacency validation, integer-power
// promotion, and finally a reverse pass that fuses string comparisons
// into a single LogicalStringOper leaf.
func shape(toks []*word, dict *dictionary, consts *[]*word, locale Locale) ([]*word, error) {
	toks = collapseSigns(toks, dict)
	toks = collapseNots(toks, dict)
	if err := checkAdjacency(toks); err != nil {
		return nil, err
	}
	toks = promoteIntPower(toks, dict, locale)
	toks = fuseStringCompares(toks, consts)
	return toks, nil
}

func isSignToken(w *word) bool { return w.name == "+" || w.name == "-" }

func inUnaryContext(prev *word) bool {
	if prev == nil {
		return true
	}
	return prev.kind == kindLeftBracket || prev.kind == kindComma || prev.isOperator
}

func collapseSigns(toks []*word, dict *dictionary) []*word {
	out := make([]*word, 0, len(toks))
	i := 0
	for i < len(toks) {
		t := toks[i]
		var prev *word
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
		if isSignToken(t) && inUnaryContext(prev) {
			sign := 1
			j := i
			for j < len(toks) && isSignToken(toks[j]) {
				if toks[j].name == "-" {
					sign = -sign
				}
				j++
			}
			name := "+@"
			if sign < 0 {
				name = "-@"
			}
			w, _, _ := dict.search(name)
			out = append(out, w)
			i = j
			continue
		}
		out = append(out, t)
		i++
	}
	return out
}

func inNotContext(prev *word) bool {
	if prev == nil {
		return true
	}
	return prev.kind == kindLeftBracket || prev.isOperator
}

// A run of an even number of 'not's cancels to identity and is dropped, the
// same way collapseSigns folds a run of signs to a single placeholder — but
// only when an operand still follows to carry that identity. A run that
// runs off the end of the tokens (e.g. the whole source is "not not") has
// no operand to cancel onto, so a marker 'not' is always left behind: its
// own operand parse then reports the missing operand as a SyntaxError
// instead of the whole expression silently vanishing.
func collapseNots(toks []*word, dict *dictionary) []*word {
	out := make([]*word, 0, len(toks))
	i := 0
	for i < len(toks) {
		t := toks[i]
		var prev *word
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
		if t.name == "not" && inNotContext(prev) {
			j := i
			count := 0
			for j < len(toks) && toks[j].name == "not" {
				count++
				j++
			}
			if count%2 == 1 || j >= len(toks) {
				w, _, _ := dict.search("not")
				out = append(out, w)
			}
			i = j
			continue
		}
		out = append(out, t)
		i++
	}
	return out
}

func isOperandWord(w *word) bool {
	switch w.kind {
	case kindDoubleConstant, kindStringConstant, kindBooleanConstant,
		kindDoubleVariable, kindStringVariable, kindGeneratedVariable:
		return true
	default:
		return false
	}
}

func checkAdjacency(toks []*word) error {
	for i := 0; i+1 < len(toks); i++ {
		a, b := toks[i], toks[i+1]
		switch {
		case a.kind == kindLeftBracket && b.kind == kindRightBracket:
			return newSyntaxError(i, "empty argument list ()")
		case a.kind == kindGeneratedVariable && b.kind == kindLeftBracket:
			return newSyntaxError(i, "unknown function %q", a.name)
		case a.kind == kindRightBracket && b.kind == kindLeftBracket:
			return newSyntaxError(i, "missing operand between ) and (")
		case a.kind == kindRightBracket && isOperandWord(b):
			return newSyntaxError(i, "missing operand between ) and %s", describeWord(b))
		case isOperandWord(a) && b.kind == kindLeftBracket:
			return newSyntaxError(i, "missing operator between %s and (", describeWord(a))
		case isOperandWord(a) && isOperandWord(b):
			return newSyntaxError(i, "missing operator between %s and %s", describeWord(a), describeWord(b))
		}
	}
	return nil
}

// promoteIntPower rewrites '^' into the cheaper '^@' kernel whenever the
// right operand is a decimal-separator-free numeric constant.
func promoteIntPower(toks []*word, dict *dictionary, locale Locale) []*word {
	out := make([]*word, len(toks))
	copy(out, toks)
	sep := string(locale.normalized().DecimalSep)
	for i, t := range out {
		if t.name != "^" || i+1 >= len(out) {
			continue
		}
		rhs := out[i+1]
		if rhs.kind == kindDoubleConstant && !strings.Contains(rhs.text, sep) && !strings.ContainsAny(rhs.text, "eE") {
			w, _, _ := dict.search("^@")
			out[i] = w
		}
	}
	return out
}

func isStringOperand(w *word) bool {
	return w.kind == kindStringConstant || w.kind == kindStringVariable
}

func isFusableCompare(name string) bool {
	switch name {
	case "=", "<>", "<", "<=", ">", ">=", "in":
		return true
	}
	return false
}

// fuseStringCompares replaces every (string, cmp-or-in, string) triple
// with a single LogicalStringOper leaf, owned by consts. This is what lets
// 'in' route exclusively through string comparison per DESIGN.md's Open
// Question resolution: a bare 'in' left over after this pass always means
// its operands were not both strings.
func fuseStringCompares(toks []*word, consts *[]*word) []*word {
	out := make([]*word, 0, len(toks))
	i := 0
	for i < len(toks) {
		if i+2 < len(toks) && isStringOperand(toks[i]) && isFusableCompare(toks[i+1].name) && isStringOperand(toks[i+2]) {
			opName := toks[i+1].name
			fused := &word{
				kind:    kindLogicalStringOper,
				name:    opName,
				cmpOp:   opName,
				lhs:     toks[i],
				rhs:     toks[i+2],
				canVary: toks[i].canVary || toks[i+2].canVary,
				op:      opLogicalString,
			}
			*consts = append(*consts, fused)
			out = append(out, fused)
			i += 3
			continue
		}
		out = append(out, toks[i])
		i++
	}
	return out
}
