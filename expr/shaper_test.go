package expr

import "testing"

func shapeText(t *testing.T, text string) []*word {
	t.Helper()
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer(text, dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize(%q): %v", text, err)
	}
	shaped, err := shape(toks, dict, &consts, DefaultLocale())
	if err != nil {
		t.Fatalf("shape(%q): %v", text, err)
	}
	return shaped
}

func TestCollapseSignsEvenIsPositive(t *testing.T) {
	toks := shapeText(t, "1 * - - 2")
	if len(toks) != 4 || toks[2].name != "+@" {
		t.Fatalf("expected a single '+@', got %#v", names(toks))
	}
}

func TestCollapseSignsOddIsNegative(t *testing.T) {
	toks := shapeText(t, "1 * - - - 2")
	if len(toks) != 4 || toks[2].name != "-@" {
		t.Fatalf("expected a single '-@', got %#v", names(toks))
	}
}

func TestCollapseNotsOddSurvives(t *testing.T) {
	toks := shapeText(t, "not not not 1")
	if len(toks) != 2 || toks[0].name != "not" {
		t.Fatalf("expected one surviving 'not', got %#v", names(toks))
	}
}

func TestCollapseNotsEvenVanishes(t *testing.T) {
	toks := shapeText(t, "not not 1")
	if len(toks) != 1 {
		t.Fatalf("expected 'not not' to cancel out, got %#v", names(toks))
	}
}

func TestCollapseNotsEvenWithNoOperandLeavesMarker(t *testing.T) {
	toks := shapeText(t, "not not")
	if len(toks) != 1 || toks[0].name != "not" {
		t.Fatalf("expected a surviving marker 'not' with no operand, got %#v", names(toks))
	}
}

func TestPromoteIntPowerOnIntegerExponent(t *testing.T) {
	toks := shapeText(t, "2 ^ 3")
	if toks[1].name != "^@" {
		t.Fatalf("expected '^' promoted to '^@', got %q", toks[1].name)
	}
}

func TestNoPromoteIntPowerOnFractionalExponent(t *testing.T) {
	toks := shapeText(t, "2 ^ 3.5")
	if toks[1].name != "^" {
		t.Fatalf("expected '^' to remain unpromoted, got %q", toks[1].name)
	}
}

func TestFuseStringCompares(t *testing.T) {
	toks := shapeText(t, "'a' = 'b'")
	if len(toks) != 1 || toks[0].kind != kindLogicalStringOper {
		t.Fatalf("expected a single fused LogicalStringOper, got %#v", names(toks))
	}
}

func TestAdjacencyRejectsEmptyArgList(t *testing.T) {
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer("()", dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if _, err := shape(toks, dict, &consts, DefaultLocale()); err == nil {
		t.Fatal("expected an adjacency error for ()")
	}
}

func names(toks []*word) []string {
	out := make([]string, len(toks))
	for i, w := range toks {
		out[i] = w.name
	}
	return out
}
