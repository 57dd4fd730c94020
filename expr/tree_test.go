package expr

import "testing"

func compileTree(t *testing.T, text string) *exprRec {
	t.Helper()
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer(text, dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize(%q): %v", text, err)
	}
	toks, err = shape(toks, dict, &consts, DefaultLocale())
	if err != nil {
		t.Fatalf("shape(%q): %v", text, err)
	}
	root, err := makeTree(toks)
	if err != nil {
		t.Fatalf("makeTree(%q): %v", text, err)
	}
	return root
}

func TestMakeTreeEmptyInputIsNil(t *testing.T) {
	root := compileTree(t, "")
	if root != nil {
		t.Fatalf("expected nil root for empty input, got %#v", root)
	}
}

func TestMakeTreePrecedence(t *testing.T) {
	root := compileTree(t, "1 + 2 * 3")
	if root.w.name != "+" {
		t.Fatalf("expected '+' at the root, got %q", root.w.name)
	}
	if root.argTrees[1].w.name != "*" {
		t.Fatalf("expected '*' as the right child, got %q", root.argTrees[1].w.name)
	}
}

func TestMakeTreeRejectsAssignToNonVariable(t *testing.T) {
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer("1 := 2", dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	toks, err = shape(toks, dict, &consts, DefaultLocale())
	if err != nil {
		t.Fatalf("shape: %v", err)
	}
	if _, err := makeTree(toks); err == nil {
		t.Fatal("expected an error assigning to a non-variable")
	}
}

func TestMakeTreeFunctionArityMismatch(t *testing.T) {
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer("sqrt(1, 2)", dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if _, err := makeTree(toks); err == nil {
		t.Fatal("expected an arity error calling sqrt with two arguments")
	}
}
