package expr

import "testing"

func lexText(t *testing.T, text string) []*word {
	t.Helper()
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer(text, dict, &consts, DefaultLocale())
	toks, err := lx.tokenize()
	if err != nil {
		t.Fatalf("tokenize(%q): %v", text, err)
	}
	return toks
}

func TestLexerNumbers(t *testing.T) {
	toks := lexText(t, "3.14 + 2e3")
	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
	if toks[0].numValue != 3.14 {
		t.Errorf("got %v, want 3.14", toks[0].numValue)
	}
	if toks[2].numValue != 2000 {
		t.Errorf("got %v, want 2000", toks[2].numValue)
	}
}

func TestLexerHexLiteral(t *testing.T) {
	toks := lexText(t, "$ff")
	if len(toks) != 1 || toks[0].numValue != 255 {
		t.Fatalf("expected single token 255, got %#v", toks)
	}
}

func TestLexerHexPrefixFallsBackToIdent(t *testing.T) {
	toks := lexText(t, "$")
	if len(toks) != 1 || toks[0].kind != kindGeneratedVariable {
		t.Fatalf("expected a generated variable named '$', got %#v", toks)
	}
}

func TestLexerString(t *testing.T) {
	toks := lexText(t, "'hello'")
	if len(toks) != 1 || toks[0].strValue != "hello" {
		t.Fatalf("expected string literal 'hello', got %#v", toks)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer("'oops", dict, &consts, DefaultLocale())
	if _, err := lx.tokenize(); err == nil {
		t.Fatal("expected an unterminated-string error")
	}
}

func TestLexerReusesGeneratedVariable(t *testing.T) {
	toks := lexText(t, "foo + foo")
	if toks[0] != toks[2] {
		t.Fatal("expected both occurrences of 'foo' to resolve to the same word")
	}
}

func TestLexerDigraphOperators(t *testing.T) {
	toks := lexText(t, "1 <= 2 <> 3")
	if toks[1].name != "<=" || toks[3].name != "<>" {
		t.Fatalf("unexpected operator names: %q %q", toks[1].name, toks[3].name)
	}
}
