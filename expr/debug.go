package expr

import "fmt"

// DebugTokenize exposes the raw lexer output for tooling (exprc's lex
// subcommand) without running shaping or tree building.
func DebugTokenize(text string, locale Locale) ([]string, error) {
	dict := newDictionary()
	registerBuiltins(dict)
	var consts []*word
	lx := newLexer(text, dict, &consts, locale)
	toks, err := lx.tokenize()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = fmt.Sprintf("%-20s %s", wordKindName(t.kind), describeWord(t))
	}
	return out, nil
}

func wordKindName(k wordKind) string {
	switch k {
	case kindLeftBracket:
		return "left-bracket"
	case kindRightBracket:
		return "right-bracket"
	case kindComma:
		return "comma"
	case kindDoubleConstant:
		return "number"
	case kindStringConstant:
		return "string"
	case kindBooleanConstant:
		return "boolean"
	case kindDoubleVariable:
		return "variable"
	case kindStringVariable:
		return "string-variable"
	case kindGeneratedVariable:
		return "generated-variable"
	case kindFunction:
		return "function"
	case kindBooleanFunction:
		return "boolean-function"
	case kindLogicalStringOper:
		return "logical-string-oper"
	default:
		return "unknown"
	}
}
