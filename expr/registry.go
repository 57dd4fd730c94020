package expr

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// compiledExpr pairs the source text a caller compiled with the resulting
// linked program, so ReplaceExprWord can find every program that used a
// word being redefined.
type compiledExpr struct {
	source string
	prog   *program
}

// Registry is the public façade over the dictionary, constants list, and
// compile cache. One Registry holds one namespace of variables and
// functions; callers compile expression text against it and evaluate
// the results as many times as they like.
type Registry struct {
	dict     *dictionary
	consts   []*word
	locale   Locale
	logger   zerolog.Logger
	cache    map[string]*compiledExpr
	programs []*compiledExpr
	current  *compiledExpr
}

// NewRegistry builds a Registry with every built-in operator and function
// installed and the given locale and logger. Pass zerolog.Nop() for
// silent operation.
func NewRegistry(locale Locale, logger zerolog.Logger) *Registry {
	dict := newDictionary()
	registerBuiltins(dict)
	return &Registry{
		dict:   dict,
		locale: locale.normalized(),
		logger: logger,
		cache:  make(map[string]*compiledExpr),
	}
}

// DefineVariable binds name to an externally owned float64 cell — a
// "borrowed" variable, as opposed to one the lexer generates on its own.
// Re-registering an existing name overwrites it and rewires every already
// compiled program that referenced the old word or its cell, so a rebind
// is visible the next time those programs are evaluated rather than only
// to expressions compiled after the call. It returns an error if name
// already names a built-in operator, or a function whose argument count
// doesn't match a plain variable's — neither can be safely rewired into a
// zero-arg variable leaf without corrupting programs that call it.
func (r *Registry) DefineVariable(name string, cell *float64) error {
	name = lowerName(name)
	newWord := &word{name: name, kind: kindDoubleVariable, varPtr: cell}
	if existing, i, ok := r.dict.search(name); ok {
		if existing.isOperator {
			return newSyntaxError(-1, "cannot redefine operator %q as a variable", name)
		}
		if err := r.ReplaceExprWord(existing, newWord); err != nil {
			return err
		}
		r.dict.removeAt(i)
	}
	r.dict.add(newWord)
	return nil
}

// DefineStringVariable binds name to an externally owned string cell, with
// the same rewiring guarantee and redefinition guards as DefineVariable.
func (r *Registry) DefineStringVariable(name string, cell *string) error {
	name = lowerName(name)
	newWord := &word{name: name, kind: kindStringVariable, strPtr: cell}
	if existing, i, ok := r.dict.search(name); ok {
		if existing.isOperator {
			return newSyntaxError(-1, "cannot redefine operator %q as a variable", name)
		}
		if err := r.ReplaceExprWord(existing, newWord); err != nil {
			return err
		}
		r.dict.removeAt(i)
	}
	r.dict.add(newWord)
	return nil
}

// DefineFunction registers a new callable function word. It returns an
// error if name already names a built-in operator, since operators carry
// precedence and adjacency rules a plain function does not, or if name
// already names a function with a different argument count (surfaced by
// ReplaceExprWord's own arity check).
func (r *Registry) DefineFunction(name string, nArgs int, fn opFunc) error {
	name = lowerName(name)
	newWord := &word{name: name, kind: kindFunction, nArgs: nArgs, canVary: true, op: fn}
	if existing, i, ok := r.dict.search(name); ok {
		if existing.isOperator {
			return newSyntaxError(-1, "cannot redefine operator %q as a function", name)
		}
		if err := r.ReplaceExprWord(existing, newWord); err != nil {
			return err
		}
		r.dict.removeAt(i)
	}
	r.dict.add(newWord)
	return nil
}

// ReplaceFunction swaps the implementation of an already-registered
// function, then rewires every previously compiled program that
// referenced it via ReplaceExprWord, which itself enforces that nArgs
// matches the one the function was originally declared with.
func (r *Registry) ReplaceFunction(name string, nArgs int, fn opFunc) error {
	name = lowerName(name)
	existing, i, ok := r.dict.search(name)
	if !ok {
		return r.DefineFunction(name, nArgs, fn)
	}
	newWord := &word{
		name: existing.name, kind: existing.kind, nArgs: nArgs,
		precedence: existing.precedence, isOperator: existing.isOperator,
		canVary: existing.canVary, postfix: existing.postfix, op: fn,
	}
	if err := r.ReplaceExprWord(existing, newWord); err != nil {
		return err
	}
	r.dict.removeAt(i)
	r.dict.add(newWord)
	return nil
}

// ReplaceExprWord rewires every already-compiled program from old to new:
// nodes that hold old directly, LogicalStringOper leaves that embed old as
// their lhs/rhs, argument slots that hold old's variable cell by raw
// pointer (a variable leaf never becomes a node of its own — linearize
// short-circuits it straight to its cell address), and a bare-variable
// program's result field when it points at old's cell with no linked
// nodes at all. Called before the caller evicts old from the dictionary.
// Rejects the swap with an ArityError when old and new don't share an
// argument count — rewiring a node built for one arity to a word expecting
// another leaves stale argument slots or unset ones, so every caller
// (DefineVariable, DefineStringVariable, DefineFunction, ReplaceFunction)
// gets this guard uniformly rather than reimplementing it themselves.
func (r *Registry) ReplaceExprWord(old, new *word) error {
	if old.nArgs != new.nArgs {
		return &ArityError{Name: old.name, OldArgs: old.nArgs, NewArgs: new.nArgs}
	}
	for _, ce := range r.programs {
		if old.varPtr != nil && ce.prog.result == old.varPtr {
			ce.prog.result = new.varPtr
		}
		for node := ce.prog.head; node != nil; node = node.next {
			if node.w == old {
				node.w = new
				node.op = new.op
			}
			if node.w != nil && node.w.kind == kindLogicalStringOper {
				if node.w.lhs == old {
					node.w.lhs = new
				}
				if node.w.rhs == old {
					node.w.rhs = new
				}
			}
			if old.varPtr != nil {
				for i := 0; i < MaxArg; i++ {
					if node.args[i] == old.varPtr {
						node.args[i] = new.varPtr
					}
				}
			}
		}
	}
	return nil
}

// Compile runs the full lex → shape → tree → fold → linearize pipeline
// against text without touching the cache or current-expression state.
func (r *Registry) Compile(text string) (*program, error) {
	lx := newLexer(text, r.dict, &r.consts, r.locale)
	toks, err := lx.tokenize()
	if err != nil {
		r.logger.Debug().Err(err).Str("text", text).Msg("expr: lex failed")
		return nil, err
	}
	if len(toks) == 0 {
		return &program{result: zeroCellNaN()}, nil
	}
	toks, err = shape(toks, r.dict, &r.consts, r.locale)
	if err != nil {
		r.logger.Debug().Err(err).Str("text", text).Msg("expr: shape failed")
		return nil, err
	}
	root, err := makeTree(toks)
	if err != nil {
		r.logger.Debug().Err(err).Str("text", text).Msg("expr: parse failed")
		return nil, err
	}
	if root == nil {
		return &program{result: zeroCellNaN()}, nil
	}
	root, err = fold(root, &r.consts)
	if err != nil {
		r.logger.Debug().Err(err).Str("text", text).Msg("expr: constant fold failed")
		return nil, err
	}
	prog, err := linearize(root)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

func zeroCellNaN() *float64 {
	v := emptyResult()
	return &v
}

// AddExpression compiles text and caches it under its exact source form,
// making it the current expression. A second call with identical text
// reuses the cached program instead of recompiling.
func (r *Registry) AddExpression(text string) error {
	if ce, ok := r.cache[text]; ok {
		r.logger.Debug().Str("text", text).Msg("expr: cache hit")
		r.current = ce
		return nil
	}
	r.logger.Debug().Str("text", text).Msg("expr: cache miss, compiling")
	prog, err := r.Compile(text)
	if err != nil {
		return err
	}
	ce := &compiledExpr{source: text, prog: prog}
	r.cache[text] = ce
	r.programs = append(r.programs, ce)
	r.current = ce
	return nil
}

// Evaluate compiles text if needed (via AddExpression), runs it, and
// returns the resulting value.
func (r *Registry) Evaluate(text string) (float64, error) {
	if err := r.AddExpression(text); err != nil {
		return 0, err
	}
	return r.EvaluateCurrent()
}

// EvaluateCurrent re-runs whatever expression AddExpression last selected,
// against the variables' present values. This is the hot path: no lexing,
// shaping, or parsing, just one walk of the linked program.
func (r *Registry) EvaluateCurrent() (float64, error) {
	if r.current == nil {
		return emptyResult(), nil
	}
	if err := evaluate(r.current.prog); err != nil {
		r.logger.Warn().Err(err).Str("text", r.current.source).Msg("expr: evaluation error")
		return 0, err
	}
	return r.Result(), nil
}

// Result returns the last computed value of the current expression
// without re-evaluating it.
func (r *Registry) Result() float64 {
	if r.current == nil || r.current.prog == nil || r.current.prog.result == nil {
		return emptyResult()
	}
	return *r.current.prog.result
}

// AsBoolean interprets Result as a boolean using the same nonzero test the
// 'if' and bitwise kernels use, but only when the compiled expression's
// terminal word is itself boolean-typed (a comparison, 'and'/'or'/'not', or
// a fused string comparison). Asking a plain arithmetic expression for its
// boolean value is an EvalError, not a silent nonzero test.
func (r *Registry) AsBoolean() (bool, error) {
	if r.current == nil || r.current.prog == nil {
		return false, newEvalError("no current expression")
	}
	if r.current.prog.resultWord == nil || !r.current.prog.resultWord.isBoolean() {
		return false, newEvalError("expression %q does not evaluate to a boolean", r.current.source)
	}
	return r.Result() != 0, nil
}

// AsHex renders Result as an unsigned hexadecimal integer string.
func (r *Registry) AsHex() (string, error) {
	v := r.Result()
	if v != v { // NaN
		return "", newEvalError("cannot render an empty result as hex")
	}
	return strconv.FormatUint(uint64(roundInt(v)), 16), nil
}

// AsString renders Result the way a locale-aware caller would print it:
// integers without a fractional part lose it, everything else keeps full
// float precision.
func (r *Registry) AsString() string {
	v := r.Result()
	if v != v {
		return ""
	}
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.Replace(s, ".", string(r.locale.DecimalSep), 1)
}

// GeneratedVars lists the names of every variable the lexer synthesized
// because it was used in an expression before being declared.
func (r *Registry) GeneratedVars() []string {
	gvs := r.dict.generatedVars()
	out := make([]string, len(gvs))
	for i, w := range gvs {
		out[i] = w.name
	}
	return out
}

// ClearExpressions drops every cached compiled program. Registered
// variables and functions are untouched.
func (r *Registry) ClearExpressions() {
	r.cache = make(map[string]*compiledExpr)
	r.programs = nil
	r.current = nil
}
