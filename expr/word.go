package expr

import "strings"

// MaxArg is the largest argument count any function or operator may take.
const MaxArg = 4

// wordKind tags the variant a word carries. A class hierarchy
// (TExprWord / TFunction / TDoubleConstant / ...) collapses to one tagged
// struct with a kind discriminant.
type wordKind int

const (
	kindLeftBracket wordKind = iota
	kindRightBracket
	kindComma
	kindDoubleConstant
	kindStringConstant
	kindBooleanConstant
	kindDoubleVariable
	kindStringVariable
	kindGeneratedVariable
	kindFunction
	kindBooleanFunction
	kindLogicalStringOper
)

// word is the compile-time descriptor of a lexeme: an operator, a function,
// a literal, or a variable. Words are keyed by lowercased name and either
// live in a dictionary (built-ins and registered variables/functions) or in
// a parser's constants list (ad-hoc literals and folded constants).
type word struct {
	name       string
	kind       wordKind
	nArgs      int
	precedence int
	isOperator bool
	canVary    bool
	postfix    bool
	op         opFunc

	// DoubleConstant / BooleanConstant
	numValue float64
	text     string

	// StringConstant / StringVariable
	strValue string
	strPtr   *string

	// DoubleVariable / GeneratedVariable
	varPtr *float64

	// LogicalStringOper, synthesized during shaping
	cmpOp string
	lhs   *word
	rhs   *word
}

func (w *word) isString() bool {
	return w.kind == kindStringConstant || w.kind == kindStringVariable
}

func (w *word) isVariable() bool {
	switch w.kind {
	case kindDoubleVariable, kindStringVariable, kindGeneratedVariable:
		return true
	default:
		return false
	}
}

func (w *word) isBoolean() bool {
	return w.kind == kindBooleanConstant || w.kind == kindBooleanFunction || w.kind == kindLogicalStringOper
}

// dictionary is an ordered, name-unique mapping used both for the built-in
// operator/function table and for user-registered variables/functions.
// It supports prefix search for autocomplete-style host tooling.
type dictionary struct {
	order []*word
	index map[string]int
}

func newDictionary() *dictionary {
	return &dictionary{index: make(map[string]int)}
}

func lowerName(name string) string {
	return strings.ToLower(name)
}

// search returns the word registered under name, its slot, and whether it
// was found.
func (d *dictionary) search(name string) (*word, int, bool) {
	i, ok := d.index[lowerName(name)]
	if !ok {
		return nil, -1, false
	}
	return d.order[i], i, true
}

// add appends w, keyed by its lowercased name. Callers must ensure the name
// is not already present (or have already removed the prior entry).
func (d *dictionary) add(w *word) {
	d.index[w.name] = len(d.order)
	d.order = append(d.order, w)
}

// removeAt frees the slot at i, compacting the order slice and reindexing
// every entry that shifted.
func (d *dictionary) removeAt(i int) {
	if i < 0 || i >= len(d.order) {
		return
	}
	removed := d.order[i]
	d.order = append(d.order[:i], d.order[i+1:]...)
	delete(d.index, removed.name)
	for j := i; j < len(d.order); j++ {
		d.index[d.order[j].name] = j
	}
}

// searchPrefix returns every word whose name starts with prefix, in
// dictionary order. Used by host tooling (e.g. autocomplete) that wants to
// enumerate candidates without exposing the dictionary's internals.
func (d *dictionary) searchPrefix(prefix string) []*word {
	prefix = lowerName(prefix)
	var out []*word
	for _, w := range d.order {
		if strings.HasPrefix(w.name, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// generatedVars returns every GeneratedVariable currently registered, in
// dictionary order, for Registry.GeneratedVars.
func (d *dictionary) generatedVars() []*word {
	var out []*word
	for _, w := range d.order {
		if w.kind == kindGeneratedVariable {
			out = append(out, w)
		}
	}
	return out
}
