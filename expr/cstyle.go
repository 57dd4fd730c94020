package expr

// registerCStyleAliases installs the C-familiar spellings over the native
// keyword table. Unlike a purely additive alias, several of these repoint
// a symbol the native table already owns to a different arity, fixity, or
// precedence — '!' moves from postfix factorial to prefix logical negation,
// '%' moves from postfix percent to infix modulo, ':=' assignment moves to
// '=', and '=' equality moves to '=='. Each swap removes the old binding
// before adding the new one, and the tree builder's precedence-keyed tiers
// (isNotOp, isCompareOp, isAssignOp, isPrefixUnary/isPostfixUnary) pick up
// the change automatically since they key off a word's precedence and
// postfix flag rather than its spelling.
func registerCStyleAliases(dict *dictionary) {
	replace := func(w *word) {
		if _, i, ok := dict.search(w.name); ok {
			dict.removeAt(i)
		}
		dict.add(w)
	}
	remove := func(name string) {
		if _, i, ok := dict.search(name); ok {
			dict.removeAt(i)
		}
	}

	// Logical connectives and equality gain C spellings alongside the
	// native keywords; && must bind to opAnd and || to opOr, the pairing
	// the other direction would silently swap their truth tables.
	replace(&word{name: "&&", kind: kindBooleanFunction, nArgs: 2, precedence: 70, isOperator: true, op: opAnd})
	replace(&word{name: "||", kind: kindBooleanFunction, nArgs: 2, precedence: 70, isOperator: true, op: opOr})
	replace(&word{name: "!=", kind: kindBooleanFunction, nArgs: 2, precedence: 50, isOperator: true, op: opNeq})

	// '=' moves from equality to assignment; '==' becomes the only
	// equality spelling, matching C's split between the two.
	remove("=")
	replace(&word{name: "==", kind: kindBooleanFunction, nArgs: 2, precedence: 50, isOperator: true, op: opEq})
	remove(":=")
	replace(&word{name: "=", kind: kindFunction, nArgs: 2, precedence: 200, isOperator: true, canVary: true, op: opAssign})

	// '!' moves from postfix factorial to prefix logical negation; the old
	// role survives as the 'fact' function. 'not' is retired in favor of
	// the single '!' spelling.
	remove("not")
	replace(&word{name: "!", kind: kindBooleanFunction, nArgs: 1, precedence: 60, isOperator: true, op: opNot})
	replace(&word{name: "fact", kind: kindFunction, nArgs: 1, op: opFactorial})

	// '%' moves from postfix percent to infix modulo, taking over 'mod''s
	// role; the old percent role survives as the 'perc' function. 'div'
	// drops its infix form and becomes callable only as a function.
	remove("mod")
	replace(&word{name: "%", kind: kindFunction, nArgs: 2, precedence: 30, isOperator: true, op: opMod})
	replace(&word{name: "perc", kind: kindFunction, nArgs: 1, op: opPercent})
	replace(&word{name: "div", kind: kindFunction, nArgs: 2, isOperator: false, op: opDivInt})
}

// EnableCStyleOperators switches the registry's dictionary into the C-style
// dialect: '&&'/'||'/'=='/'!=' join the native logical and comparison
// keywords, while '!', '%', '=', ':=', 'mod', and 'not' are repointed or
// retired per registerCStyleAliases. This mutates the dictionary in place —
// it is a dialect switch, not a purely additive alias table, so expressions
// compiled afterward see the C spellings and lose the retired native ones.
func (r *Registry) EnableCStyleOperators() {
	registerCStyleAliases(r.dict)
}
