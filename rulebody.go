package vcgc

import "strconv"

// ruleParser drives the rule-body grammar over a shared
// TokenCursor and RuleBuilder. Combinator steps return plain
// success/failure; a semantic violation additionally records a sticky
// CompileError in err, which the caller (parser.runRulePass) checks
// after the top-level seq() completes: non-matches are
// recoverable, semantic violations are not.
type ruleParser struct {
	filename string
	cursor   *TokenCursor
	builder  *RuleBuilder
	err      error
}

// fail records the first fatal semantic error and returns false so it
// composes directly as a parseFn's return value.
func (rp *ruleParser) fail(tok Token, format string, args ...interface{}) bool {
	if rp.err == nil {
		rp.err = newCompileError(rp.filename, tok.Line, format, args...)
	}
	return false
}

// optionalRuleFunction := AtIdentifier? — records the @ident callback
// name, if present. Always succeeds.
func (rp *ruleParser) optionalRuleFunction() bool {
	tok, ok := rp.cursor.Peek()
	if ok && tok.Kind == TokenAtIdentifier {
		_, _ = rp.cursor.Advance()
		rp.builder.SetCallback(tok.Text)
	}
	return true
}

// expression := plus(repeatable_expr). An informal grammar might write this
// as plus_any(repeatable_expr, optional_expr), but optional_expr is
// already one of repeatable_expr's own atoms (and repeatable_expr's
// inner run already absorbs a run of them), so the extra alternative
// is never reachable independently — see DESIGN.md.
func (rp *ruleParser) expression() bool {
	return plus(rp.cursor, rp.repeatableExpr)
}

// repeatableExpr := plus_any(word, quoted, variable, number, choices,
// optional_expr) ; then optional_repeatable. The inner plus_any greedily
// consumes a maximal run of atoms; optional_repeatable then applies to
// whichever atom ended up on top of the chain stack — the last one in
// that run — which is exactly the atom immediately preceding a
// quantifier token, since a quantifier character never itself matches
// an atom and so always stops the run first.
func (rp *ruleParser) repeatableExpr() bool {
	if !plusAny(rp.cursor, rp.word, rp.quoted, rp.variable, rp.number, rp.choices, rp.optionalExprAtom) {
		return false
	}
	rp.optionalRepeatable()
	return true
}

// optionalRepeatable := any(repeat_range, kleene_star, kleene_plus)? —
// always succeeds for cursor-movement purposes; a semantic violation
// inside repeatRange still escalates via rp.err.
func (rp *ruleParser) optionalRepeatable() {
	any(rp.cursor, rp.repeatRange, rp.kleeneStar, rp.kleenePlus)
}

func (rp *ruleParser) word() bool {
	tok, ok := rp.cursor.Peek()
	if !ok || tok.Kind != TokenWord {
		return false
	}
	_, _ = rp.cursor.Advance()
	if err := rp.builder.AddWord(tok.Text); err != nil {
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}

func (rp *ruleParser) quoted() bool {
	tok, ok := rp.cursor.Peek()
	if !ok || tok.Kind != TokenQuotedString {
		return false
	}
	_, _ = rp.cursor.Advance()
	if err := rp.builder.AddWord(tok.Text); err != nil {
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}

// number treats a bare numeral as a literal word atom — the same way
// a rule body like "$test = hello [my friendly] computer
// 12;") uses a numeral inside a rule body alongside ordinary words,
// even though the informal grammar sketch omits an explicit "number" atom.
func (rp *ruleParser) number() bool {
	tok, ok := rp.cursor.Peek()
	if !ok || tok.Kind != TokenNumber {
		return false
	}
	_, _ = rp.cursor.Advance()
	if err := rp.builder.AddWord(tok.Text); err != nil {
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}

func (rp *ruleParser) variable() bool {
	tok, ok := rp.cursor.Peek()
	if !ok || tok.Kind != TokenDollarIdentifier {
		return false
	}
	_, _ = rp.cursor.Advance()
	if err := rp.builder.AddVariable(tok.Text); err != nil {
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}

// choices := "(" pipe_expression ")"
func (rp *ruleParser) choices() bool {
	openTok, ok := rp.cursor.Peek()
	if !ok || openTok.Kind != TokenParenStart {
		return false
	}
	return seq(rp.cursor,
		matchKind(rp.cursor, TokenParenStart),
		func() bool {
			if err := rp.builder.StartGroup(); err != nil {
				return rp.fail(openTok, "%s", err.Error())
			}
			return true
		},
		rp.pipeExpression,
		func() bool {
			tok, ok := rp.cursor.Peek()
			if !ok {
				tok = openTok
			}
			if !matchKind(rp.cursor, TokenParenEnd)() {
				return rp.fail(tok, "Unmatched '(' opened on line %d", openTok.Line)
			}
			return true
		},
		func() bool {
			if err := rp.builder.EndGroup(); err != nil {
				return rp.fail(openTok, "%s", err.Error())
			}
			return true
		},
	)
}

// optional_expr := "[" pipe_expression "]"
func (rp *ruleParser) optionalExprAtom() bool {
	openTok, ok := rp.cursor.Peek()
	if !ok || openTok.Kind != TokenBracketStart {
		return false
	}
	return seq(rp.cursor,
		matchKind(rp.cursor, TokenBracketStart),
		func() bool {
			if err := rp.builder.StartOptional(); err != nil {
				return rp.fail(openTok, "%s", err.Error())
			}
			return true
		},
		rp.pipeExpression,
		func() bool {
			tok, ok := rp.cursor.Peek()
			if !ok {
				tok = openTok
			}
			if !matchKind(rp.cursor, TokenBracketEnd)() {
				return rp.fail(tok, "Unmatched '[' opened on line %d", openTok.Line)
			}
			return true
		},
		func() bool {
			if err := rp.builder.EndOptional(); err != nil {
				return rp.fail(openTok, "%s", err.Error())
			}
			return true
		},
	)
}

// pipeExpression := expression ( "|" expression )*
func (rp *ruleParser) pipeExpression() bool {
	if !rp.expression() {
		return false
	}
	star(rp.cursor, func() bool {
		return seq(rp.cursor,
			matchKind(rp.cursor, TokenPipe),
			func() bool {
				if err := rp.builder.OnPipe(); err != nil {
					pipeTok, _ := rp.cursor.Peek()
					return rp.fail(pipeTok, "%s", err.Error())
				}
				return true
			},
			rp.expression,
		)
	})
	return true
}

// repeatRange := "{" number ("," number?)? "}"
func (rp *ruleParser) repeatRange() bool {
	openTok, ok := rp.cursor.Peek()
	if !ok || openTok.Kind != TokenCurlyStart {
		return false
	}

	var min, max int
	haveComma, haveMax := false, false

	matched := seq(rp.cursor,
		matchKind(rp.cursor, TokenCurlyStart),
		func() bool {
			tok, ok := rp.cursor.Peek()
			if !ok || tok.Kind != TokenNumber {
				return false
			}
			n, err := strconv.Atoi(tok.Text)
			if err != nil {
				return rp.fail(tok, "Malformed repeat count %q", tok.Text)
			}
			min = n
			_, _ = rp.cursor.Advance()
			return true
		},
		func() bool {
			tok, ok := rp.cursor.Peek()
			if !ok || tok.Kind != TokenComma {
				return true
			}
			_, _ = rp.cursor.Advance()
			haveComma = true
			numTok, ok2 := rp.cursor.Peek()
			if ok2 && numTok.Kind == TokenNumber {
				n, err := strconv.Atoi(numTok.Text)
				if err != nil {
					return rp.fail(numTok, "Malformed repeat count %q", numTok.Text)
				}
				max = n
				haveMax = true
				_, _ = rp.cursor.Advance()
			}
			return true
		},
		matchKind(rp.cursor, TokenCurlyEnd),
	)
	if !matched {
		return false
	}

	switch {
	case !haveComma:
		max = min
	case !haveMax:
		max = Unbounded
	}

	if err := rp.builder.SetRange(min, max); err != nil {
		return rp.fail(openTok, "%s", err.Error())
	}
	return true
}

func (rp *ruleParser) kleeneStar() bool {
	if !matchKind(rp.cursor, TokenStar)() {
		return false
	}
	if err := rp.builder.SetRange(0, Unbounded); err != nil {
		tok, _ := rp.cursor.Peek()
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}

func (rp *ruleParser) kleenePlus() bool {
	if !matchKind(rp.cursor, TokenPlus)() {
		return false
	}
	if err := rp.builder.SetRange(1, Unbounded); err != nil {
		tok, _ := rp.cursor.Peek()
		return rp.fail(tok, "%s", err.Error())
	}
	return true
}
