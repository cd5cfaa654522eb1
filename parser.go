package vcgc

import "strings"

// parser is the two-pass recursive-descent compiler: pass 1 collects
// imports, pass 2 compiles rule bodies,
// driving a RuleBuilder per rule through a shared TokenCursor.
type parser struct {
	filename string
	cursor   *TokenCursor
	module   *Module
}

func newParser(filename string, tokens []Token, module *Module) *parser {
	return &parser{
		filename: filename,
		cursor:   NewTokenCursor(tokens),
		module:   module,
	}
}

// matchKind returns a parseFn that consumes the current token if it has
// the given kind.
func matchKind(c *TokenCursor, kind TokenType) parseFn {
	return func() bool {
		tok, ok := c.Peek()
		if !ok || tok.Kind != kind {
			return false
		}
		_, _ = c.Advance()
		return true
	}
}

// matchWordLower returns a parseFn that consumes the current token if
// it is a Word whose lowercased text equals lower.
func matchWordLower(c *TokenCursor, lower string) parseFn {
	return func() bool {
		tok, ok := c.Peek()
		if !ok || tok.Kind != TokenWord || strings.ToLower(tok.Text) != lower {
			return false
		}
		_, _ = c.Advance()
		return true
	}
}

// skipToSemicolon consumes tokens, starting from the current position,
// up to and including the next Semicolon, or until EOF. It is used both
// to skip a rule-header region encountered during the import pass and
// to skip any unrecognized top-level statement in either pass.
func (p *parser) skipToSemicolon() {
	for p.cursor.HasNext() {
		tok, err := p.cursor.Advance()
		if err != nil {
			return
		}
		if tok.Kind == TokenSemicolon {
			return
		}
	}
}

// runImportPass collects and validates the import clauses.
func (p *parser) runImportPass() error {
	p.cursor.Reset()
	for p.cursor.HasNext() {
		tok, ok := p.cursor.Peek()
		if !ok {
			break
		}
		switch {
		case tok.Kind == TokenDollarIdentifier:
			p.skipToSemicolon()
		case tok.Kind == TokenWord && strings.ToLower(tok.Text) == "import":
			_, _ = p.cursor.Advance()
			clause, matched := p.parseImportClause()
			if !matched {
				return newCompileError(p.filename, tok.Line, "Malformed input statement on line %d", tok.Line)
			}
			if err := p.applyImport(clause); err != nil {
				return err
			}
		default:
			p.skipToSemicolon()
		}
	}
	logger.Debugf("import pass complete: %d package(s)", len(p.module.Imports))
	return nil
}

// importClause is the syntactic result of consume_import() before its
// semantics (duplicate/static+alias checks) are applied.
type importClause struct {
	isStatic bool
	pkg      string
	alias    string
}

// parseImportClause implements consume_import() = seq(optional_static,
// package_name, optional_alias, semicolon).
func (p *parser) parseImportClause() (importClause, bool) {
	var ic importClause
	c := p.cursor

	optionalStatic := func() bool {
		tok, ok := c.Peek()
		if ok && tok.Kind == TokenWord && strings.ToLower(tok.Text) == "static" {
			_, _ = c.Advance()
			ic.isStatic = true
		}
		return true
	}

	packageName := func() bool {
		tok, ok := c.Peek()
		if !ok || tok.Kind != TokenWord {
			return false
		}
		_, _ = c.Advance()
		ic.pkg = tok.Text
		star(c, func() bool {
			return seq(c,
				matchKind(c, TokenPeriod),
				func() bool {
					t, ok := c.Peek()
					if !ok || t.Kind != TokenWord {
						return false
					}
					_, _ = c.Advance()
					ic.pkg += "." + t.Text
					return true
				},
			)
		})
		return true
	}

	optionalAlias := func() bool {
		mark := c.Mark()
		tok, ok := c.Peek()
		if ok && tok.Kind == TokenWord && strings.ToLower(tok.Text) == "as" {
			_, _ = c.Advance()
			nameTok, ok2 := c.Peek()
			if ok2 && nameTok.Kind == TokenWord {
				_, _ = c.Advance()
				ic.alias = nameTok.Text
				return true
			}
			_ = c.Restore(mark)
		}
		return true
	}

	matched := seq(c, optionalStatic, packageName, optionalAlias, matchKind(c, TokenSemicolon))
	return ic, matched
}

// applyImport performs the semantic checks and insertion described at
// the end of the import pass.
func (p *parser) applyImport(ic importClause) error {
	if _, exists := p.module.Imports[ic.pkg]; exists {
		return newCompileError(p.filename, 0, "Package %s already loaded", ic.pkg)
	}
	if ic.alias != "" && ic.isStatic {
		return newCompileError(p.filename, 0, "Package %s cannot be both static and renamed", ic.pkg)
	}
	p.module.Imports[ic.pkg] = ImportSpec{Alias: ic.alias, Static: ic.isStatic}
	return nil
}

// runRulePass compiles every rule body in the module.
func (p *parser) runRulePass() error {
	p.cursor.Reset()
	for p.cursor.HasNext() {
		tok, ok := p.cursor.Peek()
		if !ok {
			break
		}
		if tok.Kind != TokenDollarIdentifier {
			p.skipToSemicolon()
			continue
		}

		_, _ = p.cursor.Advance()
		ruleName := tok.Text
		builder := NewRuleBuilder(ruleName)
		rp := &ruleParser{filename: p.filename, cursor: p.cursor, builder: builder}

		matched := seq(p.cursor,
			rp.optionalRuleFunction,
			matchKind(p.cursor, TokenEquals),
			rp.expression,
			matchKind(p.cursor, TokenSemicolon),
		)
		if rp.err != nil {
			return rp.err
		}
		if !matched {
			return newCompileError(p.filename, tok.Line, "Bad definition on line %d", tok.Line)
		}

		root, err := builder.Finish()
		if err != nil {
			return err
		}
		p.module.Rules[ruleName] = root
		if cb := builder.Callback(); cb != "" {
			p.module.Callbacks[ruleName] = cb
		}
		logger.Debugf("compiled rule %q", ruleName)
	}
	return nil
}
