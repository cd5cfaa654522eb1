package vcgc

// parseFn is a single backtracking parse step: a closure over a
// *TokenCursor (and usually a *RuleBuilder) that reports whether it
// matched. Modeling combinators as ordinary functions rather than a
// class hierarchy keeps the parse steps trivially composable and
// testable in isolation.
type parseFn func() bool

// any tries each parser in order and returns on the first success,
// leaving the cursor advanced by that parser. Each failing attempt
// restores the cursor to the point before it was tried; if every parser
// fails, any fails with the cursor at its original position.
func any(c *TokenCursor, parsers ...parseFn) bool {
	mark := c.Mark()
	for _, p := range parsers {
		attemptMark := c.Mark()
		if p() {
			traceCombinator("any", mark, c.Mark(), true)
			return true
		}
		_ = c.Restore(attemptMark)
	}
	traceCombinator("any", mark, mark, false)
	return false
}

// seq snapshots the cursor, runs each parser in order, and restores to
// the snapshot if any parser fails. On full success the cursor is left
// at the end of the last parser's match.
func seq(c *TokenCursor, parsers ...parseFn) bool {
	mark := c.Mark()
	for _, p := range parsers {
		if !p() {
			_ = c.Restore(mark)
			traceCombinator("seq", mark, mark, false)
			return false
		}
	}
	traceCombinator("seq", mark, c.Mark(), true)
	return true
}

// star repeats p greedily. Each failed iteration restores the cursor to
// the start of that iteration; star itself always succeeds (zero
// matches is success).
func star(c *TokenCursor, p parseFn) {
	for {
		iterMark := c.Mark()
		if !p() {
			_ = c.Restore(iterMark)
			return
		}
		if c.Mark() == iterMark {
			// p matched without consuming anything; looping forever
			// would hang, so treat a zero-width match as the end of
			// the run.
			return
		}
	}
}

// plus requires at least one success of p, then behaves like star.
func plus(c *TokenCursor, p parseFn) bool {
	mark := c.Mark()
	if !p() {
		_ = c.Restore(mark)
		return false
	}
	star(c, p)
	return true
}

// plusAny requires at least one any(parsers...) success, then greedily
// repeats any(parsers...), restoring per iteration on failure.
func plusAny(c *TokenCursor, parsers ...parseFn) bool {
	return plus(c, func() bool {
		return any(c, parsers...)
	})
}
