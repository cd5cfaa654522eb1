package vcgc

import "github.com/juju/loggo"

// logger traces parser combinator backtracking and reports pass/rule
// completion. It is silent by default: loggo's root logger starts at
// WARNING, so TRACE/DEBUG output never appears unless a caller raises
// this logger's level explicitly (loggo.GetLogger("vcgc").SetLogLevel(
// loggo.TRACE)).
var logger = loggo.GetLogger("vcgc")

// traceCombinator logs a single combinator attempt and its outcome at
// TRACE. Called from combinators.go by any and seq; star, plus and
// plusAny are traced only through the any/seq calls they make.
func traceCombinator(name string, before, after int, ok bool) {
	if ok {
		logger.Tracef("%s succeeded, cursor %d -> %d", name, before, after)
	} else {
		logger.Tracef("%s failed, cursor restored to %d", name, before)
	}
}
