// Package vcgc compiles VCG (voice command grammar) source files into
// hierarchical rule trees: a tokenizer, a backtracking recursive-descent
// parser, and a stack-driven tree builder, with no evaluation, matching,
// or code-generation step of its own.
package vcgc

// Version identifies the compiler release.
const Version = "v1"

// Must panics if compiling a Module failed, for callers that consider a
// compile failure on a known-good source file unrecoverable.
func Must(m *Module, err error) *Module {
	if err != nil {
		panic(err)
	}
	return m
}
