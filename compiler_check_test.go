package vcgc

import (
	"testing"

	. "github.com/go-check/check"
)

// Hook up gocheck into the "go test" runner.
func TestCompiler(t *testing.T) { TestingT(t) }

type CompilerSuite struct{}

var _ = Suite(&CompilerSuite{})

func (s *CompilerSuite) TestS1Lexing(c *C) {
	toks, err := tokenize("s1.vcg", "   this is\t\ta  Test")
	c.Assert(err, IsNil)
	c.Assert(toks, HasLen, 4)
	texts := make([]string, len(toks))
	for i, t := range toks {
		texts[i] = t.Text
		c.Check(t.Kind, Equals, TokenWord)
		c.Check(t.Line, Equals, 1)
	}
	c.Check(texts, DeepEquals, []string{"this", "is", "a", "Test"})
	c.Check(toks[0].Column, Equals, 3)
	c.Check(toks[1].Column, Equals, 8)
	c.Check(toks[2].Column, Equals, 12)
	c.Check(toks[3].Column, Equals, 15)
}

func (s *CompilerSuite) TestS2Comments(c *C) {
	toks, err := tokenize("s2.vcg", "#####\n# comment\nhi#\n\n#Test")
	c.Assert(err, IsNil)
	c.Assert(toks, HasLen, 1)
	c.Check(toks[0].Kind, Equals, TokenWord)
	c.Check(toks[0].Text, Equals, "hi")
	c.Check(toks[0].Line, Equals, 3)
	c.Check(toks[0].Column, Equals, 0)
}

func (s *CompilerSuite) TestS3Identifiers(c *C) {
	toks, err := tokenize("s3.vcg", "$hello\n@func\n$yes.no.maybe")
	c.Assert(err, IsNil)
	c.Assert(toks, HasLen, 3)
	c.Check(toks[0], Equals, Token{Kind: TokenDollarIdentifier, Text: "hello", Line: 1, Column: 0})
	c.Check(toks[1], Equals, Token{Kind: TokenAtIdentifier, Text: "func", Line: 2, Column: 0})
	c.Check(toks[2], Equals, Token{Kind: TokenDollarIdentifier, Text: "yes.no.maybe", Line: 3, Column: 0})
}

func (s *CompilerSuite) TestS4Imports(c *C) {
	m, err := NewModule("s4.vcg", "import package;\nimport package.inner as yes;\n")
	c.Assert(err, IsNil)
	c.Assert(m.Imports, HasLen, 2)
	c.Check(m.Imports["package"], Equals, ImportSpec{Alias: "", Static: false})
	c.Check(m.Imports["package.inner"], Equals, ImportSpec{Alias: "yes", Static: false})
}

func (s *CompilerSuite) TestS4ImportsStatic(c *C) {
	m, err := NewModule("s4b.vcg", "import static package;\n")
	c.Assert(err, IsNil)
	c.Check(m.Imports["package"], Equals, ImportSpec{Alias: "", Static: true})
}

func (s *CompilerSuite) TestS5RuleRoundTrip(c *C) {
	m, err := NewModule("s5.vcg", `$r = a* (b{3} c+ | (d | e{2,9}) [f]) ((g)) h{3,};`)
	c.Assert(err, IsNil)
	root, ok := m.Rules["r"]
	c.Assert(ok, Equals, true)
	c.Check(root.String(), Equals, "a* (b{3} c+ | (d | e{2,9}) [f]) ((g)) h{3,}")
}

func (s *CompilerSuite) TestS6LexErrors(c *C) {
	inputs := []string{"_", "4a5", "4.5", "1_", `"hi`, "hel$lo", "hel1", "TE&ST", "1234a", "12$3"}
	for _, in := range inputs {
		_, err := tokenize("s6.vcg", in)
		c.Check(err, NotNil, Commentf("input %q should raise a LexError", in))
		if err != nil {
			_, ok := err.(*LexError)
			c.Check(ok, Equals, true, Commentf("input %q error should be *LexError, got %T", in, err))
		}
	}
}

func (s *CompilerSuite) TestS7CompileErrors(c *C) {
	cases := []string{
		`$r = a{3,1};`,
		`import a; import a;`,
		`import static a as x;`,
	}
	for _, source := range cases {
		_, err := NewModule("s7.vcg", source)
		c.Check(err, NotNil, Commentf("source %q should raise a CompileError", source))
		if err != nil {
			_, ok := err.(*CompileError)
			c.Check(ok, Equals, true, Commentf("source %q error should be *CompileError, got %T", source, err))
		}
	}
}
