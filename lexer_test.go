package vcgc

import "testing"

// S1: whitespace-separated words with column tracking.
func TestTokenizeWords(t *testing.T) {
	toks, err := tokenize("s1.vcg", "   this is\t\ta  Test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{
		{Kind: TokenWord, Text: "this", Line: 1, Column: 3},
		{Kind: TokenWord, Text: "is", Line: 1, Column: 8},
		{Kind: TokenWord, Text: "a", Line: 1, Column: 12},
		{Kind: TokenWord, Text: "Test", Line: 1, Column: 15},
	}
	assertTokensEqual(t, toks, want)
}

// S2: comments are skipped entirely, including trailing-without-newline.
func TestTokenizeComments(t *testing.T) {
	toks, err := tokenize("s2.vcg", "#####\n# comment\nhi#\n\n#Test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{
		{Kind: TokenWord, Text: "hi", Line: 3, Column: 0},
	}
	assertTokensEqual(t, toks, want)
}

// S3: $ and @ identifiers, dotted bodies, sigil stripped from Text.
func TestTokenizeIdentifiers(t *testing.T) {
	toks, err := tokenize("s3.vcg", "$hello\n@func\n$yes.no.maybe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{
		{Kind: TokenDollarIdentifier, Text: "hello", Line: 1, Column: 0},
		{Kind: TokenAtIdentifier, Text: "func", Line: 2, Column: 0},
		{Kind: TokenDollarIdentifier, Text: "yes.no.maybe", Line: 3, Column: 0},
	}
	assertTokensEqual(t, toks, want)
}

func TestTokenizeQuotedString(t *testing.T) {
	toks, err := tokenize("quoted.vcg", `"no"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTokensEqual(t, toks, []Token{{Kind: TokenQuotedString, Text: "no", Line: 1, Column: 0}})
}

func TestTokenizePunctuation(t *testing.T) {
	toks, err := tokenize("punct.vcg", "(){}[]<>=;|.*+,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKinds := []TokenType{
		TokenParenStart, TokenParenEnd, TokenCurlyStart, TokenCurlyEnd,
		TokenBracketStart, TokenBracketEnd, TokenAngleStart, TokenAngleEnd,
		TokenEquals, TokenSemicolon, TokenPipe, TokenPeriod, TokenStar,
		TokenPlus, TokenComma,
	}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(wantKinds))
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

// S6: every one of these inputs must raise a LexError.
func TestTokenizeLexErrors(t *testing.T) {
	inputs := []string{
		"_", "4a5", "4.5", "1_", `"hi`, "hel$lo", "hel1", "TE&ST", "1234a", "12$3",
	}
	for _, in := range inputs {
		_, err := tokenize("err.vcg", in)
		if err == nil {
			t.Errorf("tokenize(%q): expected LexError, got nil", in)
			continue
		}
		if _, ok := err.(*LexError); !ok {
			t.Errorf("tokenize(%q): error is %T, want *LexError", in, err)
		}
	}
}

// Property 1: every emitted token has non-empty text and a non-None kind.
func TestTokenizeProperty1NonEmptyTokens(t *testing.T) {
	source := `import my.package.here;
$test = hello [my friendly] computer 12;
$some_thing @func = yes [(and | or) "no"];`
	toks, err := tokenize("prop1.vcg", source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, tok := range toks {
		if len(tok.Text) == 0 {
			t.Errorf("token %d (%s) has empty text", i, tok.Kind)
		}
		if tok.Kind == TokenNone {
			t.Errorf("token %d has kind TokenNone", i)
		}
	}
}

func assertTokensEqual(t *testing.T, got []Token, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d tokens %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
