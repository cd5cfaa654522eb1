package vcgc

// ImportSpec records the (alias, is-static) pair attached to a package
// import. Alias is empty when the import was not renamed.
type ImportSpec struct {
	Alias  string
	Static bool
}

// Module is the parse result container: the compiled
// view of one VCG source file, handed off to external collaborators
// (grammar builder, scripting host) through its Imports and Rules maps.
type Module struct {
	PackagePath   string // set by the directory walker; empty until then
	FileName      string
	CompanionFile string // set by the directory walker when a sidecar file exists; empty otherwise

	Imports   map[string]ImportSpec
	Rules     map[string]*HierarchicalNode
	Callbacks map[string]string // rule name -> @callback name, only set when present
}

func newModule(filename string) *Module {
	return &Module{
		FileName:  filename,
		Imports:   make(map[string]ImportSpec),
		Rules:     make(map[string]*HierarchicalNode),
		Callbacks: make(map[string]string),
	}
}

// NewModule compiles a single VCG source file held in memory. The caller
// passes the already-read source; NewModule tokenizes it and runs the
// import pass followed by the rule pass, in the manner of a FromString
// entry point. There is no I/O beyond what the caller already did to
// produce source; parsing itself never blocks.
func NewModule(filename, source string) (*Module, error) {
	tokens, err := tokenize(filename, source)
	if err != nil {
		return nil, err
	}

	m := newModule(filename)
	p := newParser(filename, tokens, m)

	if err := p.runImportPass(); err != nil {
		return nil, err
	}
	if err := p.runRulePass(); err != nil {
		return nil, err
	}
	return m, nil
}
