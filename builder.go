package vcgc

import "fmt"

// RuleBuilder incrementally assembles a rule body into a HierarchicalNode
// tree as the parser drives it through a small event contract. It holds
// two stacks and one flag:
//
//   - choiceStack: group nodes currently open, pushed on '(' / '[' and
//     popped on the matching close.
//   - chainStack: nodes still extendable by a new Next link. Its top is
//     "the most recent node" for quantifier application.
//   - addToChoiceAsChild: when true, the next emitted node attaches as
//     a child-alternative of the choice-stack top; when false, it
//     attaches via Next of the chain-stack top.
//
// A dummy root node is pushed onto chainStack at construction so Next
// attachment is always well-defined; Finish returns dummy.Next and
// marks the dummy consumed.
type RuleBuilder struct {
	ruleName string

	choiceStack []*HierarchicalNode
	chainStack  []*HierarchicalNode

	addToChoiceAsChild bool

	dummy    *HierarchicalNode
	finished bool
	callback string
}

// NewRuleBuilder starts a new builder for the named rule.
func NewRuleBuilder(ruleName string) *RuleBuilder {
	dummy := &HierarchicalNode{Value: "(dummy)", MinRepeat: 1, MaxRepeat: 1}
	b := &RuleBuilder{ruleName: ruleName, dummy: dummy}
	b.chainStack = append(b.chainStack, dummy)
	return b
}

// SetCallback records the @ident rule-callback name captured after the
// rule header, if any.
func (b *RuleBuilder) SetCallback(name string) {
	b.callback = name
}

// Callback returns the recorded callback name, or "" if none.
func (b *RuleBuilder) Callback() string {
	return b.callback
}

func (b *RuleBuilder) chainTop() (*HierarchicalNode, bool) {
	if len(b.chainStack) == 0 {
		return nil, false
	}
	return b.chainStack[len(b.chainStack)-1], true
}

func (b *RuleBuilder) popChain() {
	if len(b.chainStack) > 0 {
		b.chainStack = b.chainStack[:len(b.chainStack)-1]
	}
}

func (b *RuleBuilder) pushChain(n *HierarchicalNode) {
	b.chainStack = append(b.chainStack, n)
}

func (b *RuleBuilder) choiceTop() (*HierarchicalNode, bool) {
	if len(b.choiceStack) == 0 {
		return nil, false
	}
	return b.choiceStack[len(b.choiceStack)-1], true
}

// attach wires a freshly created node into the tree according to the
// current addToChoiceAsChild flag, then clears the flag.
func (b *RuleBuilder) attach(n *HierarchicalNode) error {
	if b.addToChoiceAsChild {
		top, ok := b.choiceTop()
		if !ok {
			return fmt.Errorf("rule %s: no open group to add alternative to", b.ruleName)
		}
		top.Children = append(top.Children, n)
	} else {
		top, ok := b.chainTop()
		if !ok {
			return fmt.Errorf("rule %s: chain stack unexpectedly empty", b.ruleName)
		}
		top.Next = n
	}
	b.addToChoiceAsChild = false
	return nil
}

// AddWord attaches a leaf node carrying a consumed word or quoted
// string. Per the event contract: attach, pop the now-unreachable chain
// top, push the new node.
func (b *RuleBuilder) AddWord(text string) error {
	return b.addLeaf(text)
}

// AddVariable attaches a leaf node carrying a $variable reference. The
// leaf carries the identifier text itself; resolving it against another
// rule is out of scope.
func (b *RuleBuilder) AddVariable(name string) error {
	return b.addLeaf(name)
}

func (b *RuleBuilder) addLeaf(text string) error {
	leaf := NewLeaf(text)
	if err := b.attach(leaf); err != nil {
		return err
	}
	b.popChain()
	b.pushChain(leaf)
	return nil
}

// StartGroup opens a "(" group: create a group node, attach it per the
// current flag, push it onto choiceStack, set the flag so the first
// alternative becomes a child, and pop the chain top (it is no longer
// reachable while the group is open).
func (b *RuleBuilder) StartGroup() error {
	return b.startChoice()
}

// StartOptional opens a "[" optional block. It behaves exactly like
// StartGroup; the (0,1) range is applied at EndOptional. (The spec flags
// this as a known ambiguity in the source it was distilled from — an
// aliasing TODO that never got finished — and gives the intended
// behavior directly.)
func (b *RuleBuilder) StartOptional() error {
	return b.startChoice()
}

func (b *RuleBuilder) startChoice() error {
	group := NewGroup()
	if err := b.attach(group); err != nil {
		return err
	}
	b.choiceStack = append(b.choiceStack, group)
	b.addToChoiceAsChild = true
	b.popChain()
	return nil
}

// OnPipe closes the current alternative within an open group: pop the
// chain top, then set the flag so the next emitted node starts a new
// alternative as a child of the current group.
func (b *RuleBuilder) OnPipe() error {
	if _, ok := b.choiceTop(); !ok {
		return fmt.Errorf("rule %s: '|' outside any open group", b.ruleName)
	}
	b.popChain()
	b.addToChoiceAsChild = true
	return nil
}

// EndGroup closes a "(" group: pop the chain top if any, pop the
// group off choiceStack, and push that group onto chainStack so it may
// carry a quantifier and be extended by a subsequent Next.
func (b *RuleBuilder) EndGroup() error {
	return b.endChoice(false)
}

// EndOptional closes a "[" block the same way as EndGroup, additionally
// setting the (0,1) repeat range on the closed group.
func (b *RuleBuilder) EndOptional() error {
	return b.endChoice(true)
}

func (b *RuleBuilder) endChoice(optional bool) error {
	group, ok := b.choiceTop()
	if !ok {
		return fmt.Errorf("rule %s: unmatched closing bracket", b.ruleName)
	}
	if len(b.chainStack) > 0 {
		b.popChain()
	}
	b.choiceStack = b.choiceStack[:len(b.choiceStack)-1]
	b.pushChain(group)
	if optional {
		if err := group.SetOptional(); err != nil {
			return err
		}
	}
	return nil
}

// SetRange applies a repeat quantifier to the chain-stack top — the
// most recently emitted or closed node.
func (b *RuleBuilder) SetRange(min, max int) error {
	top, ok := b.chainTop()
	if !ok {
		return fmt.Errorf("rule %s: no node to apply repeat quantifier to", b.ruleName)
	}
	if top == b.dummy {
		return fmt.Errorf("rule %s: repeat quantifier before any element", b.ruleName)
	}
	return top.SetRange(min, max)
}

// Finish releases builder ownership and returns the root of the
// assembled tree (dummy.Next — the first real node, possibly nil for an
// empty rule body). Finish must be called at most once.
func (b *RuleBuilder) Finish() (*HierarchicalNode, error) {
	if b.finished {
		return nil, fmt.Errorf("rule %s: builder already finished", b.ruleName)
	}
	b.finished = true
	return b.dummy.Next, nil
}
