package kconfig

// MenuNode is one entry in the menu tree. Not every node carries a prompt:
// "if FOO" / "menu \"...\"" wrapper nodes exist purely to scope dependencies
// over their children and have no symbol of their own.
type MenuNode struct {
	Sym      *Symbol // nil for prompt-less wrapper nodes
	Prompt   string
	Dep      *Expr // the visibility dependency accumulated down the tree
	Parent   *MenuNode
	Children []*MenuNode
}

// HasPrompt reports whether the node itself is directly selectable — a
// wrapper node (no symbol, no prompt text) never is.
func (m *MenuNode) HasPrompt() bool {
	return m.Sym != nil && m.Prompt != ""
}

// Menus walks the tree in pre-order and returns every node below m (the
// walk follows the menu tree, not a flat symbol table).
//
// Prompt-less wrapper nodes are not skipped: the walk still recurses into
// their children, so a prompt-bearing descendant nested under several
// layers of prompt-less "if" scoping is visited. Those descendants are not
// moved to the top level — they keep the depth-first position their
// nesting gives them. The wrapper nodes themselves are returned too;
// callers that want only directly-promptable symbols must filter on
// HasPrompt() themselves.
func (m *MenuNode) Menus() []*MenuNode {
	var out []*MenuNode
	var walk func(n *MenuNode)
	walk = func(n *MenuNode) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, c := range m.Children {
		walk(c)
	}
	return out
}

// Visible evaluates the node's accumulated dependency expression against the
// live symbol table, the same check menu_is_visible performs before a prompt
// is offered.
func (m *MenuNode) Visible() bool {
	return m.Dep.Eval() != No
}
