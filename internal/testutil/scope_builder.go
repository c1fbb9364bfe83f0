package testutil

import (
	"github.com/hupe1980/manipreg/scope"
)

// Chain builds a straight parent chain from the given names, root first, and
// returns the scopes in the same order. Example:
//
//	chain := testutil.Chain("root", "lib", "app") // chain[2] is the leaf
func Chain(names ...string) []*scope.Scope {
	out := make([]*scope.Scope, 0, len(names))
	var cur *scope.Scope
	for _, name := range names {
		if cur == nil {
			cur = scope.New(name)
		} else {
			cur = cur.NewChild(name)
		}
		out = append(out, cur)
	}
	return out
}

// ForestFixture groups named chains sharing one root, indexed by scope name.
// Example:
//
//	f := testutil.Forest("root", [][]string{{"libA", "appA"}, {"libB"}})
//	f.Root, f.Leaves["appA"], f.Leaves["libB"]
type ForestFixture struct {
	Root   *scope.Scope
	Leaves map[string]*scope.Scope
}

// Forest builds a root plus one descending chain per branch and indexes every
// created scope by name in Leaves.
func Forest(root string, branches [][]string) *ForestFixture {
	f := &ForestFixture{Root: scope.New(root), Leaves: map[string]*scope.Scope{}}
	for _, branch := range branches {
		cur := f.Root
		for _, name := range branch {
			cur = cur.NewChild(name)
			f.Leaves[name] = cur
		}
	}
	return f
}
