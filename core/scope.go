package core

// ParentFunc reports the parent of a scope, or nil when the scope is a root
// of the forest. It is supplied by the external loading system that owns the
// scopes; the registry never inspects scope contents beyond this relation.
//
// The function must be safe for concurrent use and must terminate: every
// parent chain has to reach nil after finitely many steps.
type ParentFunc[S any] func(*S) *S

// Visible reports whether a record owned by owner may be seen by requester.
//
// A nil owner marks the universal scope; its records are visible everywhere.
// Otherwise the requester's parent chain (requester, parent, grandparent, …)
// is walked and owner matches on pointer identity. Sibling scopes and
// descendants of the requester are never visible — directionality matters.
//
// A nil requester (a root asking) therefore sees only universal records. A
// nil parent func degrades gracefully to a flat forest: only the requester
// itself and the universal scope match.
func Visible[S any](parent ParentFunc[S], requester, owner *S) bool {
	if owner == nil {
		return true
	}
	for s := requester; s != nil; {
		if s == owner {
			return true
		}
		if parent == nil {
			return false
		}
		s = parent(s)
	}
	return false
}
