package sky

// ScopeID addresses a scope inside a ScopeArena.
type ScopeID int

// NoScope is the parent of the global scope.
const NoScope ScopeID = -1

// Scope is a named lexical environment. Parent is an arena index,
// never a pointer, so the scope tree is navigational only.
type Scope struct {
	Name   string
	Parent ScopeID
}

// ScopeArena records every scope a parse creates. Scopes are never
// removed from the arena; leaving a scope only pops the parser's
// stack, so later stages can still walk the full lexical tree.
type ScopeArena struct {
	scopes []Scope
}

func NewScopeArena() *ScopeArena {
	return &ScopeArena{}
}

// New records a scope and returns its id.
func (a *ScopeArena) New(name string, parent ScopeID) ScopeID {
	a.scopes = append(a.scopes, Scope{Name: name, Parent: parent})
	return ScopeID(len(a.scopes) - 1)
}

func (a *ScopeArena) Get(id ScopeID) Scope {
	return a.scopes[id]
}

func (a *ScopeArena) Len() int {
	return len(a.scopes)
}
