package interp

// Binding is one name's slot in a scope: its current value, its
// declaration kind, and whether it has been initialized (a `let`/
// `const` read before initialization is a ReferenceError in real JS;
// here Declare always marks the binding initialized, and a read before
// the declaration runs yields an outer binding or undefined, with no
// warning, matching spec.md §4.3's "unknown action kinds do not abort"
// leniency).
type Binding struct {
	Value       Value
	DeclKind    string // "var" | "let" | "const"
	Initialized bool
}

// Scope is one link in the scope chain spec.md §4.3 describes: a
// mapping from name to Binding, with a parent pointer toward the
// enclosing (captured) scope. Scope nodes form a DAG via Captured
// references on Function values, never a cycle (DESIGN NOTES §9).
type Scope struct {
	vars   map[string]*Binding
	parent *Scope
}

// NewScope creates a child scope rooted at parent (nil for a root/
// global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{vars: map[string]*Binding{}, parent: parent}
}

// Declare creates a new binding in this scope, shadowing any binding
// of the same name in an enclosing scope.
func (s *Scope) Declare(name, declKind string, v Value) {
	s.vars[name] = &Binding{Value: v, DeclKind: declKind, Initialized: true}
}

// Lookup walks the scope chain outward and returns the first binding
// found for name.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if b, ok := sc.vars[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Assign writes to the nearest existing binding for name. If none
// exists, it declares an implicit var-kind binding at the root scope,
// matching non-strict JS assignment-creates-global semantics.
func (s *Scope) Assign(name string, v Value) {
	if b, ok := s.Lookup(name); ok {
		b.Value = v
		b.Initialized = true
		return
	}
	root := s
	for root.parent != nil {
		root = root.parent
	}
	root.Declare(name, "var", v)
}
