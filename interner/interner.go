// Package interner provides a bidirectional mapping between dotted
// module names and small integer handles.
//
// Every other package in importgraph addresses modules by ID rather
// than by string, so that sets and maps of modules hash and compare
// cheaply. An Interner is not safe for concurrent writes; callers
// that intern names from multiple goroutines must hold their own lock
// around Intern calls.
package interner

// ID is an opaque handle for an interned module name. The zero value
// is never issued by Intern and is reserved to mean "no module".
type ID int32

// Interner interns dotted module names into stable, dense IDs.
type Interner struct {
	names []string
	ids   map[string]ID
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{ids: make(map[string]ID)}
}

// Intern returns the ID for name, allocating a new one if name has
// not been seen before. Intern is idempotent: interning the same
// name twice returns the same ID.
func (in *Interner) Intern(name string) ID {
	if id, ok := in.ids[name]; ok {
		return id
	}
	in.names = append(in.names, name)
	id := ID(len(in.names))
	in.ids[name] = id
	return id
}

// Lookup returns the ID already assigned to name, if any.
func (in *Interner) Lookup(name string) (ID, bool) {
	id, ok := in.ids[name]
	return id, ok
}

// Resolve returns the dotted name for id. It panics if id was never
// issued by this Interner, since that indicates a programming error
// in a caller mixing IDs across Interner instances.
func (in *Interner) Resolve(id ID) string {
	if id <= 0 || int(id) > len(in.names) {
		panic("interner: resolve of unknown id")
	}
	return in.names[id-1]
}

// Len returns the number of distinct names interned so far.
func (in *Interner) Len() int {
	return len(in.names)
}
