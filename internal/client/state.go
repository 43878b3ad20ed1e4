package client

import "slices"

// State records which server names each client document enables. It is a
// value computed once per operation by Snapshot and passed along explicitly,
// so it stays valid after documents are rebuilt.
type State struct {
	names map[Kind][]string
}

// Snapshot captures the enabled names of each document.
func Snapshot(docs ...*Document) State {
	s := State{names: make(map[Kind][]string, len(docs))}
	for _, d := range docs {
		if d == nil {
			continue
		}
		s.names[d.Kind] = d.Names()
	}
	return s
}

// Names returns the names enabled in kind, in document order.
func (s State) Names(kind Kind) []string {
	return slices.Clone(s.names[kind])
}

// Enabled reports whether name is present in kind's document.
func (s State) Enabled(kind Kind, name string) bool {
	return slices.Contains(s.names[kind], name)
}
