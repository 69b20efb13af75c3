// Package engine orchestrates one analysis run: it assembles the
// per-file action models, DOM fragments, and CSS models a caller
// supplies into the shared DocumentModel, runs the rule registry over
// it, and returns the resulting findings. Concrete HTML/CSS parsing
// remains an external collaborator's job (spec treats those parsers
// as out of scope); JavaScript/TypeScript sources are accepted as raw
// bytes because the engine already owns the tree-sitter -> Action IR
// step end to end, the way the teacher's AnalyzeSourceCode owns
// parsing its own source bytes rather than taking a pre-built tree.
package engine

import (
	"github.com/a11yscan/engine/cssmodel"
	"github.com/a11yscan/engine/domtree"
)

// ScriptSource is one JavaScript/TypeScript file awaiting transform.
type ScriptSource struct {
	File string
	Src  []byte
	// ContentHash is a highwayhash digest of Src, populated by
	// LoadBundle so a caller-side cache can key off it without the
	// engine computing it twice.
	ContentHash uint64
}

// SourceBundle is everything one analysis run needs: already-parsed
// DOM fragments and CSS models (built by an external HTML/CSS parser)
// plus the raw script sources the engine transforms itself.
type SourceBundle struct {
	Scripts   []ScriptSource
	Fragments []*domtree.Fragment
	Styles    []*cssmodel.Model
}

// NewSourceBundle returns an empty bundle ready for population via
// AddScript/AddFragment/AddStyle or direct field assignment.
func NewSourceBundle() *SourceBundle {
	return &SourceBundle{}
}

func (b *SourceBundle) AddScript(s ScriptSource) {
	b.Scripts = append(b.Scripts, s)
}

func (b *SourceBundle) AddFragment(f *domtree.Fragment) {
	b.Fragments = append(b.Fragments, f)
}

func (b *SourceBundle) AddStyle(m *cssmodel.Model) {
	b.Styles = append(b.Styles, m)
}
