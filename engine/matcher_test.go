package engine

import "testing"

func TestRelPathStripsSchemeFromBothSides(t *testing.T) {
	got := relPath("file:///workspace/app", "file:///workspace/app/src/widget.tsx")
	if got != "src/widget.tsx" {
		t.Fatalf("relPath = %q, want src/widget.tsx", got)
	}
}

func TestRelPathPlainPaths(t *testing.T) {
	got := relPath("/workspace/app", "/workspace/app/src/widget.tsx")
	if got != "src/widget.tsx" {
		t.Fatalf("relPath = %q, want src/widget.tsx", got)
	}
}

func TestRelPathFallsBackWhenNotUnderRoot(t *testing.T) {
	got := relPath("/workspace/app", "/other/widget.tsx")
	if got != "/other/widget.tsx" {
		t.Fatalf("relPath = %q, want unchanged fallback", got)
	}
}

func TestMatchesGlobsIncludeExclude(t *testing.T) {
	includes := []string{"**/*.tsx"}
	excludes := []string{"**/node_modules/**"}

	if !matchesGlobs("src/widget.tsx", includes, excludes) {
		t.Fatal("expected src/widget.tsx to match includes")
	}
	if matchesGlobs("src/widget.js", includes, excludes) {
		t.Fatal("expected src/widget.js to be rejected, no matching include")
	}
	if matchesGlobs("node_modules/dep/widget.tsx", includes, excludes) {
		t.Fatal("expected excluded path to be rejected despite matching include")
	}
}
