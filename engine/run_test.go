package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/a11yscan/engine/domtree"
	"github.com/a11yscan/engine/engine"
	"github.com/a11yscan/engine/finding"
)

func TestRunFileScopeTransformsEveryScript(t *testing.T) {
	bundle := engine.NewSourceBundle()
	bundle.AddScript(engine.ScriptSource{
		File: "a.js",
		Src:  []byte(`modal.addEventListener('keydown', function(e) { if (e.key==='Tab') {} });`),
	})
	bundle.AddScript(engine.ScriptSource{
		File: "b.js",
		Src:  []byte(`setInterval(() => tick(), 1000);`),
	})

	cfg := engine.DefaultRunConfig()
	cfg.Scope = finding.ScopeFile

	result, err := engine.Run(context.Background(), bundle, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	require.Empty(t, result.Diagnostics)

	var kinds []finding.Kind
	for _, f := range result.Findings {
		kinds = append(kinds, f.Kind)
		require.Equal(t, result.RunID, f.RunID)
	}
	require.Contains(t, kinds, finding.KindMissingEscapeHandler)
	require.Contains(t, kinds, finding.KindUncontrolledAutoUpdate)
}

func TestRunPageScopeBuildsDocumentModel(t *testing.T) {
	bundle := engine.NewSourceBundle()
	bundle.AddScript(engine.ScriptSource{
		File: "app.js",
		Src:  []byte(`document.getElementById('x').addEventListener('click', function() {});`),
	})

	f := domtree.NewFragment("index.html")
	root := f.AddElement(domtree.NewElement("div", map[string]string{"id": "x", "aria-labelledby": "lbl-x"}), -1)
	f.AddElement(domtree.NewElement("span", map[string]string{"id": "lbl-x"}), root)
	bundle.AddFragment(f)

	cfg := engine.DefaultRunConfig()
	cfg.Scope = finding.ScopePage

	result, err := engine.Run(context.Background(), bundle, cfg)
	require.NoError(t, err)

	var found bool
	for _, fnd := range result.Findings {
		if fnd.Kind == finding.KindMouseOnlyClick {
			found = true
			require.Equal(t, finding.ConfidenceHigh, fnd.Confidence.Level)
		}
	}
	require.True(t, found)
}

func TestRunRespectsDisabledDetectors(t *testing.T) {
	bundle := engine.NewSourceBundle()
	bundle.AddScript(engine.ScriptSource{
		File: "a.js",
		Src:  []byte(`setInterval(() => tick(), 1000);`),
	})
	cfg := engine.DefaultRunConfig()
	cfg.Scope = finding.ScopeFile
	cfg.DisabledKinds = []string{"uncontrolled-auto-update"}

	result, err := engine.Run(context.Background(), bundle, cfg)
	require.NoError(t, err)
	for _, f := range result.Findings {
		require.NotEqual(t, finding.KindUncontrolledAutoUpdate, f.Kind)
	}
}

func TestEncodeRoundTripsJSONAndYAML(t *testing.T) {
	result := &engine.Result{RunID: "r1"}

	jsonCfg := engine.RunConfig{Format: "json"}
	data, err := engine.Encode(result, jsonCfg)
	require.NoError(t, err)
	require.Contains(t, string(data), `"run_id": "r1"`)

	yamlCfg := engine.RunConfig{Format: "yaml"}
	data, err = engine.Encode(result, yamlCfg)
	require.NoError(t, err)
	require.Contains(t, string(data), "run_id: r1")
}
