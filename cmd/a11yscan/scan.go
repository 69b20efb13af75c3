package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a11yscan/engine/engine"
	"github.com/a11yscan/engine/internal/config"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Analyze a directory of HTML/JS/TS/CSS sources and print findings",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	root := args[0]
	ctx := context.Background()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	fs := engine.NewFileSystem()

	bundle, err := engine.LoadBundle(ctx, fs, root, cfg)
	if err != nil {
		return fmt.Errorf("loading scripts under %s: %w", root, err)
	}

	htmlFiles, err := findHTMLFiles(root)
	if err != nil {
		return fmt.Errorf("finding HTML files under %s: %w", root, err)
	}
	for _, path := range htmlFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		fragment, err := parseHTMLFragment(path, data)
		if err != nil {
			logger.Warn("skipping unparseable HTML file: " + err.Error())
			continue
		}
		bundle.AddFragment(fragment)
	}

	result, err := engine.Run(ctx, bundle, cfg, engine.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out, err := engine.Encode(result, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	if len(result.Findings) > 0 {
		os.Exit(1)
	}
	return nil
}

// findHTMLFiles walks root for .html files, skipping the same
// directories LoadBundle's ScriptFiles matcher skips.
func findHTMLFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "node_modules", "vendor", ".git":
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".html" {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}
