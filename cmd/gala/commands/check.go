package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"martianoff/gala/internal/checker"
	"martianoff/gala/internal/transpiler/module"
)

var (
	checkWorkers      int
	checkWatch        bool
	checkDebugPrintln bool
)

var checkCmd = &cobra.Command{
	Use:   "check <fixture.json...>",
	Short: "Check class fixtures for initialization-safety violations",
	Long: `check loads one or more fixture files, each describing a class template as
JSON (see internal/checker/fixture.go), and reports every initialization-
safety warning found to stdout as file:line:col: message.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(args)
	},
}

func init() {
	checkCmd.Flags().IntVarP(&checkWorkers, "workers", "w", 1, "number of fixtures to check concurrently")
	checkCmd.Flags().BoolVar(&checkWatch, "watch", false, "watch the fixture files and re-run on change")
	checkCmd.Flags().BoolVar(&checkDebugPrintln, "debug-println", false, "trace latent-force and recursion-guard decisions to stderr")
}

func runCheck(paths []string) error {
	if err := checkOnce(paths); err != nil {
		return err
	}
	if !checkWatch {
		return nil
	}
	return watchAndRecheck(paths)
}

// expandFixturePaths resolves each argument into one or more fixture file
// paths: a file is passed through as-is, a directory is globbed for
// "*.json". An argument that doesn't exist relative to cwd is retried
// relative to the module root found by module.FindModuleRoot, so "gala check fixtures/case1.json" works the
// same run from the repo root or from a package subdirectory.
func expandFixturePaths(args []string) ([]string, error) {
	moduleRoot, _ := module.FindModuleRoot(".")
	var out []string
	for _, p := range args {
		resolved := p
		info, err := os.Stat(resolved)
		if err != nil && moduleRoot != "" && !filepath.IsAbs(p) {
			resolved = filepath.Join(moduleRoot, p)
			info, err = os.Stat(resolved)
		}
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, resolved)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(resolved, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", resolved, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func checkOnce(args []string) error {
	paths, err := expandFixturePaths(args)
	if err != nil {
		return err
	}
	templates := make([]*checker.ClassTemplate, 0, len(paths))
	pathByIndex := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		tmpl, err := checker.LoadFixture(data)
		if err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
		templates = append(templates, tmpl)
		pathByIndex = append(pathByIndex, p)
	}

	if len(templates) == 1 {
		c := checker.NewChecker()
		if checkDebugPrintln {
			c.SetDebug(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, "[gala check] "+format+"\n", args...)
			})
		}
		effects := c.CheckClass(templates[0])
		printDiagnostics(pathByIndex[0], checker.Render(effects, checker.DefaultCatalog))
		return nil
	}

	results := checker.RunPool(templates, checker.DefaultCatalog, checkWorkers)
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", pathByIndex[i], res.Err)
			continue
		}
		printDiagnostics(pathByIndex[i], res.Diagnostics)
	}
	return nil
}

func printDiagnostics(path string, diags []checker.Diagnostic) {
	for _, d := range diags {
		fmt.Printf("%s:%d:%d: %s\n", path, d.Pos.Line, d.Pos.Column, d.Message)
	}
}

// watchAndRecheck re-runs checkOnce whenever one of the watched fixture
// files (or the directories containing them, to catch editor rename/write
// sequences) changes, printing a divider between runs. Grounded on
// SeleniaProject-Orizon's watch_fsnotify.go: an fsnotify.Watcher feeding a
// single event-dispatch loop.
func watchAndRecheck(paths []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close()

	files, err := expandFixturePaths(paths)
	if err != nil {
		return err
	}
	dirs := make(map[string]struct{})
	for _, p := range files {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Println("---")
			if err := checkOnce(paths); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		}
	}
}
