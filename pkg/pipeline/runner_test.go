package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/patternhq/patlas/pkg/docs"
)

func writeTree(t *testing.T, tree map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return root
}

func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			return rerr
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

const observerDoc = `# Observer Pattern

Decouples a subject from its listeners.

## Example

` + "```go" + `
type Subject struct{}
` + "```" + `
`

func TestExecuteMinimalCorpus(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/observer.md": observerDoc,
	})
	output := t.TempDir()

	result, err := NewRunner(nil).Execute(context.Background(), Options{
		SourceRoot: source,
		OutputRoot: output,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID empty")
	}
	if result.Stats.FileCount != 1 || result.Stats.ArticleCount != 1 {
		t.Errorf("Stats = %+v, want one file and one article", result.Stats)
	}

	a, ok := result.Catalog.Article("behavioral/observer")
	if !ok {
		t.Fatal("catalog missing behavioral/observer")
	}
	if a.Title != "Observer Pattern" {
		t.Errorf("Title = %q, want Observer Pattern", a.Title)
	}
	if a.Category != docs.CategoryBehavioral {
		t.Errorf("Category = %v, want behavioral", a.Category)
	}
	if len(a.Code) != 1 || a.Code[0].Language != docs.LangGo {
		t.Errorf("Code = %v, want one go block", a.Code)
	}

	if result.Diagnostics.HasErrors(false) {
		t.Errorf("Diagnostics = %v, want no errors", result.Diagnostics)
	}

	langIndex, err := os.ReadFile(filepath.Join(output, "languages.json"))
	if err != nil {
		t.Fatalf("read languages.json: %v", err)
	}
	if !strings.Contains(string(langIndex), `"go"`) || !strings.Contains(string(langIndex), "behavioral/observer") {
		t.Errorf("languages.json = %s, want go facet listing the article", langIndex)
	}
}

func TestExecuteCrossReference(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/state.md":    "# State\n\nBody.\n\n## Related Patterns\n\n- Strategy\n",
		"behavioral/strategy.md": "# Strategy\n\nBody.\n\n## Related Patterns\n\n- State\n",
	})

	result, err := NewRunner(nil).Validate(context.Background(), Options{SourceRoot: source})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	edges := result.Catalog.Graph().Edges()
	if len(edges) != 2 {
		t.Fatalf("Edges() = %v, want 2 related edges", edges)
	}
	if edges[0].From != "behavioral/state" || edges[0].To != "behavioral/strategy" {
		t.Errorf("edges[0] = %+v, want state -> strategy", edges[0])
	}
	if edges[1].From != "behavioral/strategy" || edges[1].To != "behavioral/state" {
		t.Errorf("edges[1] = %+v, want strategy -> state", edges[1])
	}

	for _, d := range result.Diagnostics {
		if strings.Contains(d.Message, "unresolved related") {
			t.Errorf("unexpected unresolved warning: %v", d)
		}
	}
}

func TestExecuteUnresolvedRelated(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/a.md": "# A\n\nBody.\n\n## Related Patterns\n\n- Nonexistent Pattern\n",
	})

	result, err := NewRunner(nil).Validate(context.Background(), Options{SourceRoot: source})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	var warnings docs.Diagnostics
	for _, d := range result.Diagnostics {
		if d.Severity == docs.SeverityWarning && strings.Contains(d.Message, "unresolved related") {
			warnings = append(warnings, d)
		}
	}
	if len(warnings) != 1 {
		t.Fatalf("unresolved warnings = %v, want exactly one", warnings)
	}
	if warnings[0].ArticleID != "behavioral/a" {
		t.Errorf("warning article = %q, want behavioral/a", warnings[0].ArticleID)
	}

	if ExitCode(result, false) != 0 {
		t.Errorf("ExitCode(strict=false) = %d, want 0 for warnings", ExitCode(result, false))
	}
	if ExitCode(result, true) != 2 {
		t.Errorf("ExitCode(strict=true) = %d, want 2", ExitCode(result, true))
	}
}

func TestExecuteDuplicateIDs(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/observer.md": "# Observer\n\nBody.\n",
		"behavioral/Observer.md": "# Observer Again\n\nBody.\n",
	})
	if _, err := os.Stat(filepath.Join(source, "behavioral", "Observer.md")); err != nil {
		t.Skip("filesystem is case-insensitive")
	}
	entries, err := os.ReadDir(filepath.Join(source, "behavioral"))
	if err != nil || len(entries) != 2 {
		t.Skip("filesystem is case-insensitive")
	}

	result, err := NewRunner(nil).Validate(context.Background(), Options{SourceRoot: source})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	var dups int
	for _, d := range result.Diagnostics {
		if d.Severity == docs.SeverityError && strings.Contains(d.Message, "duplicate") {
			dups++
		}
	}
	if dups != 1 {
		t.Errorf("duplicate errors = %d, want exactly 1", dups)
	}
	if result.Catalog.Len() != 1 {
		t.Errorf("Len() = %d, want 1 surviving article", result.Catalog.Len())
	}
	if ExitCode(result, false) != 2 {
		t.Errorf("ExitCode() = %d, want 2 for error diagnostics", ExitCode(result, false))
	}
}

func TestExecuteWorkersTransparent(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/observer.md": observerDoc,
		"behavioral/state.md":    "# State\n\nBody.\n\n## Related Patterns\n\n- Strategy\n",
		"behavioral/strategy.md": "# Strategy\n\nBody.\n\n## Related Patterns\n\n- State\n",
		"structural/adapter.md":  "# Adapter\n\nBody.\n\n## Example\n\n```rust\nfn main() {}\n```\n",
		"functional/monad.md":    "# Monad\n\nBody.\n\n```haskell\npure\n```\n",
		"other/notes.md":         "Prose without a heading.\n",
	})

	serialOut, parallelOut := t.TempDir(), t.TempDir()

	runner := NewRunner(nil)
	serial, err := runner.Execute(context.Background(), Options{
		SourceRoot: source, OutputRoot: serialOut, Workers: 1,
	})
	if err != nil {
		t.Fatalf("serial Execute() error = %v", err)
	}
	parallel, err := runner.Execute(context.Background(), Options{
		SourceRoot: source, OutputRoot: parallelOut, Workers: 4,
	})
	if err != nil {
		t.Fatalf("parallel Execute() error = %v", err)
	}

	if len(serial.Diagnostics) != len(parallel.Diagnostics) {
		t.Fatalf("diagnostic counts differ: %d vs %d", len(serial.Diagnostics), len(parallel.Diagnostics))
	}
	for i := range serial.Diagnostics {
		if serial.Diagnostics[i] != parallel.Diagnostics[i] {
			t.Errorf("diagnostic %d differs: %v vs %v", i, serial.Diagnostics[i], parallel.Diagnostics[i])
		}
	}

	a, b := readTree(t, serialOut), readTree(t, parallelOut)
	if len(a) != len(b) {
		t.Fatalf("output tree sizes differ: %d vs %d", len(a), len(b))
	}
	for rel, content := range a {
		if b[rel] != content {
			t.Errorf("output file %s differs between worker counts", rel)
		}
	}
}

func TestExecuteTwiceIdentical(t *testing.T) {
	source := writeTree(t, map[string]string{
		"behavioral/observer.md": observerDoc,
		"structural/adapter.md":  "# Adapter\n\nBody.\n",
	})
	first, second := t.TempDir(), t.TempDir()

	runner := NewRunner(nil)
	for _, out := range []string{first, second} {
		if _, err := runner.Execute(context.Background(), Options{SourceRoot: source, OutputRoot: out}); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}

	a, b := readTree(t, first), readTree(t, second)
	for rel, content := range a {
		if b[rel] != content {
			t.Errorf("output file %s differs between identical runs", rel)
		}
	}
}

func TestExecuteMissingRoot(t *testing.T) {
	_, err := NewRunner(nil).Execute(context.Background(), Options{
		SourceRoot: filepath.Join(t.TempDir(), "nope"),
		OutputRoot: t.TempDir(),
	})
	if err == nil {
		t.Fatal("Execute() error = nil, want missing-root failure")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options validated, want source-root error")
	}

	opts = Options{SourceRoot: "docs"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("missing output root validated for a build run")
	}

	opts = Options{SourceRoot: "docs", ValidateOnly: true, Workers: 500}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error = %v", err)
	}
	if opts.Workers != MaxWorkers {
		t.Errorf("Workers = %d, want clamped to %d", opts.Workers, MaxWorkers)
	}
	if opts.MaxRelatedChain == 0 {
		t.Error("MaxRelatedChain not defaulted")
	}
}

func TestRunIDUniquePerRun(t *testing.T) {
	source := writeTree(t, map[string]string{"a.md": "# A\n\nBody.\n"})

	runner := NewRunner(nil)
	r1, err := runner.Validate(context.Background(), Options{SourceRoot: source})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	r2, err := runner.Validate(context.Background(), Options{SourceRoot: source})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if r1.RunID == r2.RunID {
		t.Error("RunID repeated across runs")
	}
}
