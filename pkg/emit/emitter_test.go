package emit

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestEmitWritesTree(t *testing.T) {
	root := t.TempDir()
	c := testCatalog(t)

	if err := New(root, Options{}).Emit(context.Background(), c, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	wantFiles := []string{
		FileCatalogIndex,
		FileGraphIndex,
		FileLanguageIndex,
		filepath.Join(DirArticles, "behavioral", "observer.md"),
		filepath.Join(DirArticles, "behavioral", "mediator.md"),
		filepath.Join(DirArticles, "structural", "adapter.md"),
	}
	for _, rel := range wantFiles {
		if _, err := os.Stat(filepath.Join(root, rel)); err != nil {
			t.Errorf("expected output file %s: %v", rel, err)
		}
	}

	// Graph exports are opt-in.
	if _, err := os.Stat(filepath.Join(root, FileGraphDOT)); err == nil {
		t.Error("graph.dot written without the option set")
	}
}

func TestEmitGraphDOT(t *testing.T) {
	root := t.TempDir()
	c := testCatalog(t)

	if err := New(root, Options{GraphDOT: true}).Emit(context.Background(), c, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, FileGraphDOT))
	if err != nil {
		t.Fatalf("read graph.dot: %v", err)
	}
	if string(data) != ToDOT(c) {
		t.Error("graph.dot content differs from ToDOT output")
	}
}

func TestEmitDeterministic(t *testing.T) {
	c := testCatalog(t)

	readTree := func(root string) map[string]string {
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

	first, second := t.TempDir(), t.TempDir()
	if err := New(first, Options{GraphDOT: true}).Emit(context.Background(), c, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	if err := New(second, Options{GraphDOT: true}).Emit(context.Background(), c, nil); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}

	a, b := readTree(first), readTree(second)
	if len(a) != len(b) {
		t.Fatalf("tree sizes differ: %d vs %d", len(a), len(b))
	}
	for rel, content := range a {
		if b[rel] != content {
			t.Errorf("file %s differs between identical runs", rel)
		}
	}
}

func TestEmitCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(t.TempDir(), Options{}).Emit(ctx, testCatalog(t), nil)
	if err == nil {
		t.Fatal("Emit() error = nil with cancelled context, want error")
	}
}
