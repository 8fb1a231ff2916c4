package docs

import (
	"reflect"
	"sort"
	"testing"
)

func TestCategoryFromPath(t *testing.T) {
	tests := []struct {
		name string
		rel  string
		want Category
	}{
		{"behavioral", "behavioral/observer.md", CategoryBehavioral},
		{"british spelling", "behavioural/visitor.md", CategoryBehavioral},
		{"structural", "structural/adapter.md", CategoryStructural},
		{"creational nested", "creational/factories/abstract-factory.md", CategoryCreational},
		{"functional alias", "fp/monad.md", CategoryFunctional},
		{"performance alias", "perf/object-pool.md", CategoryPerformance},
		{"testing alias", "tests/test-double.md", CategoryTesting},
		{"case insensitive", "Behavioral/Observer.md", CategoryBehavioral},
		{"unknown segment", "misc/notes.md", CategoryOther},
		{"file under root", "readme.md", CategoryOther},
		{"windows separators", `concurrency\actor.md`, CategoryConcurrency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryFromPath(tt.rel); got != tt.want {
				t.Errorf("CategoryFromPath(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestIDFromPath(t *testing.T) {
	tests := []struct {
		rel  string
		want string
	}{
		{"behavioral/Observer.md", "behavioral/observer"},
		{"structural/abstract-factory.md", "structural/abstract-factory"},
		{"README.md", "readme"},
		{`concurrency\Actor.md`, "concurrency/actor"},
		{"functional/monad.markdown", "functional/monad"},
	}

	for _, tt := range tests {
		if got := IDFromPath(tt.rel); got != tt.want {
			t.Errorf("IDFromPath(%q) = %q, want %q", tt.rel, got, tt.want)
		}
	}
}

func TestSourceFilesSort(t *testing.T) {
	files := SourceFiles{
		{Rel: "structural/adapter.md"},
		{Rel: "behavioral/visitor.md"},
		{Rel: "behavioral/observer.md"},
	}

	sort.Sort(files)

	want := []string{
		"behavioral/observer.md",
		"behavioral/visitor.md",
		"structural/adapter.md",
	}
	for i, rel := range want {
		if files[i].Rel != rel {
			t.Errorf("files[%d].Rel = %q, want %q", i, files[i].Rel, rel)
		}
	}
}

func TestArticleLanguages(t *testing.T) {
	a := &Article{
		Code: []CodeBlock{
			{Language: LangGo},
			{Language: LangRust},
			{Language: LangGo},
			{Language: LangText},
		},
	}

	got := a.Languages()
	want := []Language{LangGo, LangRust, LangText}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Languages() = %v, want %v", got, want)
	}
}

func TestArticleRelatedTargets(t *testing.T) {
	a := &Article{
		Refs: []OutgoingRef{
			{Kind: RefRelated, Target: "Observer"},
			{Kind: RefExternal, Target: "https://example.com"},
			{Kind: RefRelated, Target: "Mediator"},
			{Kind: RefArticle, Target: "../structural/adapter.md"},
		},
	}

	got := a.RelatedTargets()
	want := []string{"Observer", "Mediator"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RelatedTargets() = %v, want %v", got, want)
	}
}
