package emit

import (
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	c := testCatalog(t)
	dot := ToDOT(c)

	if !strings.HasPrefix(dot, "digraph patterns {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("ToDOT() not a well-formed digraph:\n%s", dot)
	}
	if !strings.Contains(dot, `"behavioral/observer" [label="Observer"];`) {
		t.Errorf("ToDOT() missing labeled node:\n%s", dot)
	}
	if !strings.Contains(dot, `"behavioral/observer" -> "behavioral/mediator" [style=dashed];`) {
		t.Errorf("ToDOT() missing dashed related edge:\n%s", dot)
	}

	// Nodes come out sorted by ID.
	med := strings.Index(dot, `"behavioral/mediator" [label=`)
	obs := strings.Index(dot, `"behavioral/observer" [label=`)
	if med < 0 || obs < 0 || med > obs {
		t.Errorf("ToDOT() node order not sorted:\n%s", dot)
	}
}

func TestToDOTStable(t *testing.T) {
	c := testCatalog(t)
	if ToDOT(c) != ToDOT(c) {
		t.Error("ToDOT() output differs between identical calls")
	}
}
