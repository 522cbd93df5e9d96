package mdtree

import "testing"

func TestKindNamesRoundTrip(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != int(kindCount) {
		t.Fatalf("expected %d kinds, got %d", kindCount, len(kinds))
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		name := k.String()
		if name == "" || name == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
		if seen[name] {
			t.Fatalf("duplicate kind name %q", name)
		}
		seen[name] = true
		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Fatalf("ParseKind(%q)=%v,%v want %v", name, got, ok, k)
		}
	}
	if Kind(200).String() != "unknown" {
		t.Fatalf("expected unknown name for out-of-range kind")
	}
	if _, ok := ParseKind("nope"); ok {
		t.Fatalf("unexpected kind for unknown name")
	}
}

func TestEveryKindHasBuiltin(t *testing.T) {
	funcs := builtins[*testNode]()
	for _, k := range Kinds() {
		if funcs[k] == nil {
			t.Fatalf("no built-in renderer for %s", k)
		}
	}
}

func TestAttrsGet(t *testing.T) {
	attrs := Attrs{{Name: "href", Value: "/x"}, {Name: "disabled", Value: ""}}
	if v, ok := attrs.Get("href"); !ok || v != "/x" {
		t.Fatalf("href=%q,%v", v, ok)
	}
	if _, ok := attrs.Get("disabled"); !ok {
		t.Fatalf("expected empty attribute to be present")
	}
	if _, ok := attrs.Get("title"); ok {
		t.Fatalf("unexpected title attribute")
	}
}
