package directive

import "testing"

func TestSortCanonicalOrdersByFixedPrecedence(t *testing.T) {
	ds := []Directive{
		&Strip{},
		mustAttrs(t, "{}"),
		mustIf(t, "true"),
		&Otherwise{},
	}
	SortCanonical(ds)
	var names []string
	for _, d := range ds {
		names = append(names, d.DirectiveName())
	}
	want := []string{"if", "otherwise", "attrs", "strip"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("position %d: got %q, want %q (full order %v)", i, names[i], n, names)
			break
		}
	}
}

func mustAttrs(t *testing.T, src string) Directive {
	t.Helper()
	a, err := NewAttrs(src, "test", 1)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func mustIf(t *testing.T, src string) Directive {
	t.Helper()
	d, err := NewIf(src, "test", 1)
	if err != nil {
		t.Fatal(err)
	}
	return d
}
