package autoborder

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func parseNode(t *testing.T, src string) *yaml.Node {
	t.Helper()
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if len(doc.Content) == 0 {
		t.Fatalf("empty document")
	}
	return doc.Content[0]
}

func TestUnserialize(t *testing.T) {
	node := parseNode(t, `
id: 12
group: 3
items:
  n: 4526
  cnw: [{id: 4530, chance: 10}, 4531]
  sideways: 17
  e: {id: 4527, chance: -2}
  s: banana
colour: red
`)
	var warnings Warnings
	b := New(0)
	if !b.Unserialize(node, &warnings) {
		t.Fatalf("Unserialize rejected a usable border: %v", warnings)
	}
	if b.ID != 12 || b.Group != 3 {
		t.Fatalf("got id %d group %d", b.ID, b.Group)
	}
	if got := b.Table.Slots[NorthHorizontal]; len(got) != 1 || got[0] != (Weighted{4526, 1}) {
		t.Fatalf("n slot = %v", got)
	}
	cnw := b.Table.Slots[NorthwestCorner]
	if len(cnw) != 2 || cnw[0] != (Weighted{4530, 10}) || cnw[1] != (Weighted{4531, 1}) {
		t.Fatalf("cnw slot = %v", cnw)
	}
	if len(b.Table.Slots[EastHorizontal]) != 0 || len(b.Table.Slots[SouthHorizontal]) != 0 {
		t.Fatalf("invalid entries were stored")
	}

	want := []string{"sideways", "negative chance", "banana", "colour"}
	if len(warnings) != len(want) {
		t.Fatalf("warnings = %q", warnings)
	}
	for _, w := range want {
		found := false
		for _, msg := range warnings {
			if strings.Contains(msg, w) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("no warning mentions %q: %q", w, warnings)
		}
	}
}

func TestUnserializeRejects(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing_id", "group: 1\n"},
		{"bad_id", "id: twelve\n"},
		{"zero_id", "id: 0\n"},
		{"not_a_mapping", "- 1\n- 2\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var warnings Warnings
			if New(0).Unserialize(parseNode(t, c.src), &warnings) {
				t.Fatalf("Unserialize accepted %q", c.src)
			}
			if len(warnings) == 0 {
				t.Fatalf("rejection without a warning")
			}
		})
	}
}

func TestUnserializeNilWarnings(t *testing.T) {
	b := New(0)
	if !b.Unserialize(parseNode(t, "id: 4\nitems: {n: nope}\n"), nil) {
		t.Fatalf("border with only bad items should still load")
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	a := New(1)
	a.Table.Add(int(NorthHorizontal), Weighted{ItemID: 100, Chance: 1})
	if err := c.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(New(1)); !errors.Is(err, ErrDuplicateBorder) {
		t.Fatalf("duplicate Add err = %v", err)
	}
	if err := c.Add(New(2)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Get(1) != a || c.Get(5) != nil {
		t.Fatalf("Get returned the wrong border")
	}
	if id, ok := c.BorderOfItem(100); !ok || id != 1 {
		t.Fatalf("BorderOfItem(100) = %d, %v", id, ok)
	}
	if ids := c.IDs(); len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("IDs = %v", ids)
	}
}
