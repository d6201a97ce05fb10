package dot

import (
	"strings"
	"testing"

	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

func sample(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.New([]symbols.LabeledCrop{
		{Label: symbols.Frac, Box: geometry.NewBox(0, 50, 100, 53)},
		{Label: "2", Box: geometry.NewBox(36, 0, 64, 46)},
		{Label: "1", Box: geometry.NewBox(38, 60, 61, 106)},
		{Label: "x", Box: geometry.NewBox(110, 30, 130, 60)},
	})
	for _, e := range []struct {
		from, to int
		rel      relation.Relation
	}{
		{0, 1, relation.Up},
		{0, 2, relation.Down},
		{0, 3, relation.None},
	} {
		if err := tr.AddConnection(e.from, e.to, e.rel); err != nil {
			t.Fatal(err)
		}
	}
	return tr
}

func TestToDOT(t *testing.T) {
	src := ToDOT(sample(t), Options{})

	for _, want := range []string{
		"digraph G {",
		`n0 [label="\\frac", penwidth=2];`,
		`n1 [label="2"];`,
		`n0 -> n1 [label="up"];`,
		`n0 -> n2 [label="down"];`,
		`n0 -> n3 [label="none", style=dashed];`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, src)
		}
	}
	if strings.Contains(src, "inverse") {
		t.Error("ToDOT() rendered inverse relations")
	}
}

func TestToDOTDetailed(t *testing.T) {
	src := ToDOT(sample(t), Options{Detailed: true})
	if !strings.Contains(src, `label="2\n#1 (36, 0, 64, 46)"`) {
		t.Errorf("detailed label missing in:\n%s", src)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="x"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if got := string(normalizeViewBox([]byte("<svg>"))); got != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox = %s", got)
	}
}
