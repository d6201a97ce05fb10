package latex

import (
	"testing"

	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/relation"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
)

type edge struct {
	from, to int
	rel      relation.Relation
}

// build places the labels left to right and connects them.
func build(t *testing.T, labels []string, edges ...edge) *tree.Tree {
	t.Helper()
	crops := make([]symbols.LabeledCrop, len(labels))
	for i, l := range labels {
		crops[i] = symbols.LabeledCrop{Label: l, Box: geometry.NewBox(i*20, 0, i*20+15, 30)}
	}
	tr := tree.New(crops)
	for _, e := range edges {
		if err := tr.AddConnection(e.from, e.to, e.rel); err != nil {
			t.Fatalf("AddConnection(%d, %d, %s): %v", e.from, e.to, e.rel, err)
		}
	}
	return tr
}

func TestToLaTeX(t *testing.T) {
	tests := []struct {
		name   string
		tree   func(t *testing.T) *tree.Tree
		raw    string
		simple string
	}{
		{
			name: "fraction",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Frac, "2", "1"},
					edge{0, 1, relation.Up}, edge{0, 2, relation.Down})
			},
			raw:    `\frac{2}{1}`,
			simple: `\frac{2}1`,
		},
		{
			name: "power and sub",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"x", "i", "2", "+", "y"},
					edge{0, 1, relation.Sub}, edge{0, 2, relation.Power}, edge{0, 3, relation.Left}, edge{3, 4, relation.Left})
			},
			raw:    `x_{i}^{2}+y`,
			simple: `x_i^2+y`,
		},
		{
			name: "multi character exponent",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"e", "x", "y"},
					edge{0, 1, relation.Power}, edge{1, 2, relation.Left})
			},
			raw:    `e^{xy}`,
			simple: `e^{xy}`,
		},
		{
			name: "sum limits",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Sum, "n", "i", "=", "1", "i"},
					edge{0, 1, relation.Up}, edge{0, 2, relation.Down},
					edge{2, 3, relation.Left}, edge{3, 4, relation.Left}, edge{0, 5, relation.Left})
			},
			raw:    `\sum^{n}_{i=1}{i}`,
			simple: `\sum^n_{i=1}{i}`,
		},
		{
			name: "integral limits from power and sub",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Int, "b", "a", "x"},
					edge{0, 1, relation.Power}, edge{0, 2, relation.Sub}, edge{0, 3, relation.Left})
			},
			raw:    `\int^{b}_{a}{x}`,
			simple: `\int^b_a{x}`,
		},
		{
			name: "sum limits from power and sub",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Sum, "n", "i", "x"},
					edge{0, 1, relation.Power}, edge{0, 2, relation.Sub}, edge{0, 3, relation.Left})
			},
			raw:    `\sum^{n}_{i}{x}`,
			simple: `\sum^n_i{x}`,
		},
		{
			name: "shared child written per parent",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"x", "y", "z"},
					edge{0, 1, relation.Left}, edge{0, 2, relation.Power}, edge{1, 2, relation.Power})
			},
			raw:    `x^{z}y^{z}`,
			simple: `x^zy^z`,
		},
		{
			name: "pi keeps its sibling grouped",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"2", symbols.Pi, "r"},
					edge{0, 1, relation.Left}, edge{1, 2, relation.Left})
			},
			raw:    `2\pi{r}`,
			simple: `2\pi{r}`,
		},
		{
			name: "none written like left",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"a", "b"}, edge{0, 1, relation.None})
			},
			raw:    `ab`,
			simple: `ab`,
		},
		{
			name: "fraction with sibling",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Frac, "x", "y", "+", "1"},
					edge{0, 1, relation.Up}, edge{0, 2, relation.Down},
					edge{0, 3, relation.Left}, edge{3, 4, relation.Left})
			},
			raw:    `\frac{x}{y}+1`,
			simple: `\frac{x}y+1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tt.tree(t)
			raw, err := ToLaTeX(tr, Options{})
			if err != nil {
				t.Fatalf("ToLaTeX() error: %v", err)
			}
			if raw != tt.raw {
				t.Errorf("ToLaTeX() = %q, want %q", raw, tt.raw)
			}
			simple, err := ToLaTeX(tr, Options{Simplify: true})
			if err != nil {
				t.Fatalf("ToLaTeX(simplify) error: %v", err)
			}
			if simple != tt.simple {
				t.Errorf("ToLaTeX(simplify) = %q, want %q", simple, tt.simple)
			}
		})
	}
}

func TestToLaTeXErrors(t *testing.T) {
	tests := []struct {
		name string
		tree func(t *testing.T) *tree.Tree
		code errors.Code
	}{
		{
			name: "empty tree",
			tree: func(t *testing.T) *tree.Tree { return build(t, nil) },
			code: errors.ErrCodeNoRoot,
		},
		{
			name: "fraction with power",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Frac, "2", "1", "3"},
					edge{0, 1, relation.Up}, edge{0, 2, relation.Down}, edge{0, 3, relation.Power})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "fraction without denominator",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Frac, "2"}, edge{0, 1, relation.Up})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "letter with up",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"x", "y"}, edge{0, 1, relation.Up})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "two left children",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"x", "y", "z"}, edge{0, 1, relation.Left}, edge{0, 2, relation.Left})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "integral with two upper limits",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Int, "a", "b"}, edge{0, 1, relation.Up}, edge{0, 2, relation.Power})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "sum with up and power",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{symbols.Sum, "a", "b"}, edge{0, 1, relation.Up}, edge{0, 2, relation.Power})
			},
			code: errors.ErrCodeArity,
		},
		{
			name: "cycle",
			tree: func(t *testing.T) *tree.Tree {
				return build(t, []string{"x", "y", "z"},
					edge{0, 1, relation.Left}, edge{1, 2, relation.Left}, edge{2, 1, relation.Power})
			},
			code: errors.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToLaTeX(tt.tree(t), Options{Simplify: true})
			if !errors.Is(err, tt.code) {
				t.Errorf("ToLaTeX() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSimplifyString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{x}`, `x`},
		{`{xy}`, `{xy}`},
		{`x^{2}`, `x^2`},
		{`x^{ 2 }`, `x^2`},
		{`{{a}}`, `a`},
		{`{a{b}}`, `{ab}`},
		{`\frac{2}{1}`, `\frac21`},
		{`\{a\}`, `\{a\}`},
		{`{\{}`, `{\{}`},
		{`{a`, `{a`},
		{`a}`, `a}`},
		{`{}`, `{}`},
		{`\\{x}`, `\\x`},
		{`e^{\pi}`, `e^{\pi}`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SimplifyString(tt.in)
			if got != tt.want {
				t.Errorf("SimplifyString(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := SimplifyString(got); again != got {
				t.Errorf("SimplifyString not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	f := Seq{
		Text(`\frac`),
		Group{Protected: true, Parts: Seq{Group{Parts: Seq{Text("x")}}}},
		Group{Parts: Seq{Text("y"), Group{Parts: Seq{Text(" z ")}}}},
	}
	once := Simplify(f)
	if got, want := String(once), `\frac{x}{yz}`; got != want {
		t.Errorf("Simplify() = %q, want %q", got, want)
	}
	if twice := String(Simplify(once)); twice != String(once) {
		t.Errorf("second Simplify() = %q, want %q", twice, String(once))
	}
}
