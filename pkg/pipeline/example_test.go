package pipeline_test

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Amjad50/Fyp/pkg/cache"
	"github.com/Amjad50/Fyp/pkg/geometry"
	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/symbols"
)

func ExampleRunner_Parse() {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.New(io.Discard))

	res, err := runner.Parse(context.Background(), pipeline.Options{
		Crops: []symbols.LabeledCrop{
			{Label: "x", Box: geometry.NewBox(0, 20, 34, 52)},
			{Label: "2", Box: geometry.NewBox(36, 0, 50, 23)},
		},
		Simplify: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Raw)
	fmt.Println(res.LaTeX)
	// Output:
	// x^{2}
	// x^2
}

func ExampleMatches() {
	fmt.Println(pipeline.Matches(`x^{2}`, `x^2`))
	fmt.Println(pipeline.Matches(`x^{2}`, `x_2`))
	// Output:
	// true
	// false
}
