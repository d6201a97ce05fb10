package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/Amjad50/Fyp/pkg/candidates"
	"github.com/Amjad50/Fyp/pkg/errors"
	"github.com/Amjad50/Fyp/pkg/mst"
	"github.com/Amjad50/Fyp/pkg/observability"
	"github.com/Amjad50/Fyp/pkg/render/latex"
	"github.com/Amjad50/Fyp/pkg/symbols"
	"github.com/Amjad50/Fyp/pkg/tree"
	"github.com/Amjad50/Fyp/pkg/tree/transform"
)

// Parse runs the parsing stages over opts.Crops with the given size table.
// It does not consult any cache.
func Parse(ctx context.Context, table symbols.Table, runID string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	start := time.Now()

	crops := slices.Clone(opts.Crops)
	symbols.Sort(crops)

	res := &Result{RunID: runID, Crops: crops}
	res.Stats.Symbols = len(crops)

	var (
		g        *candidates.Graph
		spanning []candidates.Edge
		t        *tree.Tree
		frag     latex.Fragment
	)
	stages := []struct {
		name string
		run  func() error
	}{
		{StageValidate, func() error {
			for i, c := range crops {
				if !table.Has(c.Label) {
					return errors.New(errors.ErrCodeUnknownLabel, "symbol %d: no default size for %q", i, c.Label)
				}
			}
			return nil
		}},
		{StageCandidates, func() (err error) {
			g, err = candidates.NewBuilder(table).Build(crops)
			return err
		}},
		{StageSpanning, func() (err error) {
			spanning, res.Weight, err = mst.FromGraph(g)
			return err
		}},
		{StageBuild, func() (err error) {
			t, err = tree.Build(crops, g, spanning)
			return err
		}},
		{StageOptimize, func() error {
			if opts.Raw {
				return nil
			}
			return transform.Optimize(t)
		}},
		{StageGenerate, func() (err error) {
			frag, err = latex.Generate(t)
			return err
		}},
	}

	hooks := observability.Pipeline()
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hooks.OnStageStart(ctx, runID, s.name)
		stageStart := time.Now()
		err := s.run()
		hooks.OnStageComplete(ctx, runID, s.name, time.Since(stageStart), err)
		if err != nil {
			logger.Debug("stage failed", "run", runID, "stage", s.name, "error", err)
			return nil, err
		}
	}

	res.Stats.Candidates = g.EdgeCount()
	res.tree = t
	res.Nodes = t.Export()
	res.Raw = latex.Render(frag, latex.Options{})
	res.Simplified = latex.Render(frag, latex.Options{Simplify: true})
	res.LaTeX = res.Raw
	if opts.Simplify {
		res.LaTeX = res.Simplified
	}
	res.Stats.ParseTime = time.Since(start)

	logger.Debug("parsed expression",
		"run", runID,
		"symbols", len(crops),
		"candidates", res.Stats.Candidates,
		"weight", res.Weight)
	return res, nil
}
