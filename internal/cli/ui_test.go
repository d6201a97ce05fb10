package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/Amjad50/Fyp/pkg/pipeline"
	"github.com/Amjad50/Fyp/pkg/relation"
)

func TestOutcomeMark(t *testing.T) {
	tests := []struct {
		name    string
		outcome pipeline.Outcome
		want    string
	}{
		{"correct", pipeline.Outcome{Correct: true}, "✓"},
		{"wrong", pipeline.Outcome{Predicted: "x"}, "!"},
		{"failed", pipeline.Outcome{Error: "ARITY: x"}, "✗"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcomeMark(tt.outcome); !strings.Contains(got, tt.want) {
				t.Errorf("outcomeMark() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelationLabel(t *testing.T) {
	for _, r := range relation.All {
		if got := relationLabel(r); !strings.Contains(got, r.String()) {
			t.Errorf("relationLabel(%v) = %q", r, got)
		}
	}
}

func TestStatsLine(t *testing.T) {
	res := &pipeline.Result{
		Weight:    41.5,
		Stats:     pipeline.Stats{Symbols: 3, Candidates: 4, ParseTime: 1500 * time.Microsecond},
		CacheInfo: pipeline.CacheInfo{Hit: true},
	}
	got := statsLine(res)
	for _, want := range []string{"3 symbols", "4 candidate edges", "weight 41.5", "1.5ms", cacheHit} {
		if !strings.Contains(got, want) {
			t.Errorf("statsLine() = %q, missing %q", got, want)
		}
	}

	fresh := statsLine(&pipeline.Result{Stats: pipeline.Stats{Symbols: 1}})
	if !strings.Contains(fresh, cacheMiss) || strings.Contains(fresh, "candidate") {
		t.Errorf("statsLine() = %q, want a fresh single symbol line", fresh)
	}
}
