// Package viz renders precedence graphs as Graphviz diagrams.
//
// [ToDOT] converts an instance's precedence relation to DOT; when a
// solution is supplied, tasks are grouped into station clusters so the
// assignment is visible at a glance. [RenderSVG] and [RenderPNG] turn
// the DOT source into image bytes.
package viz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/MarquinhoCF/alwabp-solver/pkg/alwabp"
	"github.com/MarquinhoCF/alwabp-solver/pkg/solver"
)

// Options configures precedence graph rendering.
type Options struct {
	// Detailed includes per-worker durations in task labels.
	// When false, only the task index is shown.
	Detailed bool

	// Solution, when non-nil, groups tasks into one cluster per station
	// labeled with the assigned worker and load.
	Solution *solver.Solution
}

// ToDOT converts an instance's precedence graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
func ToDOT(inst *alwabp.Instance, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph precedence {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if opts.Solution != nil {
		writeClusters(&buf, inst, opts)
	} else {
		for t := 0; t < inst.Tasks(); t++ {
			fmt.Fprintf(&buf, "  %d [label=%q];\n", t, taskLabel(inst, t, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for _, e := range inst.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeClusters(buf *bytes.Buffer, inst *alwabp.Instance, opts Options) {
	sol := opts.Solution
	for st := 0; st < inst.Stations(); st++ {
		fmt.Fprintf(buf, "  subgraph cluster_%d {\n", st)
		fmt.Fprintf(buf, "    label=\"station %d / worker %d (%.1f)\";\n",
			st, sol.StationWorker(st), sol.StationLoad(st))
		buf.WriteString("    style=\"rounded\";\n")
		buf.WriteString("    color=grey;\n")
		for _, t := range sol.StationTasks(st) {
			fmt.Fprintf(buf, "    %d [label=%q];\n", t, taskLabel(inst, t, opts.Detailed))
		}
		buf.WriteString("  }\n")
	}
}

func taskLabel(inst *alwabp.Instance, t int, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("%d", t)
	}

	parts := make([]string, 0, inst.Workers())
	for w := 0; w < inst.Workers(); w++ {
		d := inst.Time(t, w)
		if alwabp.IsIncapable(d) {
			parts = append(parts, fmt.Sprintf("w%d: -", w))
		} else {
			parts = append(parts, fmt.Sprintf("w%d: %g", w, d))
		}
	}
	return fmt.Sprintf("%d\n%s", t, strings.Join(parts, "\n"))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return renderFormat(dot, graphviz.PNG)
}

func renderFormat(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
