// Command geoaid is a thin wiring example, not a DSL implementation: it
// builds one hardcoded Intermediate (the midpoint construction from this
// module's own test scenarios) and runs it through lowering, Glide, and
// figure assembly, writing the resulting Figure as JSON. A real deployment
// replaces the hardcoded Intermediate with whatever the (out-of-scope) DSL
// parser produces; everything downstream of that value is this module.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/geo-aid/geoaid/pkg/config"
	"github.com/geo-aid/geoaid/pkg/dag"
	"github.com/geo-aid/geoaid/pkg/figure"
	"github.com/geo-aid/geoaid/pkg/glide"
	"github.com/geo-aid/geoaid/pkg/ir"
	"github.com/geo-aid/geoaid/pkg/lowering"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON or YAML config file (optional; defaults are used otherwise)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "geoaid:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	intermediate := midpointScript()

	arena := dag.NewArena(ir.InputCount(intermediate.Entities))
	lowered := lowering.Lower(arena, intermediate.Entities, intermediate.Variables)
	entityErrors := loweringEntityErrors(arena, intermediate, lowered)

	g, err := glide.New(cfg.Params(), arena, entityErrors, uint64(cfg.Seed))
	if err != nil {
		return fmt.Errorf("build glide: %w", err)
	}

	result := g.Generate(context.Background(), glide.Summary(time.Now()))

	fig := figure.Assemble(
		intermediate.Entities,
		intermediate.Figure.Variables,
		intermediate.Figure.Items,
		result.Inputs,
		cfg.Canvas.Width,
		cfg.Canvas.Height,
	)

	out, err := json.MarshalIndent(fig, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal figure: %w", err)
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	fmt.Printf("wrote %s (quality %.6f)\n", cfg.Output, result.Quality)
	return nil
}

// loweringEntityErrors lowers every rule against the already-lowered
// variables and sums each rule's error into the entities it depends on,
// exactly the attribution pkg/lowering.EntityErrors performs.
func loweringEntityErrors(arena *dag.Arena, in ir.Intermediate, lowered *lowering.Lowered) []dag.NodeID {
	return lowering.EntityErrors(arena, in.Rules, lowered.Variables, len(in.Entities))
}

// midpointScript hardcodes the §8 "Midpoint" scenario: A, B free points, M
// constrained to their average, all three drawn as labeled points.
func midpointScript() ir.Intermediate {
	entities := []ir.Entity{
		{Tag: ir.FreePoint}, // A = 0
		{Tag: ir.FreePoint}, // B = 1
		{Tag: ir.FreePoint}, // M = 2
	}
	variables := []ir.Expr{
		{Tag: ir.EntityRef, EntityID: 0}, // 0: A
		{Tag: ir.EntityRef, EntityID: 1}, // 1: B
		{Tag: ir.EntityRef, EntityID: 2}, // 2: M
		{Tag: ir.AveragePoint, Items: []ir.VarIndex{0, 1}}, // 3: (A+B)/2
	}
	rules := []ir.Rule{
		{
			Kind:     ir.RuleKind{Tag: ir.PointEq, A: 2, B: 3},
			Weight:   1,
			Entities: []ir.EntityIndex{0, 1, 2},
		},
	}
	items := []ir.Item{
		{Tag: ir.ItemPoint, ID: 0, DisplayDot: true, Label: &ir.Label{Content: "A"}},
		{Tag: ir.ItemPoint, ID: 1, DisplayDot: true, Label: &ir.Label{Content: "B"}},
		{Tag: ir.ItemPoint, ID: 2, DisplayDot: true, Label: &ir.Label{Content: "M"}},
	}
	return ir.Intermediate{
		Entities:  entities,
		Variables: variables,
		Rules:     rules,
		Figure: ir.Figure{
			Entities:  entities,
			Variables: variables,
			Items:     items,
		},
	}
}
