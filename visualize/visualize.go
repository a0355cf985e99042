// Package visualize renders the core's reporting surface: population fitness
// history as a PNG plot and genome topology as Graphviz DOT. It consumes only
// exported genome/population data and never touches mutation logic.
package visualize

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/evolvekit/neatevo/neat"
)

// PlotPopulationHistory draws best and average fitness over generations and
// saves the plot as a PNG file.
func PlotPopulationHistory(stats []neat.GenerationStats, filename string) error {
	if len(stats) == 0 {
		return fmt.Errorf("visualize: no generation stats to plot")
	}

	p := plot.New()
	p.Title.Text = "Population fitness"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(stats))
	avgPts := make(plotter.XYs, len(stats))
	for i, s := range stats {
		bestPts[i].X = float64(s.Generation)
		bestPts[i].Y = s.BestFitness
		avgPts[i].X = float64(s.Generation)
		avgPts[i].Y = s.AverageFitness
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return fmt.Errorf("visualize: failed to build best-fitness line: %w", err)
	}
	avgLine, err := plotter.NewLine(avgPts)
	if err != nil {
		return fmt.Errorf("visualize: failed to build average-fitness line: %w", err)
	}
	avgLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(bestLine, avgLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("average", avgLine)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("visualize: failed to save plot '%s': %w", filename, err)
	}
	return nil
}

// GenomeDOT returns the genome's topology in Graphviz DOT notation. Nodes are
// ranked by layer; disabled genes are drawn dashed.
func GenomeDOT(g *neat.Genome) string {
	var b strings.Builder
	b.WriteString("digraph genome {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [shape=circle];\n")

	layers := make(map[int][]int)
	for _, n := range g.Nodes {
		layers[n.Layer] = append(layers[n.Layer], n.ID)
	}
	layerOrder := make([]int, 0, len(layers))
	for layer := range layers {
		layerOrder = append(layerOrder, layer)
	}
	sort.Ints(layerOrder)

	for _, layer := range layerOrder {
		ids := layers[layer]
		sort.Ints(ids)
		fmt.Fprintf(&b, "\t{ rank=same;")
		for _, id := range ids {
			fmt.Fprintf(&b, " n%d;", id)
		}
		b.WriteString(" }\n")
	}

	for _, gene := range g.Genes {
		style := "solid"
		if !gene.Enabled {
			style = "dashed"
		}
		fmt.Fprintf(&b, "\tn%d -> n%d [label=\"%.2f\", style=%s];\n",
			gene.FromNode.ID, gene.ToNode.ID, gene.Weight, style)
	}

	b.WriteString("}\n")
	return b.String()
}

// WriteGenomeDOT writes the genome's DOT rendering to a file, ready for the
// graphviz toolchain.
func WriteGenomeDOT(g *neat.Genome, filename string) error {
	if err := os.WriteFile(filename, []byte(GenomeDOT(g)), 0o644); err != nil {
		return fmt.Errorf("visualize: failed to write DOT file '%s': %w", filename, err)
	}
	return nil
}
