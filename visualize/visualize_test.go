package visualize

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evolvekit/neatevo/neat"
)

func sampleGenome(t *testing.T) *neat.Genome {
	t.Helper()
	config := neat.DefaultConfig()
	config.Genome.NumInputs = 2
	config.Genome.NumOutputs = 1
	history := neat.NewInnovationHistory()

	g := neat.NewGenome(&config.Genome)
	for len(g.Genes) < 2 {
		g.AddConnectionMutation(history)
	}
	g.AddNodeMutation(history)
	return g
}

func TestPlotPopulationHistoryWritesPNG(t *testing.T) {
	stats := []neat.GenerationStats{
		{Generation: 0, BestFitness: 1, AverageFitness: 0.5, NumSpecies: 1},
		{Generation: 1, BestFitness: 2, AverageFitness: 1.2, NumSpecies: 2},
		{Generation: 2, BestFitness: 3.5, AverageFitness: 2, NumSpecies: 2},
	}

	path := filepath.Join(t.TempDir(), "fitness.png")
	require.NoError(t, PlotPopulationHistory(stats, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotPopulationHistoryRejectsEmptyStats(t *testing.T) {
	err := PlotPopulationHistory(nil, filepath.Join(t.TempDir(), "fitness.png"))
	require.Error(t, err)
}

func TestGenomeDOTStructure(t *testing.T) {
	g := sampleGenome(t)
	dot := GenomeDOT(g)

	assert.Contains(t, dot, "digraph genome {")
	assert.Contains(t, dot, "rankdir=LR;")
	for _, n := range g.Nodes {
		assert.Contains(t, dot, fmt.Sprintf("n%d;", n.ID))
	}
	for _, gene := range g.Genes {
		assert.Contains(t, dot, fmt.Sprintf("n%d -> n%d", gene.FromNode.ID, gene.ToNode.ID))
	}
}

func TestGenomeDOTMarksDisabledGenes(t *testing.T) {
	g := sampleGenome(t)
	// The split connection from AddNodeMutation is disabled.
	dot := GenomeDOT(g)
	assert.Contains(t, dot, "style=dashed")
	assert.Contains(t, dot, "style=solid")
}

func TestWriteGenomeDOT(t *testing.T) {
	g := sampleGenome(t)
	path := filepath.Join(t.TempDir(), "genome.dot")
	require.NoError(t, WriteGenomeDOT(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, GenomeDOT(g), string(data))
}
