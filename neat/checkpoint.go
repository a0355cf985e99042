package neat

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
)

// The live object graph is cyclic (nodes hold their outgoing genes, genes
// hold their endpoint nodes), which gob cannot encode. Checkpoints therefore
// flatten each genome to id-based records and rebuild the graph on load.

type nodeSave struct {
	ID          int
	Layer       int
	Activation  string
	OutputValue float64
}

type geneSave struct {
	FromID       int
	ToID         int
	Weight       float64
	Enabled      bool
	InnovationNb int
}

type genomeSave struct {
	ID         string
	Fitness    float64
	Layers     int
	NextNodeID int
	BiasNodeID int
	Nodes      []nodeSave
	Genes      []geneSave
}

type historyEntrySave struct {
	FromID        int
	ToID          int
	InnovationNb  int
	InnovationNbs []int
}

type populationSave struct {
	Generation     int
	BestFitness    float64
	BestGenome     *genomeSave
	Genomes        []genomeSave
	NextInnovation int
	HistoryEntries []historyEntrySave
	Stats          []GenerationStats
}

func flattenGenome(g *Genome) genomeSave {
	save := genomeSave{
		ID:         g.ID,
		Fitness:    g.Fitness,
		Layers:     g.Layers,
		NextNodeID: g.NextNodeID,
		BiasNodeID: g.BiasNodeID,
	}
	for _, n := range g.Nodes {
		save.Nodes = append(save.Nodes, nodeSave{
			ID:          n.ID,
			Layer:       n.Layer,
			Activation:  n.Activation,
			OutputValue: n.OutputValue,
		})
	}
	for _, gene := range g.Genes {
		save.Genes = append(save.Genes, geneSave{
			FromID:       gene.FromNode.ID,
			ToID:         gene.ToNode.ID,
			Weight:       gene.Weight,
			Enabled:      gene.Enabled,
			InnovationNb: gene.InnovationNb,
		})
	}
	return save
}

func rebuildGenome(save genomeSave, config *GenomeConfig) (*Genome, error) {
	g := &Genome{
		ID:         save.ID,
		Config:     config,
		Fitness:    save.Fitness,
		Layers:     save.Layers,
		NextNodeID: save.NextNodeID,
		BiasNodeID: save.BiasNodeID,
	}
	for _, ns := range save.Nodes {
		n := NewNode(ns.ID, ns.Activation, ns.Layer)
		n.OutputValue = ns.OutputValue
		g.Nodes = append(g.Nodes, n)
	}
	for _, gs := range save.Genes {
		from := g.GetNode(gs.FromID)
		to := g.GetNode(gs.ToID)
		if from == nil || to == nil {
			return nil, fmt.Errorf("checkpoint genome %s: gene %d->%d references missing nodes", save.ID, gs.FromID, gs.ToID)
		}
		gene := NewConnectionGene(from, to, gs.Weight, gs.InnovationNb)
		gene.Enabled = gs.Enabled
		g.Genes = append(g.Genes, gene)
	}
	g.ConnectNodes()
	return g, nil
}

// SaveCheckpoint writes the population's state to a gzip-compressed gob file.
// Species are not saved; they are rebuilt by Speciate on the next generation.
func (p *Population) SaveCheckpoint(filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	save := populationSave{
		Generation:     p.Generation,
		BestFitness:    p.BestFitness,
		NextInnovation: p.History.NextInnovation,
		Stats:          p.Stats,
	}
	// The all-time best is usually a previous-generation individual that no
	// longer appears in the genome list, so it is flattened in its own right.
	if p.BestGenome != nil {
		best := flattenGenome(p.BestGenome)
		save.BestGenome = &best
	}
	for _, g := range p.Genomes {
		save.Genomes = append(save.Genomes, flattenGenome(g))
	}
	for _, entry := range p.History.Entries {
		save.HistoryEntries = append(save.HistoryEntries, historyEntrySave{
			FromID:        entry.FromID,
			ToID:          entry.ToID,
			InnovationNb:  entry.InnovationNb,
			InnovationNbs: entry.InnovationNbs(),
		})
	}

	if err := gob.NewEncoder(gzWriter).Encode(save); err != nil {
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	return nil
}

// LoadCheckpoint restores a population from a checkpoint file. The config is
// supplied by the caller, as it is not part of the checkpoint.
func LoadCheckpoint(filePath string, config *Config) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var save populationSave
	if err := gob.NewDecoder(gzReader).Decode(&save); err != nil {
		return nil, fmt.Errorf("failed to decode checkpoint data: %w", err)
	}

	p := &Population{
		Config:      config,
		Generation:  save.Generation,
		BestFitness: save.BestFitness,
		History:     NewInnovationHistory(),
		Stats:       save.Stats,
	}
	p.History.NextInnovation = save.NextInnovation
	for _, es := range save.HistoryEntries {
		p.History.Entries = append(p.History.Entries,
			NewConnectionHistory(es.FromID, es.ToID, es.InnovationNb, es.InnovationNbs))
	}

	for _, gs := range save.Genomes {
		g, err := rebuildGenome(gs, &config.Genome)
		if err != nil {
			return nil, fmt.Errorf("failed to rebuild checkpoint: %w", err)
		}
		p.Genomes = append(p.Genomes, g)
	}

	if save.BestGenome != nil {
		for _, g := range p.Genomes {
			if g.ID == save.BestGenome.ID {
				p.BestGenome = g
				break
			}
		}
		if p.BestGenome == nil {
			g, err := rebuildGenome(*save.BestGenome, &config.Genome)
			if err != nil {
				return nil, fmt.Errorf("failed to rebuild checkpoint: %w", err)
			}
			p.BestGenome = g
		}
	}

	return p, nil
}
