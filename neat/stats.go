package neat

// GenerationStats is one row of the population's fitness history: everything
// an external plotting collaborator needs to render fitness over time.
type GenerationStats struct {
	Generation     int
	BestFitness    float64
	AverageFitness float64
	NumSpecies     int
}

// recordStats appends the current generation's snapshot to the history.
// Called once per generation, just before the genomes are replaced.
func (p *Population) recordStats() {
	fitnesses := make([]float64, len(p.Genomes))
	for i, g := range p.Genomes {
		fitnesses[i] = g.Fitness
	}
	p.Stats = append(p.Stats, GenerationStats{
		Generation:     p.Generation,
		BestFitness:    p.BestFitness,
		AverageFitness: Mean(fitnesses),
		NumSpecies:     len(p.Species),
	})
}
