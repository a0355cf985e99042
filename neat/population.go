package neat

import (
	"fmt"
	"sort"
)

// FitnessFunc evaluates one generation: the caller runs each genome (usually
// through FeedForward) and sets its Fitness field. Fitness injection is the
// only externally-driven mutation of a genome.
type FitnessFunc func(genomes []*Genome) error

// Population owns the full genome list, the species list and the innovation
// registry, and drives one generation at a time: evaluate, speciate, cull,
// reproduce. It is single-threaded; the registry must never be touched
// concurrently or the innovation-number alignment used by crossover breaks.
type Population struct {
	Config     *Config
	Genomes    []*Genome
	Species    []*Species
	Generation int

	BestGenome  *Genome
	BestFitness float64

	// History is the innovation registry for this run; it is passed by
	// reference into every structural mutation and lives as long as the
	// population.
	History *InnovationHistory

	// Stats accumulates one entry per completed generation for reporting
	// and plotting collaborators.
	Stats []GenerationStats
}

// NewPopulation validates the config and seeds a population of minimal
// genomes with sparse random initial connections.
func NewPopulation(config *Config) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create population: %w", err)
	}

	p := &Population{
		Config:  config,
		History: NewInnovationHistory(),
	}
	p.Genomes = p.spawnGenomes()
	return p, nil
}

// spawnGenomes creates PopulationSize fresh minimal genomes.
func (p *Population) spawnGenomes() []*Genome {
	genomes := make([]*Genome, 0, p.Config.Neat.PopulationSize)
	for i := 0; i < p.Config.Neat.PopulationSize; i++ {
		g := NewGenome(&p.Config.Genome)
		g.seedConnections(p.History)
		genomes = append(genomes, g)
	}
	return genomes
}

// GetGenome looks up a genome by its identity label. The second return value
// reports whether it was found; a miss is a normal result, not an error.
func (p *Population) GetGenome(id string) (*Genome, bool) {
	for _, g := range p.Genomes {
		if g.ID == id {
			return g, true
		}
	}
	return nil, false
}

// SetBestGenome scans all species' members for the highest fitness seen and
// promotes a new all-time best when one is found. With no species formed yet
// it scans the raw genome list instead.
func (p *Population) SetBestGenome() {
	candidates := p.Genomes
	if len(p.Species) > 0 {
		candidates = nil
		for _, s := range p.Species {
			candidates = append(candidates, s.Genomes...)
		}
	}

	for _, g := range candidates {
		if p.BestGenome == nil || g.Fitness > p.BestFitness {
			p.BestGenome = g
			p.BestFitness = g.Fitness
		}
	}
}

// Speciate clears every species' membership (keeping representatives) and
// assigns each genome to the first compatible species, spawning a new species
// for genomes that match none. Species left without members are dropped.
func (p *Population) Speciate() {
	for _, s := range p.Species {
		s.Genomes = s.Genomes[:0]
	}

	for _, g := range p.Genomes {
		placed := false
		for _, s := range p.Species {
			if s.SameSpecies(g, p.Config) {
				s.Put(g)
				placed = true
				break
			}
		}
		if !placed {
			p.Species = append(p.Species, NewSpecies(g))
		}
	}

	survivors := p.Species[:0]
	for _, s := range p.Species {
		if len(s.Genomes) > 0 {
			survivors = append(survivors, s)
		}
	}
	p.Species = survivors
}

// SortSpecies sorts each species internally, applies fitness sharing, and
// then orders the species list by best fitness, descending.
func (p *Population) SortSpecies() {
	for _, s := range p.Species {
		s.SortGenomes()
		s.ShareFitness()
	}

	sort.SliceStable(p.Species, func(i, j int) bool {
		return p.Species[i].BestFitness > p.Species[j].BestFitness
	})
}

// KillStagnantSpecies removes species that have gone more than MaxStagnation
// generations without improvement. The top SpeciesElitism species by fitness
// are never killed for stagnation.
func (p *Population) KillStagnantSpecies() {
	survivors := make([]*Species, 0, len(p.Species))
	for i, s := range p.Species {
		if i < p.Config.Stagnation.SpeciesElitism || s.Stagnation <= p.Config.Stagnation.MaxStagnation {
			survivors = append(survivors, s)
		}
	}
	p.Species = survivors
}

// KillBadSpecies removes species whose average shared fitness falls below
// BadSpeciesThreshold.
func (p *Population) KillBadSpecies() {
	survivors := make([]*Species, 0, len(p.Species))
	for _, s := range p.Species {
		if s.AverageFitness >= p.Config.Stagnation.BadSpeciesThreshold {
			survivors = append(survivors, s)
		}
	}
	p.Species = survivors
}

// ResetOnExtinction regenerates a population of minimal random genomes when
// every species has been culled. This is recovery policy, not an error; the
// innovation registry is kept, since it spans the whole run.
func (p *Population) ResetOnExtinction() {
	if len(p.Species) == 0 {
		p.Genomes = p.spawnGenomes()
	}
}

// UpdateSpecies culls each species down to the reproduction pool before
// offspring slots are allocated: first the configured survival fraction, then
// a hard cap at MinSpeciesSize. Fitness sharing is recomputed over the pool.
func (p *Population) UpdateSpecies() {
	for _, s := range p.Species {
		s.KillGenomes(p.Config)
		s.CullTo(p.Config.Reproduction.MinSpeciesSize)
		s.ShareFitness()
	}
}

// ReproduceSpecies builds the next generation: each species receives
// offspring slots proportional to its share of the total adjusted fitness
// (at least one per surviving species), with Elitism champion clones carried
// over unmutated. The result is trimmed or backfilled from the best species
// to exactly PopulationSize. The generation counter advances and the current
// champion is recorded before the genomes are replaced.
func (p *Population) ReproduceSpecies() {
	if len(p.Species) == 0 {
		return
	}
	popSize := p.Config.Neat.PopulationSize

	p.setChampion()
	p.recordStats()

	totalAvg := 0.0
	for _, s := range p.Species {
		totalAvg += s.AverageFitness
	}

	children := make([]*Genome, 0, popSize)
	for _, s := range p.Species {
		var slots int
		if totalAvg > 0 {
			slots = int(s.AverageFitness / totalAvg * float64(popSize))
		} else {
			slots = popSize / len(p.Species)
		}
		if slots < 1 {
			slots = 1
		}

		produced := 0
		for e := 0; e < p.Config.Reproduction.Elitism && e < len(s.Genomes) && produced < slots; e++ {
			children = append(children, s.Genomes[e].Clone())
			produced++
		}
		for ; produced < slots && len(children) < popSize; produced++ {
			if child := s.Reproduce(p.Config, p.History); child != nil {
				children = append(children, child)
			}
		}
	}

	for len(children) < popSize {
		if child := p.Species[0].Reproduce(p.Config, p.History); child != nil {
			children = append(children, child)
		}
	}
	if len(children) > popSize {
		children = children[:popSize]
	}

	p.Genomes = children
	p.Generation++
}

// setChampion promotes the fittest member across all species to BestGenome
// when it beats the all-time best.
func (p *Population) setChampion() {
	for _, s := range p.Species {
		for _, g := range s.Genomes {
			if p.BestGenome == nil || g.Fitness > p.BestFitness {
				p.BestGenome = g
				p.BestFitness = g.Fitness
			}
		}
	}
}

// RunGeneration executes one full generation: fitness evaluation through the
// caller's function, then the speciation, culling and reproduction phases.
// It returns the winning genome as soon as the all-time best fitness reaches
// the configured threshold (unless termination is disabled).
func (p *Population) RunGeneration(eval FitnessFunc) (*Genome, error) {
	if err := eval(p.Genomes); err != nil {
		return nil, fmt.Errorf("fitness evaluation failed in generation %d: %w", p.Generation, err)
	}

	p.SetBestGenome()
	if !p.Config.Neat.NoFitnessTermination && p.BestGenome != nil &&
		p.BestFitness >= p.Config.Neat.FitnessThreshold {
		return p.BestGenome, nil
	}

	p.Speciate()
	p.SortSpecies()
	p.KillStagnantSpecies()
	p.KillBadSpecies()

	if len(p.Species) == 0 {
		if !p.Config.Neat.ResetOnExtinction {
			return nil, fmt.Errorf("population extinct in generation %d", p.Generation)
		}
		p.ResetOnExtinction()
		p.Generation++
		return nil, nil
	}

	p.UpdateSpecies()
	p.ReproduceSpecies()
	return nil, nil
}
