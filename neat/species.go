package neat

import (
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Species is a cluster of genomes whose compatibility distance to the
// representative stays below the configured threshold. It owns fitness
// sharing, stagnation tracking and reproduction within the cluster.
type Species struct {
	Genomes        []*Genome
	Representative *Genome
	BestFitness    float64
	AverageFitness float64
	Stagnation     int
}

// NewSpecies creates a species seeded by a single genome, which also becomes
// the representative.
func NewSpecies(rep *Genome) *Species {
	return &Species{
		Genomes:        []*Genome{rep},
		Representative: rep,
		BestFitness:    rep.Fitness,
	}
}

// Put adds a genome to the membership without distance checking; the caller
// has already verified compatibility against the representative.
func (s *Species) Put(g *Genome) {
	s.Genomes = append(s.Genomes, g)
}

// SameSpecies reports whether a genome belongs here: its distance to the
// representative is below the compatibility threshold.
func (s *Species) SameSpecies(g *Genome, config *Config) bool {
	return s.Representative.Distance(g) < config.SpeciesSet.CompatibilityThreshold
}

// SortGenomes orders members by descending fitness. A new best fitness
// re-elects the champion as representative and resets the stagnation counter;
// otherwise the species has gone another generation without improving.
func (s *Species) SortGenomes() {
	if len(s.Genomes) == 0 {
		s.Stagnation++
		return
	}

	sort.SliceStable(s.Genomes, func(i, j int) bool {
		return s.Genomes[i].Fitness > s.Genomes[j].Fitness
	})

	if s.Genomes[0].Fitness > s.BestFitness {
		s.BestFitness = s.Genomes[0].Fitness
		s.Representative = s.Genomes[0]
		s.Stagnation = 0
	} else {
		s.Stagnation++
	}
}

// ShareFitness applies explicit fitness sharing: each member's adjusted
// fitness is its raw fitness divided by the species size, and the species'
// average fitness is the mean of the adjusted values.
func (s *Species) ShareFitness() {
	if len(s.Genomes) == 0 {
		s.AverageFitness = 0
		return
	}
	size := float64(len(s.Genomes))
	adjusted := make([]float64, len(s.Genomes))
	for i, g := range s.Genomes {
		adjusted[i] = g.Fitness / size
	}
	s.AverageFitness = Mean(adjusted)
}

// selectParent picks one parent according to the configured selection policy.
// "rank" squares a uniform draw so the pick is biased toward the front of the
// fitness-sorted member list; "uniform" picks any member with equal chance.
func (s *Species) selectParent(config *Config) *Genome {
	switch strings.ToLower(config.Reproduction.ParentSelection) {
	case "uniform":
		return s.Genomes[rand.Intn(len(s.Genomes))]
	default: // rank
		r := rand.Float64() * rand.Float64()
		idx := int(r * float64(len(s.Genomes)))
		if idx >= len(s.Genomes) {
			idx = len(s.Genomes) - 1
		}
		return s.Genomes[idx]
	}
}

// Reproduce produces one child. Species too small for crossover clone their
// top genome and mutate the copy; otherwise two parents are selected under
// the configured policy, the fitter one receives the crossover, and the child
// is mutated.
func (s *Species) Reproduce(config *Config, history *InnovationHistory) *Genome {
	if len(s.Genomes) == 0 {
		return nil
	}

	if len(s.Genomes) == 1 {
		child := s.Genomes[0].Clone()
		child.Fitness = 0
		child.Mutate(history)
		return child
	}

	p1 := s.selectParent(config)
	p2 := s.selectParent(config)
	if p1.Fitness < p2.Fitness {
		p1, p2 = p2, p1
	}
	child := p1.Crossover(p2)
	child.Mutate(history)
	return child
}

// KillGenomes retains only the top surviving fraction of members by fitness.
// The members must already be fitness-sorted. At least two members survive
// when the species has them, so crossover remains possible.
func (s *Species) KillGenomes(config *Config) {
	keep := int(math.Ceil(config.Reproduction.SurvivalThreshold * float64(len(s.Genomes))))
	if keep < 2 {
		keep = 2
	}
	if keep < len(s.Genomes) {
		s.Genomes = s.Genomes[:keep]
	}
}

// CullTo truncates the membership to at most n genomes, keeping the front of
// the (fitness-sorted) list.
func (s *Species) CullTo(n int) {
	if n >= 1 && len(s.Genomes) > n {
		s.Genomes = s.Genomes[:n]
	}
}
