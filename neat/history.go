package neat

// ConnectionHistory records one structural mutation event: the endpoints it
// connected and the exact set of innovation numbers the genome carried when
// the mutation first occurred. Two genomes performing the same structural
// change in the same genomic context must receive the same innovation number,
// which is what makes crossover alignment by innovation number meaningful.
type ConnectionHistory struct {
	FromID       int
	ToID         int
	InnovationNb int

	// The innovation numbers of the genome that first had this mutation,
	// captured before the new connection was added.
	innovationNbs map[int]bool
	size          int
}

// NewConnectionHistory creates a history entry, copying the snapshot.
func NewConnectionHistory(fromID, toID, innovationNb int, innovationNbs []int) *ConnectionHistory {
	set := make(map[int]bool, len(innovationNbs))
	for _, nb := range innovationNbs {
		set[nb] = true
	}
	return &ConnectionHistory{
		FromID:       fromID,
		ToID:         toID,
		InnovationNb: innovationNb,
		innovationNbs: set,
		size:          len(innovationNbs),
	}
}

// InnovationNbs returns the stored snapshot as a slice (for persistence and
// reporting; the order is unspecified).
func (ch *ConnectionHistory) InnovationNbs() []int {
	out := make([]int, 0, len(ch.innovationNbs))
	for nb := range ch.innovationNbs {
		out = append(out, nb)
	}
	return out
}

// Matches reports whether the given genome, about to connect fromNode to
// toNode, is in the exact genomic context this entry recorded: same gene
// count, same endpoints, and every gene's innovation number present in the
// stored snapshot.
func (ch *ConnectionHistory) Matches(genome *Genome, fromNode, toNode *Node) bool {
	if len(genome.Genes) != ch.size {
		return false
	}
	if fromNode.ID != ch.FromID || toNode.ID != ch.ToID {
		return false
	}
	for _, g := range genome.Genes {
		if !ch.innovationNbs[g.InnovationNb] {
			return false
		}
	}
	return true
}

// InnovationHistory is the process-wide innovation registry for one
// evolutionary run. It is owned by the Population and passed by reference
// into every structural mutation; it is append-only for the lifetime of the
// run. It is not safe for concurrent use.
type InnovationHistory struct {
	Entries        []*ConnectionHistory
	NextInnovation int
}

// NewInnovationHistory creates an empty registry. Innovation numbers start at 1.
func NewInnovationHistory() *InnovationHistory {
	return &InnovationHistory{NextInnovation: 1}
}

// GetInnovation returns the innovation number for connecting fromNode to
// toNode in the given genome's current context, reusing the number of an
// equivalent earlier mutation when one exists and minting a new one otherwise.
func (ih *InnovationHistory) GetInnovation(genome *Genome, fromNode, toNode *Node) int {
	for _, entry := range ih.Entries {
		if entry.Matches(genome, fromNode, toNode) {
			return entry.InnovationNb
		}
	}

	snapshot := make([]int, 0, len(genome.Genes))
	for _, g := range genome.Genes {
		snapshot = append(snapshot, g.InnovationNb)
	}

	nb := ih.NextInnovation
	ih.NextInnovation++
	ih.Entries = append(ih.Entries, NewConnectionHistory(fromNode.ID, toNode.ID, nb, snapshot))
	return nb
}
