package neat

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Config stores the configuration parameters for the NEAT algorithm.
type Config struct {
	Neat         NeatConfig
	Genome       GenomeConfig
	SpeciesSet   SpeciesSetConfig
	Stagnation   StagnationConfig
	Reproduction ReproductionConfig
}

// NeatConfig holds parameters specific to the NEAT run itself.
type NeatConfig struct {
	PopulationSize       int     `ini:"population_size"`
	FitnessThreshold     float64 `ini:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination"`
	ResetOnExtinction    bool    `ini:"reset_on_extinction"`
}

// GenomeConfig holds parameters specific to the structure and mutation of genomes.
type GenomeConfig struct {
	NumInputs  int `ini:"num_inputs"`
	NumOutputs int `ini:"num_outputs"`

	// --- Connection weight parameters ---
	WeightMutateRate  float64 `ini:"weight_mutate_rate"`
	WeightReplaceRate float64 `ini:"weight_replace_rate"`
	WeightMutatePower float64 `ini:"weight_mutate_power"`
	WeightMinValue    float64 `ini:"weight_min_value"`
	WeightMaxValue    float64 `ini:"weight_max_value"`

	// --- Bias node parameters ---
	BiasMutateRate  float64 `ini:"bias_mutate_rate"`
	BiasReplaceRate float64 `ini:"bias_replace_rate"`
	BiasInitMean    float64 `ini:"bias_init_mean"`
	BiasInitStdev   float64 `ini:"bias_init_stdev"`
	BiasMinValue    float64 `ini:"bias_min_value"`
	BiasMaxValue    float64 `ini:"bias_max_value"`

	// --- Node / gene attribute mutation ---
	ActivationMutateRate float64 `ini:"activation_mutate_rate"`
	EnabledMutateRate    float64 `ini:"enabled_mutate_rate"`

	// --- Structural mutation probabilities ---
	ConnAddProb float64 `ini:"conn_add_prob"`
	NodeAddProb float64 `ini:"node_add_prob"`

	// --- Crossover ---
	GeneDisableRate float64 `ini:"gene_disable_rate"`

	// --- Compatibility distance coefficients (c1, c2, c3) ---
	CompatibilityExcessCoefficient   float64 `ini:"compatibility_excess_coefficient"`
	CompatibilityDisjointCoefficient float64 `ini:"compatibility_disjoint_coefficient"`
	CompatibilityWeightCoefficient   float64 `ini:"compatibility_weight_coefficient"`
}

// SpeciesSetConfig holds parameters related to speciation.
type SpeciesSetConfig struct {
	CompatibilityThreshold float64 `ini:"compatibility_threshold"`
}

// StagnationConfig holds parameters related to species stagnation and culling.
type StagnationConfig struct {
	MaxStagnation       int     `ini:"max_stagnation"`
	SpeciesElitism      int     `ini:"species_elitism"`
	BadSpeciesThreshold float64 `ini:"bad_species_threshold"`
}

// ReproductionConfig holds parameters related to reproduction.
type ReproductionConfig struct {
	Elitism           int     `ini:"elitism"`
	SurvivalThreshold float64 `ini:"survival_threshold"`
	MinSpeciesSize    int     `ini:"min_species_size"`
	// ParentSelection chooses how the two parents are picked within a species:
	// "rank" biases the draw toward higher-ranked members, "uniform" does not.
	ParentSelection string `ini:"parent_selection"`
}

// DefaultConfig returns a configuration populated with the documented defaults.
// Embedders that don't want an INI file can start from this and override fields.
func DefaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{
			PopulationSize:       100,
			FitnessThreshold:     0.0,
			NoFitnessTermination: true,
			ResetOnExtinction:    true,
		},
		Genome: GenomeConfig{
			NumInputs:  2,
			NumOutputs: 1,

			WeightMutateRate:  0.8,
			WeightReplaceRate: 0.1,
			WeightMutatePower: 0.5,
			WeightMinValue:    -2.0,
			WeightMaxValue:    2.0,

			BiasMutateRate:  0.7,
			BiasReplaceRate: 0.1,
			BiasInitMean:    0.0,
			BiasInitStdev:   1.0,
			BiasMinValue:    -2.0,
			BiasMaxValue:    2.0,

			ActivationMutateRate: 0.1,
			EnabledMutateRate:    0.05,

			ConnAddProb: 0.1,
			NodeAddProb: 0.03,

			GeneDisableRate: 0.75,

			CompatibilityExcessCoefficient:   1.0,
			CompatibilityDisjointCoefficient: 1.0,
			CompatibilityWeightCoefficient:   0.4,
		},
		SpeciesSet: SpeciesSetConfig{
			CompatibilityThreshold: 3.0,
		},
		Stagnation: StagnationConfig{
			MaxStagnation:       15,
			SpeciesElitism:      2,
			BadSpeciesThreshold: 0.25,
		},
		Reproduction: ReproductionConfig{
			Elitism:           1,
			SurvivalThreshold: 0.5,
			MinSpeciesSize:    2,
			ParentSelection:   "rank",
		},
	}
}

// LoadConfig loads configuration parameters from an INI file.
// Keys absent from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
	}
	if err := cfg.Section("DefaultSpeciesSet").MapTo(&config.SpeciesSet); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultSpeciesSet] section: %w", err)
	}
	if err := cfg.Section("DefaultStagnation").MapTo(&config.Stagnation); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultStagnation] section: %w", err)
	}
	if err := cfg.Section("DefaultReproduction").MapTo(&config.Reproduction); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultReproduction] section: %w", err)
	}

	config.Reproduction.ParentSelection = cleanIniString(config.Reproduction.ParentSelection)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and relationships between parameters.
func (c *Config) Validate() error {
	if c.Neat.PopulationSize <= 0 {
		return fmt.Errorf("config error: population_size must be positive")
	}
	if c.Genome.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if c.Genome.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}

	rates := map[string]float64{
		"weight_mutate_rate":     c.Genome.WeightMutateRate,
		"weight_replace_rate":    c.Genome.WeightReplaceRate,
		"bias_mutate_rate":       c.Genome.BiasMutateRate,
		"bias_replace_rate":      c.Genome.BiasReplaceRate,
		"activation_mutate_rate": c.Genome.ActivationMutateRate,
		"enabled_mutate_rate":    c.Genome.EnabledMutateRate,
		"conn_add_prob":          c.Genome.ConnAddProb,
		"node_add_prob":          c.Genome.NodeAddProb,
		"gene_disable_rate":      c.Genome.GeneDisableRate,
		"survival_threshold":     c.Reproduction.SurvivalThreshold,
	}
	for name, v := range rates {
		if v < 0 || v > 1 {
			return fmt.Errorf("config error: %s must be between 0 and 1, got %v", name, v)
		}
	}

	if c.Genome.WeightMaxValue < c.Genome.WeightMinValue {
		return fmt.Errorf("config error: weight_max_value cannot be less than weight_min_value")
	}
	if c.Genome.BiasMaxValue < c.Genome.BiasMinValue {
		return fmt.Errorf("config error: bias_max_value cannot be less than bias_min_value")
	}
	if c.Genome.CompatibilityExcessCoefficient < 0 ||
		c.Genome.CompatibilityDisjointCoefficient < 0 ||
		c.Genome.CompatibilityWeightCoefficient < 0 {
		return fmt.Errorf("config error: compatibility coefficients cannot be negative")
	}
	if c.SpeciesSet.CompatibilityThreshold < 0 {
		return fmt.Errorf("config error: compatibility_threshold cannot be negative")
	}
	if c.Stagnation.MaxStagnation <= 0 {
		return fmt.Errorf("config error: max_stagnation must be positive")
	}
	if c.Stagnation.SpeciesElitism < 0 {
		return fmt.Errorf("config error: species_elitism cannot be negative")
	}
	if c.Reproduction.MinSpeciesSize <= 0 {
		return fmt.Errorf("config error: min_species_size must be positive")
	}
	if c.Reproduction.Elitism < 0 {
		return fmt.Errorf("config error: elitism cannot be negative")
	}

	switch strings.ToLower(c.Reproduction.ParentSelection) {
	case "rank", "uniform":
	default:
		return fmt.Errorf("config error: invalid parent_selection '%s', must be 'rank' or 'uniform'", c.Reproduction.ParentSelection)
	}

	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
