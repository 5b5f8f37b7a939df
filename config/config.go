// Package config loads the repair-loop's tunables (§7): which strategy
// enums a Weakening repair uses to pick a reference ontology and a bad
// axiom, the MCS computation breadth, BestOfK's worker count, the MCTS
// search constants, and the RNG seed that makes S6-style runs
// reproducible.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RefOntologyStrategy selects which axiom subset a Weakening repair
// treats as the "reference" ontology to diff against (§4.8.3).
type RefOntologyStrategy string

const (
	OneMCS                RefOntologyStrategy = "ONE_MCS"
	RandomMCS             RefOntologyStrategy = "RANDOM_MCS"
	SomeMCS               RefOntologyStrategy = "SOME_MCS"
	LargestMCS            RefOntologyStrategy = "LARGEST_MCS"
	IntersectionOfMCS     RefOntologyStrategy = "INTERSECTION_OF_MCS"
	IntersectionOfSomeMCS RefOntologyStrategy = "INTERSECTION_OF_SOME_MCS"
)

// BadAxiomStrategy selects which refutable axiom Removal/Weakening picks
// as the next one to repair (§4.8.1, §4.8.4).
type BadAxiomStrategy string

const (
	Random          BadAxiomStrategy = "RANDOM"
	InOneMUS        BadAxiomStrategy = "IN_ONE_MUS"
	InSomeMUS       BadAxiomStrategy = "IN_SOME_MUS"
	InMostMUS       BadAxiomStrategy = "IN_MOST_MUS"
	InLeastMCS      BadAxiomStrategy = "IN_LEAST_MCS"
	NotInOneMCS     BadAxiomStrategy = "NOT_IN_ONE_MCS"
	NotInSomeMCS    BadAxiomStrategy = "NOT_IN_SOME_MCS"
	NotInLargestMCS BadAxiomStrategy = "NOT_IN_LARGEST_MCS"
)

// McsComputationStrategy bounds how many minimal correction sets a
// strategy computes before picking one (§4.8.3, §4.8.4).
type McsComputationStrategy string

const (
	ComputeOneMCS  McsComputationStrategy = "ONE_MCS"
	ComputeSomeMCS McsComputationStrategy = "SOME_MCS"
	ComputeAllMCS  McsComputationStrategy = "ALL_MCS"
)

// WeakenerFlags mirrors weaken.Flags in YAML-decodable form; cmd/dlrepair
// translates it into a weaken.Flags when constructing an AxiomWeakener.
type WeakenerFlags struct {
	ALCStrict          bool `yaml:"alc_strict"`
	SROIQStrict        bool `yaml:"sroiq_strict"`
	NNFStrict          bool `yaml:"nnf_strict"`
	OWL2SingleOperands bool `yaml:"owl2_single_operands"`
	SimpleRolesStrict  bool `yaml:"simple_roles_strict"`
	NoRoleRefinement   bool `yaml:"no_role_refinement"`
	Strict             bool `yaml:"strict"`
}

// MCTSConfig holds the UCB1+RAVE tuning constants for MctsWeakening
// (§4.10).
type MCTSConfig struct {
	// ExplorationConstant is the UCB1 "C" coefficient.
	ExplorationConstant float64 `yaml:"exploration_constant"`
	// RAVEBalance is beta in rave_weight = m/(c+m+4*beta^2*c*m).
	RAVEBalance float64 `yaml:"rave_balance"`
	// ExpansionThreshold is the visit count at which a leaf expands.
	ExpansionThreshold int `yaml:"expansion_threshold"`
	// VirtualLoss is added to a node's visit count on selection and
	// subtracted again once the real visit is backpropagated.
	VirtualLoss int `yaml:"virtual_loss"`
	// Iterations is the number of search iterations MctsWeakening runs
	// at each step before committing the search's chosen move.
	Iterations int `yaml:"iterations"`
}

// RepairConfig is the top-level, YAML-decodable configuration for a
// repair run (§7).
type RepairConfig struct {
	RefOntology RefOntologyStrategy     `yaml:"ref_ontology_strategy"`
	BadAxiom    BadAxiomStrategy        `yaml:"bad_axiom_strategy"`
	MCSStrategy McsComputationStrategy  `yaml:"mcs_computation_strategy"`
	Weakener    WeakenerFlags           `yaml:"weakener_flags"`
	// K is the number of parallel workers BestOfKWeakening launches.
	K    int        `yaml:"k"`
	MCTS MCTSConfig `yaml:"mcts"`
	// Seed is the single seedable RNG seed a repair instance derives
	// all per-worker seeds from (§7 "Randomness").
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration a repair run uses when no file is
// supplied: BestMCS-flavored defaults and a fixed seed for
// reproducibility.
func Default() *RepairConfig {
	return &RepairConfig{
		RefOntology: LargestMCS,
		BadAxiom:    NotInLargestMCS,
		MCSStrategy: ComputeSomeMCS,
		Weakener:    WeakenerFlags{},
		K:           4,
		MCTS: MCTSConfig{
			ExplorationConstant: 1.41421356,
			RAVEBalance:         0.01,
			ExpansionThreshold:  1,
			VirtualLoss:         3,
			Iterations:          1000,
		},
		Seed: 1,
	}
}

// Load reads path and decodes it over Default(). A missing file is not
// an error: Load returns the defaults unchanged, matching the pattern
// of tools that work out-of-the-box and only need a config file for
// overrides.
func Load(path string) (*RepairConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "config: read %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config: parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save marshals cfg as YAML to path.
func (c *RepairConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "config: marshal")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "config: write %s", path)
	}
	return nil
}

// Validate rejects configurations that would make BestOfK or MCTS
// malfunction rather than merely behave conservatively.
func (c *RepairConfig) Validate() error {
	if c.K < 1 {
		return errors.Errorf("config: k must be >= 1, got %d", c.K)
	}
	if c.MCTS.ExpansionThreshold < 1 {
		return errors.Errorf("config: mcts.expansion_threshold must be >= 1, got %d", c.MCTS.ExpansionThreshold)
	}
	if c.MCTS.VirtualLoss < 0 {
		return errors.Errorf("config: mcts.virtual_loss must be >= 0, got %d", c.MCTS.VirtualLoss)
	}
	if c.MCTS.Iterations < 1 {
		return errors.Errorf("config: mcts.iterations must be >= 1, got %d", c.MCTS.Iterations)
	}
	return nil
}
