package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/nodeadmin/dlrepair/config"
	"github.com/nodeadmin/dlrepair/cover"
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/mcts"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/oracle"
	"github.com/nodeadmin/dlrepair/oracle/miniel"
	"github.com/nodeadmin/dlrepair/progress"
	"github.com/nodeadmin/dlrepair/refine"
	"github.com/nodeadmin/dlrepair/repair"
	"github.com/nodeadmin/dlrepair/weaken"
)

var (
	fixturePath string
	strategy    string
	outputPath  string
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair a fixture.yaml ontology's refutable axioms until it is consistent",
	RunE:  runRepair,
}

func init() {
	repairCmd.Flags().StringVarP(&fixturePath, "fixture", "f", "", "path to a fixture.yaml ontology (required)")
	repairCmd.Flags().StringVarP(&strategy, "strategy", "s", "removal", "one of: removal, random-mcs, best-mcs, weakening, bestofk, mcts")
	repairCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the repaired axiom set here as YAML (default: stdout)")
	repairCmd.MarkFlagRequired("fixture")
}

func weakenerFlags(f config.WeakenerFlags) weaken.Flags {
	return weaken.Flags{
		Flags: refine.Flags{
			ALCStrict:          f.ALCStrict,
			SROIQStrict:        f.SROIQStrict,
			NNFStrict:          f.NNFStrict,
			OWL2SingleOperands: f.OWL2SingleOperands,
		},
		SimpleRolesStrict: f.SimpleRolesStrict,
		NoRoleRefinement:  f.NoRoleRefinement,
		Strict:            f.Strict,
	}
}

func mctsConfig(c config.MCTSConfig) mcts.Config {
	return mcts.Config{
		Exploration:        c.ExplorationConstant,
		RAVEBalance:        c.RAVEBalance,
		ExpansionThreshold: c.ExpansionThreshold,
		VirtualLoss:        c.VirtualLoss,
	}
}

// buildWeakener derives a reference concept/role taxonomy from core's
// own signature (atomic concepts plus Top/Bottom, named roles with no
// declared simple-role restrictions) and builds an AxiomWeakener over
// it. The harness has no richer domain declaration than what the
// fixture's axioms already mention.
func buildWeakener(reasoner oracle.Reasoner, core *ontology.Core, flags config.WeakenerFlags) *weaken.AxiomWeakener {
	sig := core.Signature()

	concepts := []expr.Concept{expr.Top(), expr.Bottom()}
	names := make([]string, 0, len(sig.Concepts))
	for name := range sig.Concepts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, n := range names {
		concepts = append(concepts, expr.Atomic(n))
	}

	roleNames := make([]string, 0, len(sig.Roles))
	for name := range sig.Roles {
		roleNames = append(roleNames, name)
	}
	sort.Strings(roleNames)
	roles := make([]expr.Role, len(roleNames))
	for i, n := range roleNames {
		roles[i] = expr.NamedRole(n)
	}

	lattice := ontology.New(reasoner, core.AllAxioms(), nil)
	cc := cover.NewConceptCover(lattice, concepts)
	rc := cover.NewRoleCover(lattice, roles, nil)
	return weaken.NewWeakener(cc, rc, nil, weaken.NewRegularPreorder(), weakenerFlags(flags), cover.IntUpCover, cover.IntDownCover)
}

func runRepair(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	static, refutable, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	reasoner := miniel.New()
	core := ontology.New(reasoner, static, refutable)
	defer core.Release()

	rng := rand.New(rand.NewSource(cfg.Seed))
	ctx := context.Background()
	predicate := ontology.ConsistencyPredicate
	progressSink := sink()

	logger.Info("starting repair",
		zap.String("strategy", strategy),
		zap.Int("static", len(static)),
		zap.Int("refutable", len(refutable)),
	)

	switch strategy {
	case "removal":
		err = repair.Removal(ctx, core, predicate, cfg.BadAxiom, rng, progressSink)

	case "random-mcs":
		err = repair.RandomMCS(ctx, core, predicate, cfg.MCSStrategy, rng)

	case "best-mcs":
		err = repair.BestMCS(ctx, core, predicate, cfg.MCSStrategy, repair.DefaultQuality)

	case "weakening":
		w := buildWeakener(reasoner, core, cfg.Weakener)
		opts := repair.WeakeningOptions{RefStrategy: cfg.RefOntology, BadAxiom: cfg.BadAxiom}
		err = repair.Weakening(ctx, core, predicate, w, opts, rng, progressSink)

	case "bestofk":
		w := buildWeakener(reasoner, core, cfg.Weakener)
		opts := repair.WeakeningOptions{RefStrategy: cfg.RefOntology, BadAxiom: cfg.BadAxiom}
		var best *ontology.Core
		best, err = repair.BestOfKWeakening(ctx, core, reasoner, predicate, w, opts, repair.DefaultQuality, cfg.K, cfg.Seed)
		if err == nil {
			defer best.Release()
			return writeResult(best)
		}

	case "mcts":
		w := buildWeakener(reasoner, core, cfg.Weakener)
		err = repair.MctsWeakening(ctx, core, predicate, w, repair.DefaultQuality, cfg.BadAxiom, mctsConfig(cfg.MCTS), cfg.MCTS.Iterations, rng)

	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}

	if err != nil {
		return err
	}
	return writeResult(core)
}

// resultFixture mirrors fixtureFile's shape so the repaired axiom set
// can be written back out in the same toy format it was read in.
type resultFixture struct {
	Static    []string `yaml:"static"`
	Refutable []string `yaml:"refutable"`
}

func writeResult(core *ontology.Core) error {
	staticStrs := axiomStrings(core.StaticAxioms())
	refutableStrs := axiomStrings(core.RefutableAxioms())
	out := resultFixture{Static: staticStrs, Refutable: refutableStrs}

	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func axiomStrings(axioms []expr.Axiom) []string {
	out := make([]string, len(axioms))
	for i, a := range axioms {
		out[i] = a.String()
	}
	sort.Strings(out)
	return out
}
