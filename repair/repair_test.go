package repair_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nodeadmin/dlrepair/config"
	"github.com/nodeadmin/dlrepair/cover"
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/mcts"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/oracle/miniel"
	"github.com/nodeadmin/dlrepair/repair"
	"github.com/nodeadmin/dlrepair/weaken"
)

// inconsistentCore builds a minimal inconsistent ontology: fido is
// asserted to be both a Dog and a Cat, but Dog and Cat are disjoint.
func inconsistentCore(static []expr.Axiom) *ontology.Core {
	refutable := []expr.Axiom{
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
		expr.ClassAssertion(expr.Atomic("Cat"), "fido"),
	}
	return ontology.New(miniel.New(), static, refutable)
}

func TestApplyReturnsNotReparableWhenStaticAxiomsAloneFail(t *testing.T) {
	static := []expr.Axiom{
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
		expr.ClassAssertion(expr.Atomic("Cat"), "fido"),
	}
	core := ontology.New(miniel.New(), static, nil)
	defer core.Release()

	err := repair.Removal(context.Background(), core, ontology.ConsistencyPredicate, config.Random, rand.New(rand.NewSource(1)), nil)
	var notReparable *repair.NotReparable
	require.ErrorAs(t, err, &notReparable)
}

func TestApplyReturnsNilWhenAlreadyRepaired(t *testing.T) {
	core := ontology.New(miniel.New(), nil, []expr.Axiom{
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Animal")),
	})
	defer core.Release()

	err := repair.Removal(context.Background(), core, ontology.ConsistencyPredicate, config.Random, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	require.Len(t, core.RefutableAxioms(), 1) // nothing removed, already consistent
}

func TestRemovalRepairsConsistency(t *testing.T) {
	core := inconsistentCore(nil)
	defer core.Release()

	err := repair.Removal(context.Background(), core, ontology.ConsistencyPredicate, config.Random, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	ok, err := core.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRandomMCSRepairsConsistency(t *testing.T) {
	core := inconsistentCore(nil)
	defer core.Release()

	err := repair.RandomMCS(context.Background(), core, ontology.ConsistencyPredicate, config.ComputeSomeMCS, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	ok, err := core.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBestMCSRepairsConsistency(t *testing.T) {
	core := inconsistentCore(nil)
	defer core.Release()

	err := repair.BestMCS(context.Background(), core, ontology.ConsistencyPredicate, config.ComputeAllMCS, repair.DefaultQuality)
	require.NoError(t, err)
	ok, err := core.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

// weakeningFixture: Dog and Cat are disjoint, but the refutable SubClassOf(Dog, Cat) forces a conflict
// once fido is asserted to be a Dog.
func weakeningFixture(t *testing.T) (*ontology.Core, *weaken.AxiomWeakener) {
	t.Helper()
	static := []expr.Axiom{
		expr.DisjointClasses(expr.Atomic("Dog"), expr.Atomic("Cat")),
		expr.ClassAssertion(expr.Atomic("Dog"), "fido"),
	}
	refutable := []expr.Axiom{
		expr.SubClassOf(expr.Atomic("Dog"), expr.Atomic("Cat")),
	}
	core := ontology.New(miniel.New(), static, refutable)

	lattice := ontology.New(miniel.New(), nil, nil)
	cc := cover.NewConceptCover(lattice, []expr.Concept{
		expr.Top(), expr.Bottom(), expr.Atomic("Dog"), expr.Atomic("Cat"),
	})
	rc := cover.NewRoleCover(lattice, nil, nil)
	w := weaken.NewWeakener(cc, rc, nil, weaken.NewRegularPreorder(), weaken.Flags{}, cover.IntUpCover, cover.IntDownCover)
	return core, w
}

func TestWeakeningGeneralizesSubClassOf(t *testing.T) {
	core, w := weakeningFixture(t)
	defer core.Release()

	opts := repair.WeakeningOptions{RefStrategy: config.OneMCS, BadAxiom: config.Random}
	err := repair.Weakening(context.Background(), core, ontology.ConsistencyPredicate, w, opts, rand.New(rand.NewSource(2)), nil)
	require.NoError(t, err)
	ok, err := core.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBestOfKWeakeningReturnsConsistentClone(t *testing.T) {
	defer goleak.VerifyNone(t)

	core, w := weakeningFixture(t)
	defer core.Release()

	opts := repair.WeakeningOptions{RefStrategy: config.OneMCS, BadAxiom: config.Random}
	best, err := repair.BestOfKWeakening(context.Background(), core, miniel.New(), ontology.ConsistencyPredicate, w, opts, repair.DefaultQuality, 3, 42)
	require.NoError(t, err)
	defer best.Release()

	ok, err := best.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMctsWeakeningRepairsConsistency(t *testing.T) {
	core, w := weakeningFixture(t)
	defer core.Release()

	cfg := mcts.Config{Exploration: 1.2, ExpansionThreshold: 1, VirtualLoss: 1}
	err := repair.MctsWeakening(context.Background(), core, ontology.ConsistencyPredicate, w, repair.DefaultQuality, config.Random, cfg, 20, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	ok, err := core.IsConsistent()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRemovalRespectsCancellation(t *testing.T) {
	core := inconsistentCore(nil)
	defer core.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repair.Removal(ctx, core, ontology.ConsistencyPredicate, config.Random, rand.New(rand.NewSource(1)), nil)
	var cancelled *repair.Cancelled
	require.ErrorAs(t, err, &cancelled)
}
