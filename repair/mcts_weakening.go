package repair

import (
	"context"
	"math/rand"

	"github.com/nodeadmin/dlrepair/config"
	"github.com/nodeadmin/dlrepair/mcs"
	"github.com/nodeadmin/dlrepair/mcts"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/weaken"
)

const (
	mctsBadBreadth   = 5
	mctsRolloutDepth = 20
	maxMctsSteps     = 200
)

// mctsMove pairs a chosen bad axiom with one of its weaker replacements
// (§4.8.6). Both fields are axiom String() forms so the move type stays
// comparable, as mcts.Game[S, M] requires.
type mctsMove struct {
	bad  string
	weak string
}

// mctsGame wraps one repair attempt as an mcts.Game[*ontology.Core,
// mctsMove] (§4.8.6): the state is an ontology, and one move both
// selects a bad axiom and picks its weaker replacement.
type mctsGame struct {
	predicate   Predicate
	weakener    *weaken.AxiomWeakener
	quality     Quality
	badStrategy config.BadAxiomStrategy
}

func (g *mctsGame) Moves(core *ontology.Core) []mctsMove {
	ok, err := g.predicate(core)
	if err != nil || ok {
		return nil
	}

	byKey, universe := refutableUniverse(core)
	if len(universe) == 0 {
		return nil
	}
	valid := validitySubset(core, g.predicate, byKey)

	bads := candidateBadAxioms(universe, valid, g.badStrategy, mctsBadBreadth)

	var moves []mctsMove
	for _, bk := range bads {
		weaker, err := g.weakener.WeakerAxioms(byKey[bk])
		if err != nil {
			continue
		}
		for _, w := range weaker {
			moves = append(moves, mctsMove{bad: bk, weak: w.String()})
		}
	}
	return moves
}

// candidateBadAxioms picks up to breadth distinct refutable axioms to
// branch on, using pickBadAxiom repeatedly with a deterministic RNG so
// the branching set is stable across repeated Moves calls on the same
// state (important since MCTS revisits the same node many times).
func candidateBadAxioms(universe []string, valid mcs.Consistency[string], strategy config.BadAxiomStrategy, breadth int) []string {
	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	var out []string
	for i := 0; i < breadth*4 && len(out) < breadth && len(out) < len(universe); i++ {
		k, err := pickBadAxiom(universe, valid, strategy, rng)
		if err != nil || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// Apply plays move against a fresh clone of core, leaving core itself
// untouched. The clone is intentionally never released: MCTS explores
// many short-lived lookahead states per real decision, and eagerly
// tracking/releasing every one would add bookkeeping disproportionate
// to a lookahead tree that's discarded after each step (see
// MctsWeakening, which only keeps the real core's mutations).
func (g *mctsGame) Apply(core *ontology.Core, move mctsMove) *ontology.Core {
	clone := core.Clone()
	byKey, _ := refutableUniverse(clone)
	bad, ok := byKey[move.bad]
	if !ok {
		return clone
	}
	weaker, err := g.weakener.WeakerAxioms(bad)
	if err != nil {
		return clone
	}
	for _, w := range weaker {
		if w.String() == move.weak {
			clone.Replace(bad, w)
			return clone
		}
	}
	return clone
}

func (g *mctsGame) Terminal(core *ontology.Core) (float64, bool) {
	ok, err := g.predicate(core)
	if err != nil || !ok {
		return 0, false
	}
	score, err := g.quality(core)
	if err != nil {
		return 0, false
	}
	return score, true
}

func (g *mctsGame) Rollout(core *ontology.Core, rng *rand.Rand) float64 {
	cur := core
	for i := 0; i < mctsRolloutDepth; i++ {
		if score, ok := g.Terminal(cur); ok {
			return score
		}
		moves := g.Moves(cur)
		if len(moves) == 0 {
			break
		}
		cur = g.Apply(cur, moves[rng.Intn(len(moves))])
	}
	score, err := g.quality(cur)
	if err != nil {
		return 0
	}
	return score
}

// MctsWeakening implements §4.8.6: at each step, run an MCTS search
// whose moves are (bad axiom, weaker replacement) pairs and whose
// terminal value is the quality score, then commit the search's chosen
// move directly against core. Repeats until the predicate holds.
func MctsWeakening(ctx context.Context, core *ontology.Core, predicate Predicate, weakener *weaken.AxiomWeakener, quality Quality, badStrategy config.BadAxiomStrategy, cfg mcts.Config, iterationsPerStep int, rng *rand.Rand) error {
	if quality == nil {
		quality = DefaultQuality
	}
	game := &mctsGame{predicate: predicate, weakener: weakener, quality: quality, badStrategy: badStrategy}

	return apply(core, predicate, func() error {
		for step := 0; ; step++ {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			ok, err := predicate(core)
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
			if step >= maxMctsSteps {
				return &NotReparable{Reason: "MCTS search did not converge within the step budget"}
			}

			tree := mcts.New[*ontology.Core, mctsMove](game, cfg, core)
			chosen, found := tree.Search(iterationsPerStep, rng)
			if !found {
				return &NotReparable{Reason: "no legal weakening move from the current state"}
			}

			byKey, _ := refutableUniverse(core)
			bad, present := byKey[chosen.bad]
			if !present {
				return &NotReparable{Reason: "chosen axiom no longer present"}
			}
			weaker, err := weakener.WeakerAxioms(bad)
			if err != nil {
				return err
			}
			applied := false
			for _, w := range weaker {
				if w.String() == chosen.weak {
					core.Replace(bad, w)
					applied = true
					break
				}
			}
			if !applied {
				return &NotReparable{Reason: "chosen weakening candidate no longer available"}
			}
		}
	})
}
