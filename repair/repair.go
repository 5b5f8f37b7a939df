// Package repair implements the repair algorithms (§4.1 Component 12,
// §4.8): Removal, RandomMCS, BestMCS, Weakening, BestOfKWeakening and
// MctsWeakening, all built over the shared `apply` skeleton from §4.8:
// verify the predicate holds over staticAxioms alone, return early if
// already repaired, otherwise run the strategy-specific loop.
package repair

import (
	"context"
	"math/rand"
	"sort"

	"github.com/pkg/errors"

	"github.com/nodeadmin/dlrepair/config"
	"github.com/nodeadmin/dlrepair/expr"
	"github.com/nodeadmin/dlrepair/mcs"
	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/progress"
	"github.com/nodeadmin/dlrepair/setofsets"
	"github.com/nodeadmin/dlrepair/weaken"
)

// Predicate is a repair goal (§6 "Repair goals"): consistency,
// coherence, entailment-removal, concept-satisfiability are all
// expressible as a Predicate over a *ontology.Core.
type Predicate func(core *ontology.Core) (bool, error)

// Quality scores a candidate repaired ontology; higher is better
// (§4.8.3 "score each post-removal ontology with a user-supplied
// quality function").
type Quality func(core *ontology.Core) (float64, error)

// DefaultQuality counts entailed atomic subsumptions between distinct
// named concepts in the signature (§4.8.3 "default: count of entailed
// atomic subsumptions").
func DefaultQuality(core *ontology.Core) (float64, error) {
	sig := core.Signature()
	names := make([]string, 0, len(sig.Concepts))
	for name := range sig.Concepts {
		names = append(names, name)
	}
	sort.Strings(names)

	count := 0.0
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			ok, err := core.IsEntailed(expr.SubClassOf(expr.Atomic(a), expr.Atomic(b)))
			if err != nil {
				return 0, err
			}
			if ok {
				count++
			}
		}
	}
	return count, nil
}

const (
	mcsSampleSize          = 5
	musSampleSize          = 5
	maxWeakeningIterations = 10000
)

func checkCancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return &Cancelled{}
	default:
		return nil
	}
}

// apply is the shared repair skeleton (§4.8):
//  1. verify the predicate holds over staticAxioms alone;
//  2. return immediately if core already satisfies the predicate;
//  3. delegate to the strategy-specific repairFn.
func apply(core *ontology.Core, predicate Predicate, repairFn func() error) error {
	staticOnly := core.CloneWithRefutable(nil)
	ok, err := predicate(staticOnly)
	staticOnly.Release()
	if err != nil {
		return err
	}
	if !ok {
		return &NotReparable{Reason: "static axioms alone fail the predicate"}
	}

	ok, err = predicate(core)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	return repairFn()
}

// refutableUniverse snapshots core's refutable axioms as a key→axiom
// map plus the sorted key list, the form every MinimalSubsets/
// MaximalConsistentSubsets call in this package operates over
// (setofsets.Ordered requires a totally ordered element type, so
// axioms are addressed by their canonical String()).
func refutableUniverse(core *ontology.Core) (map[string]expr.Axiom, []string) {
	refs := core.RefutableAxioms()
	byKey := make(map[string]expr.Axiom, len(refs))
	universe := make([]string, 0, len(refs))
	for _, a := range refs {
		k := a.String()
		byKey[k] = a
		universe = append(universe, k)
	}
	sort.Strings(universe)
	return byKey, universe
}

func axiomsFor(byKey map[string]expr.Axiom, keys []string) []expr.Axiom {
	out := make([]expr.Axiom, 0, len(keys))
	for _, k := range keys {
		out = append(out, byKey[k])
	}
	return out
}

func complementKeys(universe, kept []string) []string {
	keep := make(map[string]bool, len(kept))
	for _, k := range kept {
		keep[k] = true
	}
	var out []string
	for _, k := range universe {
		if !keep[k] {
			out = append(out, k)
		}
	}
	return out
}

// applyKeptSet removes from core every refutable axiom in universe
// that is not in kept.
func applyKeptSet(core *ontology.Core, byKey map[string]expr.Axiom, universe, kept []string) {
	for _, k := range complementKeys(universe, kept) {
		core.Remove(byKey[k])
	}
}

// validitySubset builds the mcs.Consistency predicate for core's
// current refutable axioms: a candidate kept-set is valid iff
// replacing the refutable partition with just those axioms satisfies
// predicate.
func validitySubset(core *ontology.Core, predicate Predicate, byKey map[string]expr.Axiom) mcs.Consistency[string] {
	return func(kept []string) (bool, error) {
		tmp := core.CloneWithRefutable(axiomsFor(byKey, kept))
		defer tmp.Release()
		return predicate(tmp)
	}
}

func frequency(universe []string, sets [][]string) map[string]int {
	freq := make(map[string]int, len(universe))
	for _, s := range sets {
		for _, k := range s {
			freq[k]++
		}
	}
	return freq
}

func extremeFreqKey(universe []string, freq map[string]int, wantMax bool) string {
	best := universe[0]
	bestFreq := freq[best]
	for _, k := range universe[1:] {
		f := freq[k]
		if (wantMax && f > bestFreq) || (!wantMax && f < bestFreq) {
			best, bestFreq = k, f
		}
	}
	return best
}

func sampleMUSes(universe []string, valid mcs.Consistency[string], tries int, rng *rand.Rand) ([][]string, error) {
	seen := setofsets.New[string]()
	var out [][]string
	shuffled := append([]string(nil), universe...)
	for i := 0; i < tries; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		found, ok, err := mcs.MinimalUnsatisfiableSubset(shuffled, valid)
		if err != nil {
			return nil, err
		}
		if !ok || len(found) == 0 {
			continue
		}
		if seen.Contains(found) {
			continue
		}
		seen.Insert(found)
		out = append(out, found)
	}
	return out, nil
}

// pickBadAxiom selects one refutable axiom key per §4.8.1/§4.8.4's
// BadAxiomStrategy table. The sampling strategies draw a bounded number
// of MUSes/MCSes (mcsSampleSize/musSampleSize); InMostMUS and InLeastMCS
// rank by membership frequency, while NotInSomeMCS and InSomeMUS pick
// uniformly among the axioms that qualify on the sample.
func pickBadAxiom(universe []string, valid mcs.Consistency[string], strategy config.BadAxiomStrategy, rng *rand.Rand) (string, error) {
	if len(universe) == 0 {
		return "", &NotReparable{Reason: "no refutable axioms remain"}
	}
	fallback := func() string { return universe[rng.Intn(len(universe))] }

	switch strategy {
	case config.Random, "":
		return fallback(), nil

	case config.NotInOneMCS:
		one, ok, err := mcs.SomeMCS(universe, valid)
		if err != nil {
			return "", err
		}
		if !ok {
			return fallback(), nil
		}
		removed := complementKeys(universe, one)
		if len(removed) == 0 {
			return fallback(), nil
		}
		return removed[rng.Intn(len(removed))], nil

	case config.NotInLargestMCS:
		largest, ok, err := mcs.LargestMCS(universe, valid)
		if err != nil {
			return "", err
		}
		if !ok {
			return fallback(), nil
		}
		removed := complementKeys(universe, largest)
		if len(removed) == 0 {
			return fallback(), nil
		}
		return removed[rng.Intn(len(removed))], nil

	case config.NotInSomeMCS:
		samples, err := mcs.MaximalConsistentSubsets(universe, valid, mcsSampleSize)
		if err != nil {
			return "", err
		}
		if len(samples) == 0 {
			return fallback(), nil
		}
		freq := frequency(universe, samples)
		var candidates []string
		for _, k := range universe {
			if freq[k] < len(samples) {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) == 0 {
			return fallback(), nil
		}
		return candidates[rng.Intn(len(candidates))], nil

	case config.InLeastMCS:
		samples, err := mcs.MaximalConsistentSubsets(universe, valid, mcsSampleSize)
		if err != nil {
			return "", err
		}
		if len(samples) == 0 {
			return fallback(), nil
		}
		return extremeFreqKey(universe, frequency(universe, samples), false), nil

	case config.InOneMUS:
		found, ok, err := mcs.MinimalUnsatisfiableSubset(universe, valid)
		if err != nil {
			return "", err
		}
		if !ok || len(found) == 0 {
			return fallback(), nil
		}
		return found[rng.Intn(len(found))], nil

	case config.InSomeMUS:
		samples, err := sampleMUSes(universe, valid, musSampleSize, rng)
		if err != nil {
			return "", err
		}
		union := frequency(universe, samples)
		var candidates []string
		for _, k := range universe {
			if union[k] > 0 {
				candidates = append(candidates, k)
			}
		}
		if len(candidates) == 0 {
			return fallback(), nil
		}
		return candidates[rng.Intn(len(candidates))], nil

	case config.InMostMUS:
		samples, err := sampleMUSes(universe, valid, musSampleSize, rng)
		if err != nil {
			return "", err
		}
		if len(samples) == 0 {
			return fallback(), nil
		}
		return extremeFreqKey(universe, frequency(universe, samples), true), nil

	default:
		return "", errors.Errorf("repair: unknown BadAxiomStrategy %q", strategy)
	}
}

// computeMCSCandidates enumerates kept-sets per §6's
// McsComputationStrategy: one, a bounded sample, or all.
func computeMCSCandidates(universe []string, valid mcs.Consistency[string], strategy config.McsComputationStrategy) ([][]string, error) {
	switch strategy {
	case config.ComputeOneMCS, "":
		one, ok, err := mcs.SomeMCS(universe, valid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return [][]string{one}, nil
	case config.ComputeAllMCS:
		return mcs.MaximalConsistentSubsets(universe, valid, 0)
	default: // config.ComputeSomeMCS
		return mcs.MaximalConsistentSubsets(universe, valid, mcsSampleSize)
	}
}

func intersectKeySets(sets [][]string) []string {
	if len(sets) == 0 {
		return nil
	}
	counts := frequency(nil, sets)
	var out []string
	for k, c := range counts {
		if c == len(sets) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// referenceAxioms picks the reference kept-set for Weakening/
// BestOfKWeakening per §4.8.4's RefOntologyStrategy table.
func referenceAxioms(universe []string, valid mcs.Consistency[string], strategy config.RefOntologyStrategy, rng *rand.Rand) ([]string, error) {
	switch strategy {
	case config.OneMCS, "":
		one, ok, err := mcs.SomeMCS(universe, valid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotReparable{Reason: "no consistent subset of refutable axioms exists"}
		}
		return one, nil

	case config.RandomMCS:
		shuffled := append([]string(nil), universe...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		one, ok, err := mcs.SomeMCS(shuffled, valid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotReparable{Reason: "no consistent subset of refutable axioms exists"}
		}
		return one, nil

	case config.LargestMCS:
		largest, ok, err := mcs.LargestMCS(universe, valid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &NotReparable{Reason: "no consistent subset of refutable axioms exists"}
		}
		return largest, nil

	case config.SomeMCS:
		candidates, err := mcs.MaximalConsistentSubsets(universe, valid, mcsSampleSize)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			return nil, &NotReparable{Reason: "no consistent subset of refutable axioms exists"}
		}
		return candidates[0], nil

	case config.IntersectionOfMCS:
		candidates, err := mcs.MaximalConsistentSubsets(universe, valid, 0)
		if err != nil {
			return nil, err
		}
		return intersectKeySets(candidates), nil

	case config.IntersectionOfSomeMCS:
		candidates, err := mcs.MaximalConsistentSubsets(universe, valid, mcsSampleSize)
		if err != nil {
			return nil, err
		}
		return intersectKeySets(candidates), nil

	default:
		return nil, errors.Errorf("repair: unknown RefOntologyStrategy %q", strategy)
	}
}

// Removal implements §4.8.1: repeatedly remove a bad axiom (chosen by
// strategy) until predicate holds.
func Removal(ctx context.Context, core *ontology.Core, predicate Predicate, strategy config.BadAxiomStrategy, rng *rand.Rand, sink progress.Sink) error {
	if sink == nil {
		sink = progress.Noop()
	}
	return apply(core, predicate, func() error {
		for {
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

			byKey, universe := refutableUniverse(core)
			valid := validitySubset(core, predicate, byKey)
			key, err := pickBadAxiom(universe, valid, strategy, rng)
			if err != nil {
				return err
			}
			sink.Debug("removing axiom", progress.F("axiom", key))
			core.Remove(byKey[key])
		}
	})
}

// RandomMCS implements §4.8.2: compute correction sets, pick one
// uniformly at random, remove it.
func RandomMCS(ctx context.Context, core *ontology.Core, predicate Predicate, strategy config.McsComputationStrategy, rng *rand.Rand) error {
	return apply(core, predicate, func() error {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		byKey, universe := refutableUniverse(core)
		valid := validitySubset(core, predicate, byKey)
		candidates, err := computeMCSCandidates(universe, valid, strategy)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return &NotReparable{Reason: "no maximal consistent subset found"}
		}
		chosen := candidates[rng.Intn(len(candidates))]
		applyKeptSet(core, byKey, universe, chosen)
		return nil
	})
}

// BestMCS implements §4.8.3: enumerate correction sets, score each
// resulting ontology with quality, keep the best.
func BestMCS(ctx context.Context, core *ontology.Core, predicate Predicate, strategy config.McsComputationStrategy, quality Quality) error {
	if quality == nil {
		quality = DefaultQuality
	}
	return apply(core, predicate, func() error {
		byKey, universe := refutableUniverse(core)
		valid := validitySubset(core, predicate, byKey)
		candidates, err := computeMCSCandidates(universe, valid, strategy)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return &NotReparable{Reason: "no maximal consistent subset found"}
		}

		bestIdx := -1
		bestScore := 0.0
		for i, cand := range candidates {
			if err := checkCancelled(ctx); err != nil {
				return err
			}
			tmp := core.CloneWithRefutable(axiomsFor(byKey, cand))
			score, err := quality(tmp)
			tmp.Release()
			if err != nil {
				return err
			}
			if bestIdx == -1 || score > bestScore {
				bestIdx, bestScore = i, score
			}
		}
		applyKeptSet(core, byKey, universe, candidates[bestIdx])
		return nil
	})
}

// WeakeningOptions configures Weakening and BestOfKWeakening (§4.8.4).
type WeakeningOptions struct {
	RefStrategy config.RefOntologyStrategy
	BadAxiom    config.BadAxiomStrategy
	// EnhanceRef promotes the reference axiom set to static before
	// repair, so it cannot itself be weakened further (§4.8.4
	// "enhanceRef=true").
	EnhanceRef bool
}

// Weakening implements §4.8.4: pick a reference set, then loop
// sampling a bad axiom and a weaker replacement from weakener until the
// predicate holds.
func Weakening(ctx context.Context, core *ontology.Core, predicate Predicate, weakener *weaken.AxiomWeakener, opts WeakeningOptions, rng *rand.Rand, sink progress.Sink) error {
	if sink == nil {
		sink = progress.Noop()
	}
	return apply(core, predicate, func() error {
		byKey, universe := refutableUniverse(core)
		valid := validitySubset(core, predicate, byKey)
		refKeys, err := referenceAxioms(universe, valid, opts.RefStrategy, rng)
		if err != nil {
			return err
		}
		if opts.EnhanceRef {
			for _, k := range refKeys {
				core.AddStatic(byKey[k])
			}
		}

		for iter := 0; ; iter++ {
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
			if iter >= maxWeakeningIterations {
				return &NotReparable{Reason: "weakening did not converge within the iteration budget"}
			}

			byKey, universe = refutableUniverse(core)
			valid = validitySubset(core, predicate, byKey)
			badKey, err := pickBadAxiom(universe, valid, opts.BadAxiom, rng)
			if err != nil {
				return err
			}
			bad := byKey[badKey]

			candidates, err := weakener.WeakerAxioms(bad)
			if err != nil {
				var notSupported *weaken.NotSupported
				if errors.As(err, &notSupported) {
					sink.Debug("weakening unsupported, removing instead", progress.F("axiom", badKey))
					core.Remove(bad)
					continue
				}
				return err
			}
			if len(candidates) == 0 {
				core.Remove(bad)
				continue
			}
			chosen := candidates[rng.Intn(len(candidates))]
			sink.Debug("weakening candidate chosen", progress.F("from", badKey), progress.F("to", chosen.String()))
			core.Replace(bad, chosen)
		}
	})
}
