package repair

import (
	"context"
	"math/rand"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/nodeadmin/dlrepair/ontology"
	"github.com/nodeadmin/dlrepair/oracle"
	"github.com/nodeadmin/dlrepair/weaken"
)

// BestOfKWeakening implements §4.8.5: run k independent Weakening
// repairs in parallel, each on its own clone with its own oracle
// cache (so the per-worker reasoner calls don't serialize against one
// another, per §4.5), sharing the same reference weakener, and keep
// the result with the highest quality score.
//
// reasoner is used to give each worker clone an independent
// oracle.Cache (ontology.Core.CloneWithSeparateCache). seed derives
// one RNG per worker deterministically (§7 "BestOfK derives per-worker
// seeds deterministically"), which is what makes scenario S6's
// fixed-seed runs reproducible.
//
// The caller owns the returned Core (including releasing it); core
// itself is left untouched.
func BestOfKWeakening(ctx context.Context, core *ontology.Core, reasoner oracle.Reasoner, predicate Predicate, weakener *weaken.AxiomWeakener, opts WeakeningOptions, quality Quality, k int, seed int64) (*ontology.Core, error) {
	if quality == nil {
		quality = DefaultQuality
	}
	if k < 1 {
		k = 1
	}

	results := make([]*ontology.Core, k)
	scores := make([]float64, k)
	roundErrs := make([]error, k)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < k; i++ {
		i := i
		g.Go(func() error {
			clone := core.CloneWithSeparateCache(reasoner)
			workerRng := rand.New(rand.NewSource(seed + int64(i)))

			err := Weakening(gctx, clone, predicate, weakener, opts, workerRng, nil)
			if err != nil {
				var cancelled *Cancelled
				if errors.As(err, &cancelled) {
					clone.Release()
					return err // cancellation aborts the whole round, not just this worker
				}
				// §7: per-round failures (NotReparable, OracleFailure) are
				// recorded here, not returned; the worker contributes
				// nothing and BestOfK keeps going with the others.
				roundErrs[i] = err
				clone.Release()
				return nil
			}

			score, err := quality(clone)
			if err != nil {
				roundErrs[i] = err
				clone.Release()
				return nil
			}
			results[i] = clone
			scores[i] = score
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r != nil {
				r.Release()
			}
		}
		return nil, err
	}

	bestIdx := -1
	var combined error
	for i := 0; i < k; i++ {
		if results[i] == nil {
			if roundErrs[i] != nil {
				combined = multierr.Append(combined, roundErrs[i])
			}
			continue
		}
		if bestIdx == -1 || scores[i] > scores[bestIdx] {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, multierr.Append(combined, &ResourceExhausted{cause: errors.New("every BestOfKWeakening worker failed")})
	}

	for i := 0; i < k; i++ {
		if i != bestIdx && results[i] != nil {
			results[i].Release()
		}
	}
	return results[bestIdx], nil
}
