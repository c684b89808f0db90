package allocation

import (
	"sort"

	"github.com/google/uuid"

	"github.com/capflow/backend/internal/model"
)

// NoEligibleBankName is the placeholder name on results where no bank could
// serve the project.
const NoEligibleBankName = "No eligible bank"

// ForcedScore marks a manually pinned assignment whose score was never
// computed.
const ForcedScore = -1

// Optimize assigns a bank to every planned project. Banks are shallow-cloned
// into a working snapshot whose usedCapacity depletes as assignments commit,
// so later projects in the pass see reduced availability; the caller's slices
// are never mutated.
//
// Forced assignments are honored first and unconditionally, with no
// eligibility check; pairs referencing an unknown project or bank are skipped
// and produce no result. Remaining projects are processed most-constrained
// first (fewest eligible banks against the post-forced snapshot, computed once
// before any automatic assignment) and each receives its top-ranked eligible
// bank, or an explicit no-eligible result. A project with no eligible bank is
// a normal outcome, never an error.
//
// Result order: forced assignments in planned-project input order, then
// automatic assignments in constraint order. Callers wanting original project
// order must re-sort.
func (e *Engine) Optimize(
	banks []model.Bank,
	projects []model.Project,
	weights model.Weights,
	forced map[uuid.UUID]uuid.UUID,
) []model.OptimizationResult {
	planned := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		if p.Status == model.ProjectStatusPlanned {
			planned = append(planned, p)
		}
	}

	working := make([]model.Bank, len(banks))
	copy(working, banks)

	results := []model.OptimizationResult{}
	handled := make(map[uuid.UUID]bool)

	// Forced pass.
	for _, p := range planned {
		bankID, ok := forced[p.ID]
		if !ok {
			continue
		}
		idx := bankIndex(working, bankID)
		if idx < 0 {
			continue
		}
		working[idx].UsedCapacity = working[idx].UsedCapacity.Add(p.CapacityNeeded)
		handled[p.ID] = true

		id := working[idx].ID
		results = append(results, model.OptimizationResult{
			ProjectID:           p.ID,
			ProjectName:         p.Name,
			RecommendedBankID:   &id,
			RecommendedBankName: working[idx].Name,
			Score:               ForcedScore,
			Forced:              true,
		})
	}

	// Sequence remaining projects most-constrained first, using the full
	// eligibility predicate against the post-forced snapshot.
	type candidate struct {
		project       model.Project
		eligibleCount int
	}
	remaining := make([]candidate, 0, len(planned))
	for _, p := range planned {
		if handled[p.ID] {
			continue
		}
		remaining = append(remaining, candidate{
			project:       p,
			eligibleCount: e.countEligible(working, p, weights),
		})
	}
	sort.SliceStable(remaining, func(i, j int) bool {
		return remaining[i].eligibleCount < remaining[j].eligibleCount
	})

	// Automatic pass.
	for _, c := range remaining {
		ranked := e.Rank(working, c.project, weights)

		var best *model.RankedBank
		for i := range ranked {
			if ranked[i].Eligible {
				best = &ranked[i]
				break
			}
		}

		if best == nil {
			results = append(results, model.OptimizationResult{
				ProjectID:           c.project.ID,
				ProjectName:         c.project.Name,
				RecommendedBankName: NoEligibleBankName,
				Score:               0,
			})
			continue
		}

		idx := bankIndex(working, best.ID)
		working[idx].UsedCapacity = working[idx].UsedCapacity.Add(c.project.CapacityNeeded)

		id := best.ID
		results = append(results, model.OptimizationResult{
			ProjectID:           c.project.ID,
			ProjectName:         c.project.Name,
			RecommendedBankID:   &id,
			RecommendedBankName: best.Name,
			Score:               best.Score,
		})
	}

	return results
}

func (e *Engine) countEligible(banks []model.Bank, project model.Project, weights model.Weights) int {
	n := 0
	for _, r := range e.Rank(banks, project, weights) {
		if r.Eligible {
			n++
		}
	}
	return n
}

func bankIndex(banks []model.Bank, id uuid.UUID) int {
	for i := range banks {
		if banks[i].ID == id {
			return i
		}
	}
	return -1
}
