// Package allocation implements the bank-to-project ranking engine and the
// multi-project allocator. Both entry points are pure: they never mutate
// their inputs and are safe for concurrent invocations.
package allocation

import (
	"math"
	"sort"

	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/rating"
)

// Disqualification reasons, surfaced verbatim to users.
const (
	ReasonCountryCoverage   = "Does not operate in project country"
	ReasonSensitiveConflict = "Sensitive subject conflict"
	ReasonTenorInsufficient = "Max tenor insufficient"
	ReasonRatingBelowFloor  = "Credit rating below minimum"
	ReasonNoCapacity        = "No available capacity"
)

// localBonus is the flat uplift for banks that explicitly cover the project
// country (GLOBAL coverage does not count as local).
const localBonus = 0.05

// priceScaleBps linearly maps average pricing to [0,1]: 0 bps scores 1.0,
// anything at or above this many bps scores 0.
const priceScaleBps = 500

// Engine evaluates banks against projects using an injected rating scale.
type Engine struct {
	scale rating.Scale
}

func NewEngine(scale rating.Scale) *Engine {
	return &Engine{scale: scale}
}

// Rank evaluates every bank against the project and returns them sorted:
// eligible banks first, then descending score within each partition. Ties keep
// input order (stable sort). Ineligible banks carry a score of exactly 0 and
// the full list of reasons; every hard filter runs regardless of earlier
// failures.
func (e *Engine) Rank(banks []model.Bank, project model.Project, weights model.Weights) []model.RankedBank {
	ranked := make([]model.RankedBank, 0, len(banks))
	for _, bank := range banks {
		ranked = append(ranked, e.evaluate(bank, project, weights))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Eligible != ranked[j].Eligible {
			return ranked[i].Eligible
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func (e *Engine) evaluate(bank model.Bank, project model.Project, weights model.Weights) model.RankedBank {
	available := bank.AvailableCapacity()
	reasons := []string{}

	if !coversCountry(bank.Countries, project.Country) {
		reasons = append(reasons, ReasonCountryCoverage)
	}
	if subjectsConflict(project.ProjectType, bank.SensitiveSubjects) {
		reasons = append(reasons, ReasonSensitiveConflict)
	}
	if project.TenorRequired != nil && bank.MaxTenor != nil && *bank.MaxTenor < *project.TenorRequired {
		reasons = append(reasons, ReasonTenorInsufficient)
	}
	if !e.scale.Meets(bank.CreditRating, project.MinimumCreditRating) {
		reasons = append(reasons, ReasonRatingBelowFloor)
	}
	if !available.IsPositive() {
		reasons = append(reasons, ReasonNoCapacity)
	}
	eligible := len(reasons) == 0

	// Headroom beyond the exact need, scaled by the bank's own size.
	capacityScore := 0.0
	if bank.TotalCapacity.IsPositive() {
		capacityScore = available.Sub(project.CapacityNeeded).Div(bank.TotalCapacity).InexactFloat64()
	}
	capacityScore = math.Max(0, capacityScore)

	priceScore := 0.5 // neutral when no pricing is known
	if bank.AveragePrice != nil {
		priceScore = math.Max(0, 1-bank.AveragePrice.InexactFloat64()/priceScaleBps)
	}

	ratingScore := e.scale.Score(bank.CreditRating) / 10

	isLocal := contains(bank.Countries, project.Country) && !contains(bank.Countries, model.CountryGlobal)

	score := 0.0
	if eligible {
		score = weights.CapacityHeadroom*capacityScore +
			weights.PriceCompetitiveness*priceScore +
			weights.CreditRating*ratingScore
		if isLocal {
			score += localBonus
		}
	}

	return model.RankedBank{
		Bank:              bank,
		AvailableCapacity: available,
		Score:             round3(score),
		CapacityScore:     round3(capacityScore),
		PriceScore:        round3(priceScore),
		RatingScore:       round3(ratingScore),
		IsLocalBank:       isLocal,
		Eligible:          eligible,
		DisqualifyReasons: reasons,
	}
}

func coversCountry(countries []string, projectCountry string) bool {
	return contains(countries, model.CountryGlobal) || contains(countries, projectCountry)
}

// subjectsConflict reports whether the project's subject labels intersect the
// bank's exclusions. Either side being empty means no conflict.
func subjectsConflict(projectTypes, sensitiveSubjects []string) bool {
	if len(projectTypes) == 0 || len(sensitiveSubjects) == 0 {
		return false
	}
	for _, pt := range projectTypes {
		if contains(sensitiveSubjects, pt) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// round3 rounds to three decimals for stable display and comparison.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
