package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CountryGlobal is the pseudo country code meaning a bank operates everywhere.
// It satisfies country-coverage checks but never confers local-bank status.
const CountryGlobal = "GLOBAL"

type Bank struct {
	ID                uuid.UUID        `db:"id" json:"id"`
	Name              string           `db:"name" json:"name"`
	LogoURL           *string          `db:"logo_url" json:"logoUrl,omitempty"`
	CreditRating      *string          `db:"credit_rating" json:"creditRating,omitempty"`
	TotalCapacity     decimal.Decimal  `db:"total_capacity" json:"totalCapacity"`
	UsedCapacity      decimal.Decimal  `db:"used_capacity" json:"usedCapacity"`
	MaxTenor          *int             `db:"max_tenor" json:"maxTenor,omitempty"` // years
	AveragePrice      *decimal.Decimal `db:"average_price" json:"averagePrice,omitempty"` // basis points
	Countries         pq.StringArray   `db:"countries" json:"countries"`
	SensitiveSubjects pq.StringArray   `db:"sensitive_subjects" json:"sensitiveSubjects,omitempty"`
	LastUpdated       time.Time        `db:"last_updated" json:"lastUpdated"`
}

// AvailableCapacity is always recomputed, never stored. It goes negative when
// usedCapacity has been manually set above totalCapacity; consumers treat <= 0
// as "no capacity", not as an error.
func (b Bank) AvailableCapacity() decimal.Decimal {
	return b.TotalCapacity.Sub(b.UsedCapacity)
}

type ProjectStatus string

const (
	ProjectStatusPlanned ProjectStatus = "Planned"
	ProjectStatusIssued  ProjectStatus = "Issued"
)

type Project struct {
	ID                  uuid.UUID       `db:"id" json:"id"`
	Name                string          `db:"name" json:"name"`
	Country             string          `db:"country" json:"country"`
	CapacityNeeded      decimal.Decimal `db:"capacity_needed" json:"capacityNeeded"`
	TenorRequired       *int            `db:"tenor_required" json:"tenorRequired,omitempty"` // years
	ProjectType         pq.StringArray  `db:"project_type" json:"projectType,omitempty"`
	MinimumCreditRating *string         `db:"minimum_credit_rating" json:"minimumCreditRating,omitempty"`
	Status              ProjectStatus   `db:"status" json:"status"`
	PlannedIssuanceDate *time.Time      `db:"planned_issuance_date" json:"plannedIssuanceDate,omitempty"`
	IssuanceDate        *time.Time      `db:"issuance_date" json:"issuanceDate,omitempty"`
	AllocatedBankID     *uuid.UUID      `db:"allocated_bank_id" json:"allocatedBankId,omitempty"`
}

// Weights control the soft-scoring blend of the ranking engine. The settings
// service keeps them summing to 1.0; the engine uses them as given.
type Weights struct {
	CapacityHeadroom     float64 `json:"capacityHeadroom"`
	PriceCompetitiveness float64 `json:"priceCompetitiveness"`
	CreditRating         float64 `json:"creditRating"`
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.CapacityHeadroom + w.PriceCompetitiveness + w.CreditRating
}

type Settings struct {
	Weights           Weights        `json:"weights"`
	SensitiveSubjects pq.StringArray `json:"sensitiveSubjects"`
	Theme             string         `json:"theme"`
	HideCapacity      bool           `json:"hideCapacity"`
}

// DefaultSettings returns the out-of-the-box configuration used until the
// first explicit save.
func DefaultSettings() Settings {
	return Settings{
		Weights: Weights{
			CapacityHeadroom:     0.5,
			PriceCompetitiveness: 0.25,
			CreditRating:         0.25,
		},
		SensitiveSubjects: pq.StringArray{"Nuclear", "Coal"},
		Theme:             "light",
		HideCapacity:      false,
	}
}

// BankView is a Bank enriched with derived fields for API responses.
type BankView struct {
	Bank
	AvailableCapacity decimal.Decimal `json:"availableCapacity"`
	Regions           []string        `json:"regions"`
}

// RankedBank is a transient per-(bank, project) evaluation produced by the
// ranking engine. It is never persisted.
type RankedBank struct {
	Bank
	AvailableCapacity decimal.Decimal `json:"availableCapacity"`
	Score             float64         `json:"score"`
	CapacityScore     float64         `json:"capacityScore"`
	PriceScore        float64         `json:"priceScore"`
	RatingScore       float64         `json:"ratingScore"`
	IsLocalBank       bool            `json:"isLocalBank"`
	Eligible          bool            `json:"eligible"`
	DisqualifyReasons []string        `json:"disqualifyReasons"`
}

// OptimizationResult is one allocator decision for a planned project. A nil
// RecommendedBankID means no eligible bank existed; Score is -1 for forced
// assignments (not computed).
type OptimizationResult struct {
	ProjectID           uuid.UUID  `json:"projectId"`
	ProjectName         string     `json:"projectName"`
	RecommendedBankID   *uuid.UUID `json:"recommendedBankId,omitempty"`
	RecommendedBankName string     `json:"recommendedBankName"`
	Score               float64    `json:"score"`
	Forced              bool       `json:"forced,omitempty"`
}

// DashboardData aggregates portfolio-level capacity and pipeline figures.
type DashboardData struct {
	TotalCapacity      decimal.Decimal            `json:"totalCapacity"`
	TotalUsed          decimal.Decimal            `json:"totalUsed"`
	TotalAvailable     decimal.Decimal            `json:"totalAvailable"`
	UtilizationPercent float64                    `json:"utilizationPercent"`
	BankCount          int                        `json:"bankCount"`
	PlannedProjects    int                        `json:"plannedProjects"`
	IssuedProjects     int                        `json:"issuedProjects"`
	PipelineNeeded     decimal.Decimal            `json:"pipelineNeeded"`
	CapacityByCountry  map[string]decimal.Decimal `json:"capacityByCountry"`
}
