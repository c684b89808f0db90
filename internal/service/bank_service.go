package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/capflow/backend/internal/apperror"
	"github.com/capflow/backend/internal/country"
	"github.com/capflow/backend/internal/model"
	"github.com/capflow/backend/internal/rating"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// defaultAveragePrice is assumed for banks created without pricing data, in
// basis points.
var defaultAveragePrice = decimal.NewFromInt(50)

// BankRepositoryInterface defines the contract for bank data access.
// Implementations must be safe for concurrent use.
type BankRepositoryInterface interface {
	Create(ctx context.Context, bank *model.Bank) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error)
	List(ctx context.Context) ([]model.Bank, error)
	Update(ctx context.Context, bank *model.Bank) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BankService handles business logic for counterparty bank management.
type BankService struct {
	repo  BankRepositoryInterface
	scale rating.Scale
}

// NewBankService creates a new BankService with the given repository.
func NewBankService(repo BankRepositoryInterface, scale rating.Scale) *BankService {
	return &BankService{repo: repo, scale: scale}
}

type CreateBankInput struct {
	Name              string           `json:"name" validate:"required"`
	LogoURL           *string          `json:"logoUrl"`
	CreditRating      *string          `json:"creditRating"`
	TotalCapacity     decimal.Decimal  `json:"totalCapacity"`
	UsedCapacity      decimal.Decimal  `json:"usedCapacity"`
	MaxTenor          *int             `json:"maxTenor" validate:"omitempty,min=1"`
	AveragePrice      *decimal.Decimal `json:"averagePrice"`
	Countries         []string         `json:"countries" validate:"required,min=1"`
	SensitiveSubjects []string         `json:"sensitiveSubjects"`
}

type UpdateBankInput struct {
	Name              string           `json:"name" validate:"required"`
	LogoURL           *string          `json:"logoUrl"`
	CreditRating      *string          `json:"creditRating"`
	TotalCapacity     decimal.Decimal  `json:"totalCapacity"`
	UsedCapacity      decimal.Decimal  `json:"usedCapacity"`
	MaxTenor          *int             `json:"maxTenor" validate:"omitempty,min=1"`
	AveragePrice      *decimal.Decimal `json:"averagePrice"`
	Countries         []string         `json:"countries" validate:"required,min=1"`
	SensitiveSubjects []string         `json:"sensitiveSubjects"`
}

func (s *BankService) validateRating(r *string) error {
	if r == nil || *r == "" {
		return nil
	}
	if !s.scale.Known(*r) {
		return apperror.ValidationError("creditRating", fmt.Sprintf("unknown credit rating %q", *r))
	}
	return nil
}

// Create registers a new bank. Average price defaults to 50 bps when not
// provided so the ranking engine never sees a bank without pricing.
func (s *BankService) Create(ctx context.Context, input CreateBankInput) (*model.BankView, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := s.validateRating(input.CreditRating); err != nil {
		return nil, err
	}
	if input.TotalCapacity.IsNegative() {
		return nil, apperror.ValidationError("totalCapacity", "total capacity cannot be negative")
	}

	bank := &model.Bank{
		Name:              input.Name,
		LogoURL:           input.LogoURL,
		CreditRating:      normalizeRating(input.CreditRating),
		TotalCapacity:     input.TotalCapacity,
		UsedCapacity:      input.UsedCapacity,
		MaxTenor:          input.MaxTenor,
		AveragePrice:      input.AveragePrice,
		Countries:         pq.StringArray(input.Countries),
		SensitiveSubjects: pq.StringArray(input.SensitiveSubjects),
	}
	if bank.AveragePrice == nil {
		price := defaultAveragePrice
		bank.AveragePrice = &price
	}

	if err := s.repo.Create(ctx, bank); err != nil {
		return nil, fmt.Errorf("creating bank: %w", err)
	}

	view := s.toView(*bank)
	return &view, nil
}

// Get retrieves a bank by its ID.
func (s *BankService) Get(ctx context.Context, id uuid.UUID) (*model.BankView, error) {
	bank, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting bank %s: %w", id, err)
	}
	view := s.toView(*bank)
	return &view, nil
}

// List retrieves all banks with derived capacity and region fields.
func (s *BankService) List(ctx context.Context) ([]model.BankView, error) {
	banks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing banks: %w", err)
	}

	views := make([]model.BankView, 0, len(banks))
	for _, b := range banks {
		views = append(views, s.toView(b))
	}
	return views, nil
}

// Update replaces a bank's stored fields with the given input.
func (s *BankService) Update(ctx context.Context, id uuid.UUID, input UpdateBankInput) (*model.BankView, error) {
	if err := validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}
	if err := s.validateRating(input.CreditRating); err != nil {
		return nil, err
	}
	if input.TotalCapacity.IsNegative() {
		return nil, apperror.ValidationError("totalCapacity", "total capacity cannot be negative")
	}

	bank := &model.Bank{
		ID:                id,
		Name:              input.Name,
		LogoURL:           input.LogoURL,
		CreditRating:      normalizeRating(input.CreditRating),
		TotalCapacity:     input.TotalCapacity,
		UsedCapacity:      input.UsedCapacity,
		MaxTenor:          input.MaxTenor,
		AveragePrice:      input.AveragePrice,
		Countries:         pq.StringArray(input.Countries),
		SensitiveSubjects: pq.StringArray(input.SensitiveSubjects),
	}

	if err := s.repo.Update(ctx, bank); err != nil {
		return nil, fmt.Errorf("updating bank %s: %w", id, err)
	}

	view := s.toView(*bank)
	return &view, nil
}

// Delete removes a bank.
func (s *BankService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting bank %s: %w", id, err)
	}
	return nil
}

func (s *BankService) toView(bank model.Bank) model.BankView {
	return model.BankView{
		Bank:              bank,
		AvailableCapacity: bank.AvailableCapacity(),
		Regions:           country.RegionsOf(bank.Countries),
	}
}

// normalizeRating maps an empty rating string to nil so "unrated" has a single
// representation.
func normalizeRating(r *string) *string {
	if r == nil || *r == "" {
		return nil
	}
	return r
}
