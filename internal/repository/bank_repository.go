package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/capflow/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var ErrBankNotFound = errors.New("bank not found")

type BankRepository struct {
	db *sqlx.DB
}

func NewBankRepository(db *sqlx.DB) *BankRepository {
	return &BankRepository{db: db}
}

func (r *BankRepository) Create(ctx context.Context, bank *model.Bank) error {
	query := `
		INSERT INTO banks (id, name, logo_url, credit_rating, total_capacity, used_capacity, max_tenor, average_price, countries, sensitive_subjects, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING last_updated`

	bank.ID = uuid.New()
	return r.db.QueryRowxContext(ctx, query,
		bank.ID, bank.Name, bank.LogoURL, bank.CreditRating, bank.TotalCapacity, bank.UsedCapacity,
		bank.MaxTenor, bank.AveragePrice, bank.Countries, bank.SensitiveSubjects,
	).Scan(&bank.LastUpdated)
}

func (r *BankRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Bank, error) {
	var bank model.Bank
	query := `SELECT * FROM banks WHERE id = $1`
	err := r.db.GetContext(ctx, &bank, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBankNotFound
	}
	return &bank, err
}

func (r *BankRepository) List(ctx context.Context) ([]model.Bank, error) {
	var banks []model.Bank
	query := `SELECT * FROM banks ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &banks, query)
	return banks, err
}

func (r *BankRepository) Update(ctx context.Context, bank *model.Bank) error {
	query := `
		UPDATE banks
		SET name = $2, logo_url = $3, credit_rating = $4, total_capacity = $5, used_capacity = $6,
			max_tenor = $7, average_price = $8, countries = $9, sensitive_subjects = $10, last_updated = NOW()
		WHERE id = $1
		RETURNING last_updated`
	result := r.db.QueryRowxContext(ctx, query,
		bank.ID, bank.Name, bank.LogoURL, bank.CreditRating, bank.TotalCapacity, bank.UsedCapacity,
		bank.MaxTenor, bank.AveragePrice, bank.Countries, bank.SensitiveSubjects,
	)
	err := result.Scan(&bank.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBankNotFound
	}
	return err
}

func (r *BankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM banks WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankNotFound
	}
	return nil
}

// AddUsedCapacity moves a bank's used capacity by delta (positive on issuance).
func (r *BankRepository) AddUsedCapacity(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE banks SET used_capacity = used_capacity + $2, last_updated = NOW() WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankNotFound
	}
	return nil
}
