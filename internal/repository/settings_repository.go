package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/capflow/backend/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrSettingsNotFound = errors.New("settings not found")

// settingsRow maps the singleton settings row. The table carries a
// CHECK (id = 1) so there is never more than one.
type settingsRow struct {
	ID                int            `db:"id"`
	WeightCapacity    float64        `db:"weight_capacity"`
	WeightPrice       float64        `db:"weight_price"`
	WeightRating      float64        `db:"weight_rating"`
	SensitiveSubjects pq.StringArray `db:"sensitive_subjects"`
	Theme             string         `db:"theme"`
	HideCapacity      bool           `db:"hide_capacity"`
}

type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	var row settingsRow
	query := `SELECT * FROM settings WHERE id = 1`
	err := r.db.GetContext(ctx, &row, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}

	return &model.Settings{
		Weights: model.Weights{
			CapacityHeadroom:     row.WeightCapacity,
			PriceCompetitiveness: row.WeightPrice,
			CreditRating:         row.WeightRating,
		},
		SensitiveSubjects: row.SensitiveSubjects,
		Theme:             row.Theme,
		HideCapacity:      row.HideCapacity,
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	query := `
		INSERT INTO settings (id, weight_capacity, weight_price, weight_rating, sensitive_subjects, theme, hide_capacity)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE
		SET weight_capacity = EXCLUDED.weight_capacity,
			weight_price = EXCLUDED.weight_price,
			weight_rating = EXCLUDED.weight_rating,
			sensitive_subjects = EXCLUDED.sensitive_subjects,
			theme = EXCLUDED.theme,
			hide_capacity = EXCLUDED.hide_capacity`
	_, err := r.db.ExecContext(ctx, query,
		settings.Weights.CapacityHeadroom, settings.Weights.PriceCompetitiveness, settings.Weights.CreditRating,
		settings.SensitiveSubjects, settings.Theme, settings.HideCapacity,
	)
	return err
}
