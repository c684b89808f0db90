package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/capflow/backend/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestSettingsRepository_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "weight_capacity", "weight_price", "weight_rating", "sensitive_subjects", "theme", "hide_capacity"}).
					AddRow(1, 0.4, 0.3, 0.3, "{Nuclear,Coal}", "dark", true)
				mock.ExpectQuery(`SELECT \* FROM settings WHERE id = 1`).
					WillReturnRows(rows)
			},
		},
		{
			name: "no row saved yet",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT \* FROM settings WHERE id = 1`).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: ErrSettingsNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockDB, mock, _ := sqlmock.New()
			defer func() { _ = mockDB.Close() }()
			db := sqlx.NewDb(mockDB, "sqlmock")
			repo := NewSettingsRepository(db)

			tt.setupMock(mock)

			settings, err := repo.Get(context.Background())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.InDelta(t, 0.4, settings.Weights.CapacityHeadroom, 1e-9)
				assert.Equal(t, pq.StringArray{"Nuclear", "Coal"}, settings.SensitiveSubjects)
				assert.Equal(t, "dark", settings.Theme)
				assert.True(t, settings.HideCapacity)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSettingsRepository_Save(t *testing.T) {
	t.Parallel()

	mockDB, mock, _ := sqlmock.New()
	defer func() { _ = mockDB.Close() }()
	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewSettingsRepository(db)

	settings := model.DefaultSettings()

	mock.ExpectExec(`INSERT INTO settings`).
		WithArgs(settings.Weights.CapacityHeadroom, settings.Weights.PriceCompetitiveness, settings.Weights.CreditRating,
			settings.SensitiveSubjects, settings.Theme, settings.HideCapacity).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), &settings)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
