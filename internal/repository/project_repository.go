package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/capflow/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `
		INSERT INTO projects (id, name, country, capacity_needed, tenor_required, project_type, minimum_credit_rating, status, planned_issuance_date, issuance_date, allocated_bank_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	project.ID = uuid.New()
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Country, project.CapacityNeeded, project.TenorRequired,
		project.ProjectType, project.MinimumCreditRating, project.Status,
		project.PlannedIssuanceDate, project.IssuanceDate, project.AllocatedBankID,
	)
	return err
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	query := `SELECT * FROM projects WHERE id = $1`
	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	return &project, err
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT * FROM projects ORDER BY name ASC`
	err := r.db.SelectContext(ctx, &projects, query)
	return projects, err
}

func (r *ProjectRepository) ListByStatus(ctx context.Context, status model.ProjectStatus) ([]model.Project, error) {
	var projects []model.Project
	query := `SELECT * FROM projects WHERE status = $1 ORDER BY planned_issuance_date ASC NULLS LAST, name ASC`
	err := r.db.SelectContext(ctx, &projects, query, status)
	return projects, err
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	query := `
		UPDATE projects
		SET name = $2, country = $3, capacity_needed = $4, tenor_required = $5, project_type = $6,
			minimum_credit_rating = $7, status = $8, planned_issuance_date = $9, issuance_date = $10, allocated_bank_id = $11
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Country, project.CapacityNeeded, project.TenorRequired,
		project.ProjectType, project.MinimumCreditRating, project.Status,
		project.PlannedIssuanceDate, project.IssuanceDate, project.AllocatedBankID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Issue marks a project as issued and books its capacity against the allocated
// bank inside a single transaction.
func (r *ProjectRepository) Issue(ctx context.Context, project *model.Project) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	projectQuery := `
		UPDATE projects
		SET status = $2, issuance_date = $3
		WHERE id = $1`
	result, err := tx.ExecContext(ctx, projectQuery, project.ID, project.Status, project.IssuanceDate)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProjectNotFound
	}

	bankQuery := `UPDATE banks SET used_capacity = used_capacity + $2, last_updated = NOW() WHERE id = $1`
	result, err = tx.ExecContext(ctx, bankQuery, project.AllocatedBankID, project.CapacityNeeded)
	if err != nil {
		return err
	}
	rows, err = result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBankNotFound
	}

	return tx.Commit()
}
