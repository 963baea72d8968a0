package store

import (
	"context"
	"fmt"
	"time"

	"redress/internal/utils"
	"redress/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const grievanceTableName = "redress.grievances"

var grievanceColumns = utils.StructTagValues(types.Grievance{})

type GrievanceRepository struct {
	pool *pgxpool.Pool
}

func NewGrievanceRepository(pool *pgxpool.Pool) *GrievanceRepository {
	return &GrievanceRepository{pool: pool}
}

var _ GrievanceStore = (*GrievanceRepository)(nil)

func (r *GrievanceRepository) CreateGrievance(ctx context.Context, grievance *types.Grievance) error {

	now := time.Now()
	if grievance.ID == "" {
		grievance.ID = utils.NanoID()
	}
	grievance.CreatedAt = now
	grievance.UpdatedAt = now

	grievanceMap := utils.StructToMap(grievance)

	query, args, err := psql().Insert(grievanceTableName).SetMap(grievanceMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert grievance query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create grievance")

}

func (r *GrievanceRepository) Grievances(ctx context.Context, filter types.GrievanceFilter) ([]*types.Grievance, error) {

	builder := psql().Select(grievanceColumns...).From(grievanceTableName).
		OrderBy("created_at asc, id asc")

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}
	if filter.UserID != "" {
		builder = builder.Where(sq.Eq{"user_id": filter.UserID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate list grievances query: %w", err)
	}

	var grievances = make([]*types.Grievance, 0)
	err = pgxscan.Select(ctx, r.pool, &grievances, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grievances: %w", err)
	}

	return grievances, nil
}

func (r *GrievanceRepository) Grievance(ctx context.Context, grievanceID string) (*types.Grievance, error) {

	query, args, err := psql().Select(grievanceColumns...).From(grievanceTableName).
		Where(sq.Eq{"id": grievanceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grievance query: %w", err)
	}

	var grievance = new(types.Grievance)
	err = pgxscan.Get(ctx, r.pool, grievance, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrGrievanceNotFound
	}

	return grievance, nil

}

func (r *GrievanceRepository) UpdateGrievanceStatus(ctx context.Context, grievanceID string, status types.GrievanceStatus) (*types.Grievance, error) {

	now := time.Now()

	query, args, err := psql().Update(grievanceTableName).
		Set("status", status).
		Set("updated_at", now).
		Where(sq.Eq{"id": grievanceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update status query for grievance %s: %w", grievanceID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update grievance status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, types.ErrGrievanceNotFound
	}

	return r.Grievance(ctx, grievanceID)

}
