package repository

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ExtraServiceRepository interface {
	Create(ctx context.Context, extra *entity.ExtraService) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ExtraService, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ExtraService, error)
	FindAllActive(ctx context.Context) ([]*entity.ExtraService, error)
	Update(ctx context.Context, extra *entity.ExtraService) error
}

type extraServiceRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewExtraServiceRepository(db database.Querier, log *zap.Logger) ExtraServiceRepository {
	return &extraServiceRepository{
		db:  db,
		log: log.With(zap.String("repository", "extra_service")),
	}
}

func (r *extraServiceRepository) Create(ctx context.Context, extra *entity.ExtraService) error {
	query := `
		INSERT INTO extra_services (id, name, price, is_active, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		extra.ID,
		extra.Name,
		extra.Price,
		extra.Active,
		extra.Slug,
		extra.CreatedAt,
		extra.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create extra service", Err: err}
		}
		r.log.Error("Failed to create extra service",
			zap.Error(err),
			zap.String("name", extra.Name),
		)
		return fmt.Errorf("create extra service %s: %w", extra.Name, err)
	}

	return nil
}

func (r *extraServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ExtraService, error) {
	query := `
		SELECT id, name, price, is_active, slug, created_at, updated_at
		FROM extra_services
		WHERE id = $1
	`

	var extra entity.ExtraService
	err := r.db.QueryRow(ctx, query, id).Scan(
		&extra.ID,
		&extra.Name,
		&extra.Price,
		&extra.Active,
		&extra.Slug,
		&extra.CreatedAt,
		&extra.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find extra service by ID",
			zap.Error(err),
			zap.String("extra_service_id", id.String()),
		)
		return nil, fmt.Errorf("find extra service by ID %s: %w", id.String(), err)
	}

	return &extra, nil
}

// FindByIDs loads the given extras, preserving request order. A missing ID
// is the caller's unknown-reference problem, so the result may be shorter
// than the input.
func (r *extraServiceRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ExtraService, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, name, price, is_active, slug, created_at, updated_at
		FROM extra_services
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find extra services by IDs", zap.Error(err))
		return nil, fmt.Errorf("find extra services: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]*entity.ExtraService, len(ids))
	for rows.Next() {
		var extra entity.ExtraService
		err := rows.Scan(
			&extra.ID,
			&extra.Name,
			&extra.Price,
			&extra.Active,
			&extra.Slug,
			&extra.CreatedAt,
			&extra.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan extra service row: %w", err)
		}
		byID[extra.ID] = &extra
	}

	var extras []*entity.ExtraService
	for _, id := range ids {
		if extra, ok := byID[id]; ok {
			extras = append(extras, extra)
		}
	}

	return extras, nil
}

func (r *extraServiceRepository) FindAllActive(ctx context.Context) ([]*entity.ExtraService, error) {
	query := `
		SELECT id, name, price, is_active, slug, created_at, updated_at
		FROM extra_services
		WHERE is_active
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list extra services", zap.Error(err))
		return nil, fmt.Errorf("list extra services: %w", err)
	}
	defer rows.Close()

	var extras []*entity.ExtraService
	for rows.Next() {
		var extra entity.ExtraService
		err := rows.Scan(
			&extra.ID,
			&extra.Name,
			&extra.Price,
			&extra.Active,
			&extra.Slug,
			&extra.CreatedAt,
			&extra.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan extra service row: %w", err)
		}
		extras = append(extras, &extra)
	}

	return extras, nil
}

func (r *extraServiceRepository) Update(ctx context.Context, extra *entity.ExtraService) error {
	query := `
		UPDATE extra_services
		SET name = $2, price = $3, is_active = $4, slug = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		extra.ID,
		extra.Name,
		extra.Price,
		extra.Active,
		extra.Slug,
		extra.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update extra service",
			zap.Error(err),
			zap.String("extra_service_id", extra.ID.String()),
		)
		return fmt.Errorf("update extra service %s: %w", extra.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "extra service", ID: extra.ID.String()}
	}

	return nil
}
