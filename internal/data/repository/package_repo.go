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

type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error)
	FindAll(ctx context.Context) ([]*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
}

type packageRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPackageRepository(db database.Querier, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

func (r *packageRepository) Create(ctx context.Context, pkg *entity.Package) error {
	query := `
		INSERT INTO packages (id, title, description, capacity, price, hours, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Title,
		pkg.Description,
		pkg.Capacity,
		pkg.Price,
		pkg.Hours,
		pkg.Slug,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create package", Err: err}
		}
		r.log.Error("Failed to create package",
			zap.Error(err),
			zap.String("title", pkg.Title),
		)
		return fmt.Errorf("create package %s: %w", pkg.Title, err)
	}

	return nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	query := `
		SELECT id, title, description, capacity, price, hours, slug, created_at, updated_at
		FROM packages
		WHERE id = $1
	`

	var pkg entity.Package
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Title,
		&pkg.Description,
		&pkg.Capacity,
		&pkg.Price,
		&pkg.Hours,
		&pkg.Slug,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return &pkg, nil
}

func (r *packageRepository) FindAll(ctx context.Context) ([]*entity.Package, error) {
	query := `
		SELECT id, title, description, capacity, price, hours, slug, created_at, updated_at
		FROM packages
		ORDER BY capacity
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list packages", zap.Error(err))
		return nil, fmt.Errorf("list packages: %w", err)
	}
	defer rows.Close()

	var packages []*entity.Package
	for rows.Next() {
		var pkg entity.Package
		err := rows.Scan(
			&pkg.ID,
			&pkg.Title,
			&pkg.Description,
			&pkg.Capacity,
			&pkg.Price,
			&pkg.Hours,
			&pkg.Slug,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, &pkg)
	}

	return packages, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *entity.Package) error {
	query := `
		UPDATE packages
		SET title = $2, description = $3, capacity = $4, price = $5, hours = $6, slug = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		pkg.ID,
		pkg.Title,
		pkg.Description,
		pkg.Capacity,
		pkg.Price,
		pkg.Hours,
		pkg.Slug,
		pkg.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update package",
			zap.Error(err),
			zap.String("package_id", pkg.ID.String()),
		)
		return fmt.Errorf("update package %s: %w", pkg.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return &entity.NotFoundError{Kind: "package", ID: pkg.ID.String()}
	}

	return nil
}
