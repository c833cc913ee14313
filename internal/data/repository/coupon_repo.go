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

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error)
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)
	FindAll(ctx context.Context) ([]*entity.Coupon, error)

	// Consume claims one use of the coupon, atomically refusing once the
	// cap is reached. Returns false when the coupon is inactive or spent.
	Consume(ctx context.Context, id uuid.UUID) (bool, error)
	// Release hands a use back when a booking drops the coupon.
	Release(ctx context.Context, id uuid.UUID) error
}

type couponRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCouponRepository(db database.Querier, log *zap.Logger) CouponRepository {
	return &couponRepository{
		db:  db,
		log: log.With(zap.String("repository", "coupon")),
	}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	query := `
		INSERT INTO coupons (id, code, discount_percent, max_uses, current_uses, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		coupon.ID,
		coupon.Code,
		coupon.DiscountPercent,
		coupon.MaxUses,
		coupon.CurrentUses,
		coupon.Active,
		coupon.CreatedAt,
		coupon.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return &entity.IntegrityError{Op: "create coupon", Err: err}
		}
		r.log.Error("Failed to create coupon",
			zap.Error(err),
			zap.String("code", coupon.Code),
		)
		return fmt.Errorf("create coupon %s: %w", coupon.Code, err)
	}

	return nil
}

func (r *couponRepository) scanCoupon(row pgx.Row) (*entity.Coupon, error) {
	var coupon entity.Coupon
	err := row.Scan(
		&coupon.ID,
		&coupon.Code,
		&coupon.DiscountPercent,
		&coupon.MaxUses,
		&coupon.CurrentUses,
		&coupon.Active,
		&coupon.CreatedAt,
		&coupon.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

const couponColumns = `id, code, discount_percent, max_uses, current_uses, is_active, created_at, updated_at`

func (r *couponRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`

	coupon, err := r.scanCoupon(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by ID",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return nil, fmt.Errorf("find coupon by ID %s: %w", id.String(), err)
	}

	return coupon, nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE code = $1`

	coupon, err := r.scanCoupon(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find coupon by code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find coupon by code %s: %w", code, err)
	}

	return coupon, nil
}

func (r *couponRepository) FindAll(ctx context.Context) ([]*entity.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list coupons", zap.Error(err))
		return nil, fmt.Errorf("list coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*entity.Coupon
	for rows.Next() {
		coupon, err := r.scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("scan coupon row: %w", err)
		}
		coupons = append(coupons, coupon)
	}

	return coupons, nil
}

func (r *couponRepository) Consume(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE coupons
		SET current_uses = current_uses + 1, updated_at = NOW()
		WHERE id = $1 AND is_active AND current_uses < max_uses
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to consume coupon",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return false, fmt.Errorf("consume coupon %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *couponRepository) Release(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE coupons
		SET current_uses = GREATEST(current_uses - 1, 0), updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.log.Error("Failed to release coupon use",
			zap.Error(err),
			zap.String("coupon_id", id.String()),
		)
		return fmt.Errorf("release coupon %s: %w", id.String(), err)
	}

	return nil
}
