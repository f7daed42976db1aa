package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// UpgradeRequestRepository manages tier upgrade request persistence.
type UpgradeRequestRepository interface {
	Create(ctx context.Context, req *domain.UpgradeRequest) error
	Update(ctx context.Context, req *domain.UpgradeRequest) error
	GetByID(ctx context.Context, id string) (*domain.UpgradeRequest, error)
	LatestByEmail(ctx context.Context, email string) (*domain.UpgradeRequest, error)
	List(ctx context.Context, status *domain.UpgradeStatus, limit, offset int) ([]domain.UpgradeRequest, error)
}

type upgradeRequestRepository struct {
	pool *pgxpool.Pool
}

// NewUpgradeRequestRepository instantiates the repository.
func NewUpgradeRequestRepository(pool *pgxpool.Pool) UpgradeRequestRepository {
	return &upgradeRequestRepository{pool: pool}
}

const upgradeColumns = `
        id, email, previous_tier, new_tier, previous_storage, new_storage,
        selected_tier, status, requested_at, approved_at`

func (r *upgradeRequestRepository) Create(ctx context.Context, req *domain.UpgradeRequest) error {
	const query = `
        INSERT INTO upgrade_requests (email, previous_tier, new_tier,
            previous_storage, new_storage, selected_tier, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, requested_at`
	return r.pool.QueryRow(ctx, query,
		req.Email,
		req.PreviousTier,
		req.NewTier,
		req.PreviousStorage,
		req.NewStorage,
		req.SelectedTier,
		req.Status,
	).Scan(&req.ID, &req.RequestedAt)
}

func (r *upgradeRequestRepository) Update(ctx context.Context, req *domain.UpgradeRequest) error {
	const query = `
        UPDATE upgrade_requests SET status=$1, approved_at=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, req.Status, req.ApprovedAt, req.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *upgradeRequestRepository) GetByID(ctx context.Context, id string) (*domain.UpgradeRequest, error) {
	return r.fetchSingle(ctx, `SELECT `+upgradeColumns+` FROM upgrade_requests WHERE id=$1`, id)
}

// LatestByEmail returns the most recent request for an email, ordered by
// creation time descending. Used by profile tier derivation.
func (r *upgradeRequestRepository) LatestByEmail(ctx context.Context, email string) (*domain.UpgradeRequest, error) {
	const query = `SELECT ` + upgradeColumns + `
        FROM upgrade_requests WHERE email=$1
        ORDER BY requested_at DESC LIMIT 1`
	return r.fetchSingle(ctx, query, email)
}

func (r *upgradeRequestRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.UpgradeRequest, error) {
	var req domain.UpgradeRequest
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&req.ID,
		&req.Email,
		&req.PreviousTier,
		&req.NewTier,
		&req.PreviousStorage,
		&req.NewStorage,
		&req.SelectedTier,
		&req.Status,
		&req.RequestedAt,
		&req.ApprovedAt,
	); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *upgradeRequestRepository) List(ctx context.Context, status *domain.UpgradeStatus, limit, offset int) ([]domain.UpgradeRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + upgradeColumns + ` FROM upgrade_requests`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status=$1`
	}
	query += fmt.Sprintf(` ORDER BY requested_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UpgradeRequest
	for rows.Next() {
		var req domain.UpgradeRequest
		if err := rows.Scan(
			&req.ID,
			&req.Email,
			&req.PreviousTier,
			&req.NewTier,
			&req.PreviousStorage,
			&req.NewStorage,
			&req.SelectedTier,
			&req.Status,
			&req.RequestedAt,
			&req.ApprovedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, req)
	}
	return result, rows.Err()
}
