package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// StaffRepository handles persistence for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffAccount) error
	Update(ctx context.Context, staff *domain.StaffAccount) error
	GetByID(ctx context.Context, id string) (*domain.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error)
	List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, error)
}

// StaffFilter defines query params for staff listing.
type StaffFilter struct {
	Role   *domain.StaffRole
	Active *bool
	Limit  int
	Offset int
}

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

const staffColumns = `
        id, name, email, password_hash, role, active_flag, avatar_path,
        last_login, created_at, updated_at`

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        INSERT INTO staff_accounts (name, email, password_hash, role, active_flag, avatar_path)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Active,
		staff.AvatarPath,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.StaffAccount) error {
	const query = `
        UPDATE staff_accounts
        SET name=$1, email=$2, password_hash=$3, role=$4, active_flag=$5,
            avatar_path=$6, last_login=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		staff.Role,
		staff.Active,
		staff.AvatarPath,
		staff.LastLogin,
		staff.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffAccount, error) {
	return r.fetchSingle(ctx, `SELECT `+staffColumns+` FROM staff_accounts WHERE id=$1`, id)
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffAccount, error) {
	return r.fetchSingle(ctx, `SELECT `+staffColumns+` FROM staff_accounts WHERE email=$1`, email)
}

func (r *staffRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.StaffAccount, error) {
	var staff domain.StaffAccount
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.Active,
		&staff.AvatarPath,
		&staff.LastLogin,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) List(ctx context.Context, filter StaffFilter) ([]domain.StaffAccount, error) {
	base := `SELECT ` + staffColumns + ` FROM staff_accounts`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		clauses = append(clauses, fmt.Sprintf("role=$%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		clauses = append(clauses, fmt.Sprintf("active_flag=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffAccount
	for rows.Next() {
		var staff domain.StaffAccount
		if err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Email,
			&staff.PasswordHash,
			&staff.Role,
			&staff.Active,
			&staff.AvatarPath,
			&staff.LastLogin,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}
