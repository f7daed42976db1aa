package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// CustomerRepository defines persistence access for onboarding records.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `
        id, customer_id, company_name, company_email,
        primary_contact_name, primary_contact_email, primary_contact_phone,
        secondary_contact_name, secondary_contact_email, secondary_contact_phone,
        aws_setup, aliases, agreements, avatar_path, password_hash,
        must_change_password, role, is_active, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (customer_id, company_name, company_email,
            primary_contact_name, primary_contact_email, primary_contact_phone,
            secondary_contact_name, secondary_contact_email, secondary_contact_phone,
            aws_setup, aliases, agreements, avatar_path, password_hash,
            must_change_password, role, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		customer.CustomerID,
		customer.CompanyName,
		customer.CompanyEmail,
		customer.PrimaryContact.Name,
		customer.PrimaryContact.Email,
		customer.PrimaryContact.Phone,
		customer.SecondaryContact.Name,
		customer.SecondaryContact.Email,
		customer.SecondaryContact.Phone,
		customer.AWSSetup,
		customer.Aliases,
		customer.Agreements,
		customer.AvatarPath,
		customer.PasswordHash,
		customer.MustChangePassword,
		customer.Role,
		customer.IsActive,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET company_name=$1, company_email=$2,
            primary_contact_name=$3, primary_contact_email=$4, primary_contact_phone=$5,
            secondary_contact_name=$6, secondary_contact_email=$7, secondary_contact_phone=$8,
            aws_setup=$9, aliases=$10, agreements=$11, avatar_path=$12, password_hash=$13,
            must_change_password=$14, role=$15, is_active=$16, updated_at=NOW()
        WHERE id=$17`

	cmd, err := r.pool.Exec(ctx, query,
		customer.CompanyName,
		customer.CompanyEmail,
		customer.PrimaryContact.Name,
		customer.PrimaryContact.Email,
		customer.PrimaryContact.Phone,
		customer.SecondaryContact.Name,
		customer.SecondaryContact.Email,
		customer.SecondaryContact.Phone,
		customer.AWSSetup,
		customer.Aliases,
		customer.Agreements,
		customer.AvatarPath,
		customer.PasswordHash,
		customer.MustChangePassword,
		customer.Role,
		customer.IsActive,
		customer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.fetchSingle(ctx, `SELECT `+customerColumns+` FROM customers WHERE id=$1`, id)
}

func (r *customerRepository) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return r.fetchSingle(ctx, `SELECT `+customerColumns+` FROM customers WHERE customer_id=$1`, customerID)
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.fetchSingle(ctx, `SELECT `+customerColumns+` FROM customers WHERE company_email=$1`, email)
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&customer.ID,
		&customer.CustomerID,
		&customer.CompanyName,
		&customer.CompanyEmail,
		&customer.PrimaryContact.Name,
		&customer.PrimaryContact.Email,
		&customer.PrimaryContact.Phone,
		&customer.SecondaryContact.Name,
		&customer.SecondaryContact.Email,
		&customer.SecondaryContact.Phone,
		&customer.AWSSetup,
		&customer.Aliases,
		&customer.Agreements,
		&customer.AvatarPath,
		&customer.PasswordHash,
		&customer.MustChangePassword,
		&customer.Role,
		&customer.IsActive,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(
			&customer.ID,
			&customer.CustomerID,
			&customer.CompanyName,
			&customer.CompanyEmail,
			&customer.PrimaryContact.Name,
			&customer.PrimaryContact.Email,
			&customer.PrimaryContact.Phone,
			&customer.SecondaryContact.Name,
			&customer.SecondaryContact.Email,
			&customer.SecondaryContact.Phone,
			&customer.AWSSetup,
			&customer.Aliases,
			&customer.Agreements,
			&customer.AvatarPath,
			&customer.PasswordHash,
			&customer.MustChangePassword,
			&customer.Role,
			&customer.IsActive,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, customer)
	}
	return result, rows.Err()
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
