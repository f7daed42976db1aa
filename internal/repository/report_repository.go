package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/customer-portal/internal/domain"
)

// ReportFilter captures listing parameters for staff views.
type ReportFilter struct {
	ReporterEmail *string
	Statuses      []string
	Priorities    []domain.ReportPriority
	SearchTerm    *string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	Limit         int
	Offset        int
}

// ReportRepository encapsulates report persistence.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	Update(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	GetByIssueKey(ctx context.Context, key string) (*domain.Report, error)
	ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository instantiates repository.
func NewReportRepository(pool *pgxpool.Pool) ReportRepository {
	return &reportRepository{pool: pool}
}

const reportColumns = `
        id, reporter_name, reporter_email, customer_id, title, description,
        priority, category, confirm, image_path, jira_issue_id, jira_issue_key,
        jira_issue_url, status, created_at, updated_at`

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	const query = `
        INSERT INTO reports (reporter_name, reporter_email, customer_id, title,
            description, priority, category, confirm, image_path,
            jira_issue_id, jira_issue_key, jira_issue_url, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		report.ReporterName,
		report.ReporterEmail,
		report.CustomerID,
		report.Title,
		report.Description,
		report.Priority,
		report.Category,
		report.Confirm,
		report.ImagePath,
		report.JiraIssueID,
		report.JiraIssueKey,
		report.JiraIssueURL,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
}

func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	const query = `
        UPDATE reports SET reporter_name=$1, reporter_email=$2, customer_id=$3,
            title=$4, description=$5, priority=$6, category=$7, confirm=$8,
            image_path=$9, jira_issue_id=$10, jira_issue_key=$11,
            jira_issue_url=$12, status=$13, updated_at=NOW()
        WHERE id=$14`
	cmd, err := r.pool.Exec(ctx, query,
		report.ReporterName,
		report.ReporterEmail,
		report.CustomerID,
		report.Title,
		report.Description,
		report.Priority,
		report.Category,
		report.Confirm,
		report.ImagePath,
		report.JiraIssueID,
		report.JiraIssueKey,
		report.JiraIssueURL,
		report.Status,
		report.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*domain.Report, error) {
	return r.fetchSingle(ctx, `SELECT `+reportColumns+` FROM reports WHERE id=$1`, id)
}

func (r *reportRepository) GetByIssueKey(ctx context.Context, key string) (*domain.Report, error) {
	return r.fetchSingle(ctx, `SELECT `+reportColumns+` FROM reports WHERE jira_issue_key=$1`, key)
}

func (r *reportRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Report, error) {
	var report domain.Report
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&report.ID,
		&report.ReporterName,
		&report.ReporterEmail,
		&report.CustomerID,
		&report.Title,
		&report.Description,
		&report.Priority,
		&report.Category,
		&report.Confirm,
		&report.ImagePath,
		&report.JiraIssueID,
		&report.JiraIssueKey,
		&report.JiraIssueURL,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListWithFilter(ctx context.Context, filter ReportFilter) ([]domain.Report, error) {
	base := `SELECT ` + reportColumns + ` FROM reports`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ReporterEmail != nil {
		args = append(args, *filter.ReporterEmail)
		clauses = append(clauses, fmt.Sprintf("reporter_email=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(title) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
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
	return scanReports(rows)
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reports WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanReports(rows pgx.Rows) ([]domain.Report, error) {
	var result []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(
			&report.ID,
			&report.ReporterName,
			&report.ReporterEmail,
			&report.CustomerID,
			&report.Title,
			&report.Description,
			&report.Priority,
			&report.Category,
			&report.Confirm,
			&report.ImagePath,
			&report.JiraIssueID,
			&report.JiraIssueKey,
			&report.JiraIssueURL,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, report)
	}
	return result, rows.Err()
}
