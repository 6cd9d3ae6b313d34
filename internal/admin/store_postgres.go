package admin

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niramaya/api/internal/platform/database/schema"
	"github.com/niramaya/api/internal/platform/dberr"
	"github.com/niramaya/api/pkg/pagination"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CountAccountsByRole(context context.Context, role string) (int, error) {
	table := schema.UserAccount
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s IS NULL`,
		table.Table, table.Role, table.DeletedAt)

	var count int
	if err := repository.db.QueryRow(context, query, role).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_accounts_by_role")
	}

	return count, nil
}

func (repository *PostgresRepository) ListAccounts(context context.Context, params pagination.Params) ([]*Account, int, error) {
	table := schema.UserAccount

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s IS NULL`,
		table.Table, table.DeletedAt)
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_accounts")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s FROM %s
		WHERE %s IS NULL
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		table.ID, table.Email, table.DisplayName, table.Role, table.CreatedAt,
		table.Table, table.DeletedAt, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}
	defer rows.Close()

	accounts := make([]*Account, 0)
	for rows.Next() {
		var account Account
		if err := rows.Scan(&account.ID, &account.Email, &account.DisplayName,
			&account.Role, &account.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_account")
		}
		accounts = append(accounts, &account)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_accounts")
	}

	return accounts, total, nil
}

func (repository *PostgresRepository) CountActiveSessions(context context.Context) (int, error) {
	table := schema.UserSession
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = false AND %s > NOW()`,
		table.Table, table.IsRevoked, table.ExpiresAt)

	var count int
	if err := repository.db.QueryRow(context, query).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_active_sessions")
	}

	return count, nil
}
