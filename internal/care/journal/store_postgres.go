package journal

import (
	"context"
	"fmt"
	"time"

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

func entryColumns() string {
	table := schema.CareJournalEntry
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		table.ID, table.UserID, table.Title, table.Content,
		table.Tags, table.SharedWithProvider, table.CreatedAt, table.UpdatedAt)
}

func scanEntry(row interface{ Scan(...any) error }) (*Entry, error) {
	entry := &Entry{}
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Title, &entry.Content,
		&entry.Tags, &entry.SharedWithProvider, &entry.CreatedAt, &entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (repository *PostgresRepository) Create(context context.Context, entry *Entry) error {
	table := schema.CareJournalEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		table.Table,
		table.ID, table.UserID, table.Title, table.Content,
		table.Tags, table.SharedWithProvider, table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		entry.ID, entry.UserID, entry.Title, entry.Content,
		entry.Tags, entry.SharedWithProvider, entry.CreatedAt, entry.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_journal_entry")
	}

	return nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Entry, error) {
	table := schema.CareJournalEntry
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		entryColumns(), table.Table, table.ID, table.DeletedAt)

	entry, err := scanEntry(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_journal_entry")
	}

	return entry, nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, tags []string, params pagination.Params) ([]*Entry, int, error) {
	table := schema.CareJournalEntry
	if tags == nil {
		tags = []string{}
	}

	// Array containment keeps the tag filter inside the indexed query instead
	// of post-filtering a page in Go.
	filter := fmt.Sprintf(`%s = $1 AND %s IS NULL AND (cardinality($2::text[]) = 0 OR %s @> $2)`,
		table.UserID, table.DeletedAt, table.Tags)
	return repository.list(context, filter, []any{userID, tags}, params)
}

func (repository *PostgresRepository) ListSharedByUser(context context.Context, userID string, params pagination.Params) ([]*Entry, int, error) {
	table := schema.CareJournalEntry
	filter := fmt.Sprintf(`%s = $1 AND %s = TRUE AND %s IS NULL`,
		table.UserID, table.SharedWithProvider, table.DeletedAt)
	return repository.list(context, filter, []any{userID}, params)
}

func (repository *PostgresRepository) list(context context.Context, filter string, args []any, params pagination.Params) ([]*Entry, int, error) {
	table := schema.CareJournalEntry

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, table.Table, filter)
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_journal_entries")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		entryColumns(), table.Table, filter, table.CreatedAt,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.db.Query(context, query, append(args, params.Limit, params.Offset())...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_journal_entries")
	}
	defer rows.Close()

	entries := make([]*Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_journal_entry")
		}
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) Update(context context.Context, entry *Entry) error {
	table := schema.CareJournalEntry
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $6 AND %s IS NULL`,
		table.Table,
		table.Title, table.Content, table.Tags, table.SharedWithProvider, table.UpdatedAt,
		table.ID, table.DeletedAt,
	)

	entry.UpdatedAt = time.Now()

	_, err := repository.db.Exec(context, query,
		entry.Title, entry.Content, entry.Tags, entry.SharedWithProvider, entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_journal_entry")
	}

	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id string) error {
	table := schema.CareJournalEntry
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		table.Table, table.DeletedAt, table.ID, table.DeletedAt)

	if _, err := repository.db.Exec(context, query, id); err != nil {
		return dberr.Wrap(err, "soft_delete_journal_entry")
	}

	return nil
}
