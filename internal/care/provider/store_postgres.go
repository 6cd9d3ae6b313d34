package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/niramaya/api/internal/platform/database/schema"
	"github.com/niramaya/api/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func linkColumns() string {
	table := schema.CareProviderClientLink
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		table.ID, table.ProviderID, table.ClientID, table.Status, table.CreatedAt, table.UpdatedAt)
}

func scanLink(row interface{ Scan(...any) error }) (*Link, error) {
	link := &Link{}
	err := row.Scan(&link.ID, &link.ProviderID, &link.ClientID, &link.Status, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (repository *PostgresRepository) CreateLink(context context.Context, link *Link) error {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		table.Table,
		table.ID, table.ProviderID, table.ClientID, table.Status, table.CreatedAt, table.UpdatedAt,
	)

	now := time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = now
	}
	link.UpdatedAt = now

	_, err := repository.db.Exec(context, query,
		link.ID, link.ProviderID, link.ClientID, link.Status, link.CreatedAt, link.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_provider_link")
	}

	return nil
}

func (repository *PostgresRepository) FindLinkByID(context context.Context, id string) (*Link, error) {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, linkColumns(), table.Table, table.ID)

	link, err := scanLink(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_provider_link")
	}

	return link, nil
}

func (repository *PostgresRepository) FindLinkByPair(context context.Context, providerID, clientID string) (*Link, error) {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC
		LIMIT 1`,
		linkColumns(), table.Table, table.ProviderID, table.ClientID, table.CreatedAt,
	)

	link, err := scanLink(repository.db.QueryRow(context, query, providerID, clientID))
	if err != nil {
		return nil, dberr.Wrap(err, "find_provider_link_pair")
	}

	return link, nil
}

func (repository *PostgresRepository) ListLinksByProvider(context context.Context, providerID string, status LinkStatus) ([]*Link, error) {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s DESC`,
		linkColumns(), table.Table, table.ProviderID, table.Status, table.CreatedAt,
	)

	return repository.listLinks(context, query, providerID, string(status))
}

func (repository *PostgresRepository) ListLinksByClient(context context.Context, clientID string) ([]*Link, error) {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		linkColumns(), table.Table, table.ClientID, table.CreatedAt,
	)

	return repository.listLinks(context, query, clientID)
}

func (repository *PostgresRepository) listLinks(context context.Context, query string, args ...any) ([]*Link, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_provider_links")
	}
	defer rows.Close()

	links := make([]*Link, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_provider_link")
		}
		links = append(links, link)
	}

	return links, nil
}

func (repository *PostgresRepository) UpdateStatus(context context.Context, id string, status LinkStatus) error {
	table := schema.CareProviderClientLink
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		table.Table, table.Status, table.UpdatedAt, table.ID)

	if _, err := repository.db.Exec(context, query, status, id); err != nil {
		return dberr.Wrap(err, "update_provider_link_status")
	}

	return nil
}
