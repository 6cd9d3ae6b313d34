// Copyright (c) 2026 Niramaya. All rights reserved.

package crisis

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

func (repository *PostgresRepository) Create(context context.Context, checkIn *CheckIn) error {
	table := schema.CareCrisisCheckin
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table.Table,
		table.ID, table.UserID, table.CurrentFeeling, table.ThoughtsOfSelfHarm,
		table.HasImmediatePlan, table.Outcome, table.CreatedAt,
	)

	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		checkIn.ID, checkIn.UserID, checkIn.CurrentFeeling, checkIn.ThoughtsOfSelfHarm,
		checkIn.HasImmediatePlan, checkIn.Outcome, checkIn.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_crisis_checkin")
	}

	return nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, limit int) ([]*CheckIn, error) {
	table := schema.CareCrisisCheckin
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2`,
		table.ID, table.UserID, table.CurrentFeeling, table.ThoughtsOfSelfHarm,
		table.HasImmediatePlan, table.Outcome, table.CreatedAt,
		table.Table, table.UserID, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_crisis_checkins")
	}
	defer rows.Close()

	checkIns := make([]*CheckIn, 0)
	for rows.Next() {
		checkIn := &CheckIn{}
		if err := rows.Scan(
			&checkIn.ID, &checkIn.UserID, &checkIn.CurrentFeeling, &checkIn.ThoughtsOfSelfHarm,
			&checkIn.HasImmediatePlan, &checkIn.Outcome, &checkIn.CreatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "scan_crisis_checkin")
		}
		checkIns = append(checkIns, checkIn)
	}

	return checkIns, nil
}

// PostgresProfileFlagger implements [ProfileFlagger] against users.account.
type PostgresProfileFlagger struct {
	db *pgxpool.Pool
}

func NewPostgresProfileFlagger(db *pgxpool.Pool) *PostgresProfileFlagger {
	return &PostgresProfileFlagger{db: db}
}

func (flagger *PostgresProfileFlagger) SetCrisisFlag(context context.Context, userID string, flagged bool) error {
	table := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		table.Table, table.CrisisFlag, table.UpdatedAt, table.ID)

	if _, err := flagger.db.Exec(context, query, flagged, userID); err != nil {
		return dberr.Wrap(err, "set_crisis_flag")
	}

	return nil
}
