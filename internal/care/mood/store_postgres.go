package mood

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

func (repository *PostgresRepository) Create(context context.Context, checkIn *CheckIn) error {
	table := schema.CareMoodCheckin
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table.Table,
		table.ID, table.UserID, table.MoodScore, table.EnergyLevel,
		table.SleepHours, table.Note, table.CreatedAt,
	)

	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now()
	}

	_, err := repository.db.Exec(context, query,
		checkIn.ID, checkIn.UserID, checkIn.MoodScore, checkIn.EnergyLevel,
		checkIn.SleepHours, checkIn.Note, checkIn.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "create_mood_checkin")
	}

	return nil
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID string, params pagination.Params) ([]*CheckIn, int, error) {
	table := schema.CareMoodCheckin

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, table.Table, table.UserID)
	if err := repository.db.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_mood_checkins")
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		table.ID, table.UserID, table.MoodScore, table.EnergyLevel,
		table.SleepHours, table.Note, table.CreatedAt,
		table.Table, table.UserID, table.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_mood_checkins")
	}
	defer rows.Close()

	checkIns := make([]*CheckIn, 0)
	for rows.Next() {
		checkIn := &CheckIn{}
		if err := rows.Scan(
			&checkIn.ID, &checkIn.UserID, &checkIn.MoodScore, &checkIn.EnergyLevel,
			&checkIn.SleepHours, &checkIn.Note, &checkIn.CreatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_mood_checkin")
		}
		checkIns = append(checkIns, checkIn)
	}

	return checkIns, total, nil
}

func (repository *PostgresRepository) Summarize(context context.Context, userID string, days int) (*Summary, error) {
	table := schema.CareMoodCheckin
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(AVG(%s), 0),
		       COALESCE(AVG(%s), 0)
		FROM %s
		WHERE %s = $1 AND %s >= NOW() - ($2 * INTERVAL '1 day')`,
		table.MoodScore, table.SleepHours,
		table.Table, table.UserID, table.CreatedAt,
	)

	summary := &Summary{}
	err := repository.db.QueryRow(context, query, userID, days).Scan(
		&summary.Count, &summary.AverageMood, &summary.AverageSleep,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "summarize_mood_checkins")
	}

	return summary, nil
}
