package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
)

type timetableRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*timetableRepository)(nil)

func NewTimetableRepository(db *sqlx.DB) *timetableRepository {
	return &timetableRepository{db: db}
}

func (repo *timetableRepository) CreateEntry(ctx context.Context, entry timetable.Entry) (timetable.Entry, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO timetable_entry (id, day, period, subject, teacher, room, start_time, end_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, entry.Day, entry.Period, entry.Subject, entry.Teacher, entry.Room,
		entry.StartTime, entry.EndTime, entry.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "timetable_entry_day_period_key") {
			return timetable.Entry{}, timetable.ErrSlotTaken
		}
		return timetable.Entry{}, errors.Wrap(err, "inserting timetable entry")
	}
	return entry, nil
}

func (repo *timetableRepository) QueryAllEntries(ctx context.Context) ([]timetable.Entry, error) {
	entries := make([]timetable.Entry, 0)
	err := repo.db.SelectContext(ctx, &entries,
		`SELECT id, day, period, subject, teacher, room,
		        start_time AS starttime, end_time AS endtime, created_at AS createdat
		 FROM timetable_entry ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting timetable entries")
	}
	return entries, nil
}

func (repo *timetableRepository) GetEntryByID(ctx context.Context, id string) (timetable.Entry, error) {
	var entry timetable.Entry
	err := repo.db.GetContext(ctx, &entry,
		`SELECT id, day, period, subject, teacher, room,
		        start_time AS starttime, end_time AS endtime, created_at AS createdat
		 FROM timetable_entry WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return timetable.Entry{}, timetable.ErrNotFound
		}
		return timetable.Entry{}, errors.Wrap(err, "selecting timetable entry")
	}
	return entry, nil
}

func (repo *timetableRepository) DeleteEntry(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM timetable_entry WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting timetable entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return timetable.ErrNotFound
	}
	return nil
}
