package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
)

type examRepository struct {
	db *sqlx.DB
}

var _ exam.Repository = (*examRepository)(nil)

func NewExamRepository(db *sqlx.DB) *examRepository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateExam(ctx context.Context, ex exam.Exam) (exam.Exam, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO exam (id, name, date, room, start_time, end_time, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ex.ID, ex.Name, ex.Date, ex.Room, ex.StartTime, ex.EndTime, ex.CreatedAt,
	)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "inserting exam")
	}
	return ex, nil
}

func (repo *examRepository) QueryAllExams(ctx context.Context) ([]exam.Exam, error) {
	exams := make([]exam.Exam, 0)
	err := repo.db.SelectContext(ctx, &exams,
		`SELECT id, name, date, room,
		        start_time AS starttime, end_time AS endtime, created_at AS createdat
		 FROM exam ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting exams")
	}
	return exams, nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id string) (exam.Exam, error) {
	var ex exam.Exam
	err := repo.db.GetContext(ctx, &ex,
		`SELECT id, name, date, room,
		        start_time AS starttime, end_time AS endtime, created_at AS createdat
		 FROM exam WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return exam.Exam{}, exam.ErrNotFound
		}
		return exam.Exam{}, errors.Wrap(err, "selecting exam")
	}
	return ex, nil
}

func (repo *examRepository) DeleteExam(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM exam WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.ErrNotFound
	}
	return nil
}
