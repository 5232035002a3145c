package inmemdb

import (
	"context"
	"sort"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil)

func NewExamRepository(db *DB) *examRepository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) query() []exam.Exam {
	exams := make([]exam.Exam, 0, len(repo.db.table))
	for _, ex := range repo.db.table {
		exams = append(exams, *ex)
	}
	sort.Slice(exams, func(i, j int) bool {
		if !exams[i].CreatedAt.Equal(exams[j].CreatedAt) {
			return exams[i].CreatedAt.Before(exams[j].CreatedAt)
		}
		return exams[i].ID < exams[j].ID
	})
	return exams
}

func (repo *examRepository) CreateExam(ctx context.Context, ex exam.Exam) (exam.Exam, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.table[ex.ID] = &ex
	return ex, nil
}

func (repo *examRepository) QueryAllExams(ctx context.Context) ([]exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *examRepository) GetExamByID(ctx context.Context, id string) (exam.Exam, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if ex, ok := repo.db.table[id]; ok {
		return *ex, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) DeleteExam(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return exam.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
