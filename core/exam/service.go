package exam

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound         = errors.New("exam not found")
	ErrInvalidTimeRange = errors.New("end time must be later than start time")
)

type (
	Repository interface {
		CreateExam(ctx context.Context, ex Exam) (Exam, error)
		QueryAllExams(ctx context.Context) ([]Exam, error)
		GetExamByID(ctx context.Context, id string) (Exam, error)
		DeleteExam(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a new exam with a server-assigned id and timestamp.
// Exams carry no slot exclusivity: two exams may share a room and window.
func (svc *Service) Create(ctx context.Context, ne NewExam) (Exam, error) {
	ex := Exam{
		ID:        uuid.NewString(),
		Name:      ne.Name,
		Date:      ne.Date,
		Room:      ne.Room,
		StartTime: ne.StartTime,
		EndTime:   ne.EndTime,
		CreatedAt: time.Now().UTC(),
	}
	ex, err := svc.repo.CreateExam(ctx, ex)
	if err != nil {
		return Exam{}, errors.Wrap(err, "creating exam")
	}
	return ex, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Exam, error) {
	return svc.repo.QueryAllExams(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Exam, error) {
	return svc.repo.GetExamByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteExam(ctx, id)
}
