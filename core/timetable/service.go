package timetable

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

var (
	// errors
	ErrNotFound         = errors.New("timetable entry not found")
	ErrSlotTaken        = errors.New("this time slot already exists")
	ErrInvalidTimeRange = errors.New("end time must be later than start time")
)

type (
	Repository interface {
		// CreateEntry returns ErrSlotTaken when an entry already occupies the
		// (day, period) pair; the store must enforce the pair atomically.
		CreateEntry(ctx context.Context, entry Entry) (Entry, error)
		QueryAllEntries(ctx context.Context) ([]Entry, error)
		GetEntryByID(ctx context.Context, id string) (Entry, error)
		DeleteEntry(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a new entry with a server-assigned id and timestamp.
// An occupied (day, period) slot surfaces as a conflict.
func (svc *Service) Create(ctx context.Context, ne NewEntry) (Entry, error) {
	entry := Entry{
		ID:        uuid.NewString(),
		Day:       ne.Day,
		Period:    ne.Period,
		Subject:   ne.Subject,
		Teacher:   ne.Teacher,
		Room:      ne.Room,
		StartTime: ne.StartTime,
		EndTime:   ne.EndTime,
		CreatedAt: time.Now().UTC(),
	}
	entry, err := svc.repo.CreateEntry(ctx, entry)
	if err != nil {
		if errors.Cause(err) == ErrSlotTaken {
			return Entry{}, core.NewConflictError(ErrSlotTaken)
		}
		return Entry{}, errors.Wrap(err, "creating timetable entry")
	}
	return entry, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Entry, error) {
	return svc.repo.QueryAllEntries(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	return svc.repo.GetEntryByID(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEntry(ctx, id)
}
