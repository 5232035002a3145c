package room

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

var (
	// errors
	ErrNotFound   = errors.New("room not found")
	ErrIDExists   = errors.New("a room with this id already exists")
	ErrNameExists = errors.New("a room with this name already exists")
)

type (
	Repository interface {
		// CreateRoom returns ErrIDExists or ErrNameExists when the insert
		// collides with an existing record; the underlying store must enforce
		// both constraints atomically.
		CreateRoom(ctx context.Context, rm Room) (Room, error)
		GetRoomByID(ctx context.Context, id string) (Room, error)
		GetRoomByName(ctx context.Context, name string) (Room, error)
		QueryAllRooms(ctx context.Context) ([]Room, error)
		DeleteRoom(ctx context.Context, id string) error
	}

	Service struct {
		repo   Repository
		media  core.MediaStore
		logger core.Logger
	}
)

func NewService(repo Repository, media core.MediaStore, logger core.Logger) *Service {
	return &Service{repo: repo, media: media, logger: logger}
}

// Create validates uniqueness, stores the video blob and then the record.
// The blob write and the record write are not transactional: a record-write
// failure triggers the compensating blob delete, except when the failure is a
// raced duplicate id, in which case the filename now belongs to the winner.
func (svc *Service) Create(ctx context.Context, nr NewRoom, video io.Reader, size int64) (Room, error) {
	// fast-fail duplicate checks before touching the media store
	if _, err := svc.repo.GetRoomByID(ctx, nr.ID); err == nil {
		return Room{}, core.NewConflictError(ErrIDExists)
	} else if errors.Cause(err) != ErrNotFound {
		return Room{}, errors.Wrap(err, "checking room id")
	}
	if _, err := svc.repo.GetRoomByName(ctx, nr.Name); err == nil {
		return Room{}, core.NewConflictError(ErrNameExists)
	} else if errors.Cause(err) != ErrNotFound {
		return Room{}, errors.Wrap(err, "checking room name")
	}

	filename := VideoFilename(nr.ID)
	if err := svc.media.Save(ctx, filename, video, size, "video/mp4"); err != nil {
		return Room{}, errors.Wrap(err, "saving room video")
	}

	rm := Room{
		ID:        nr.ID,
		Name:      nr.Name,
		Video:     filename,
		CreatedAt: time.Now().UTC(),
	}
	rm, err := svc.repo.CreateRoom(ctx, rm)
	if err != nil {
		switch errors.Cause(err) {
		case ErrIDExists:
			// lost the race on id; the stored blob is the surviving room's filename
			return Room{}, core.NewConflictError(ErrIDExists)
		case ErrNameExists:
			svc.compensate(ctx, filename)
			return Room{}, core.NewConflictError(ErrNameExists)
		}
		svc.compensate(ctx, filename)
		return Room{}, errors.Wrap(err, "creating room")
	}
	return rm, nil
}

func (svc *Service) compensate(ctx context.Context, filename string) {
	if err := svc.media.Delete(ctx, filename); err != nil {
		svc.logger.Warn("deleting orphaned room video "+filename, err)
	}
}

// Delete removes the room's video blob (absence ignored) and then the record.
// Timetable and exam entries referencing the room are left untouched.
func (svc *Service) Delete(ctx context.Context, id string) error {
	rm, err := svc.repo.GetRoomByID(ctx, id)
	if err != nil {
		return err
	}
	if rm.Video != "" {
		if ok, err := svc.media.Exists(ctx, rm.Video); err == nil && ok {
			if err := svc.media.Delete(ctx, rm.Video); err != nil {
				return errors.Wrap(err, "deleting room video")
			}
		}
	}
	return svc.repo.DeleteRoom(ctx, id)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Room, error) {
	return svc.repo.GetRoomByID(ctx, id)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Room, error) {
	return svc.repo.QueryAllRooms(ctx)
}

// Filter returns rooms matching the search term with a case-insensitive
// substring match on id or name; an empty term returns the full listing.
// Filtering happens here rather than in the store: the collection is a
// small-N listing re-read per request.
func (svc *Service) Filter(ctx context.Context, qf QueryFilter) ([]Room, error) {
	rooms, err := svc.repo.QueryAllRooms(ctx)
	if err != nil {
		return nil, err
	}
	if qf.Search == "" {
		return rooms, nil
	}

	term := strings.ToLower(qf.Search)
	matches := make([]Room, 0, len(rooms))
	for _, rm := range rooms {
		if strings.Contains(strings.ToLower(rm.ID), term) || strings.Contains(strings.ToLower(rm.Name), term) {
			matches = append(matches, rm)
		}
	}
	return matches, nil
}

// Seed bulk-imports the static room listing when the collection is empty.
// The video filenames come from the listing as-is; no blobs are written.
func (svc *Service) Seed(ctx context.Context, entries []SeedRoom) error {
	existing, err := svc.repo.QueryAllRooms(ctx)
	if err != nil {
		return errors.Wrap(err, "querying rooms")
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, entry := range entries {
		rm := Room{
			ID:        core.CleanString(entry.ID),
			Name:      core.CleanString(entry.Name),
			Video:     entry.Video,
			CreatedAt: now,
		}
		if _, err := svc.repo.CreateRoom(ctx, rm); err != nil {
			return errors.Wrapf(err, "seeding room %q", rm.ID)
		}
	}
	svc.logger.Info("seeded room directory", map[string]interface{}{"count": len(entries)})
	return nil
}

// ReconcileMedia deletes stored blobs that no room record references.
// Run at startup; repairs the weak failure path of the blob+record saga.
func (svc *Service) ReconcileMedia(ctx context.Context) error {
	rooms, err := svc.repo.QueryAllRooms(ctx)
	if err != nil {
		return errors.Wrap(err, "querying rooms")
	}
	referenced := make(map[string]bool, len(rooms))
	for _, rm := range rooms {
		referenced[rm.Video] = true
	}

	files, err := svc.media.List(ctx)
	if err != nil {
		return errors.Wrap(err, "listing media")
	}
	for _, f := range files {
		if referenced[f] {
			continue
		}
		if err := svc.media.Delete(ctx, f); err != nil {
			svc.logger.Warn("deleting orphaned blob "+f, err)
			continue
		}
		svc.logger.Info("deleted orphaned blob " + f)
	}
	return nil
}
