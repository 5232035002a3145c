package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
)

type roomRepository struct {
	db *sqlx.DB
}

var _ room.Repository = (*roomRepository)(nil)

func NewRoomRepository(db *sqlx.DB) *roomRepository {
	return &roomRepository{db: db}
}

func (repo *roomRepository) CreateRoom(ctx context.Context, rm room.Room) (room.Room, error) {
	_, err := repo.db.ExecContext(ctx,
		`INSERT INTO room (id, name, video, created_at) VALUES ($1, $2, $3, $4)`,
		rm.ID, rm.Name, rm.Video, rm.CreatedAt,
	)
	if err != nil {
		switch {
		case uniqueViolation(err, "room_pkey"):
			return room.Room{}, room.ErrIDExists
		case uniqueViolation(err, "room_name_key"):
			return room.Room{}, room.ErrNameExists
		}
		return room.Room{}, errors.Wrap(err, "inserting room")
	}
	return rm, nil
}

func (repo *roomRepository) GetRoomByID(ctx context.Context, id string) (room.Room, error) {
	var rm room.Room
	err := repo.db.GetContext(ctx, &rm,
		`SELECT id, name, video, created_at AS createdat FROM room WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return room.Room{}, room.ErrNotFound
		}
		return room.Room{}, errors.Wrap(err, "selecting room by id")
	}
	return rm, nil
}

func (repo *roomRepository) GetRoomByName(ctx context.Context, name string) (room.Room, error) {
	var rm room.Room
	err := repo.db.GetContext(ctx, &rm,
		`SELECT id, name, video, created_at AS createdat FROM room WHERE name = $1`, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return room.Room{}, room.ErrNotFound
		}
		return room.Room{}, errors.Wrap(err, "selecting room by name")
	}
	return rm, nil
}

func (repo *roomRepository) QueryAllRooms(ctx context.Context) ([]room.Room, error) {
	rooms := make([]room.Room, 0)
	err := repo.db.SelectContext(ctx, &rooms,
		`SELECT id, name, video, created_at AS createdat FROM room ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Wrap(err, "selecting rooms")
	}
	return rooms, nil
}

func (repo *roomRepository) DeleteRoom(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM room WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting room")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return room.ErrNotFound
	}
	return nil
}
