package inmemdb

import (
	"context"
	"sort"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
)

type roomRepository struct {
	db *roomTable
}

var _ room.Repository = (*roomRepository)(nil)

func NewRoomRepository(db *DB) *roomRepository {
	return &roomRepository{db: db.room}
}

func (repo *roomRepository) query() []room.Room {
	rooms := make([]room.Room, 0, len(repo.db.table))
	for _, rm := range repo.db.table {
		rooms = append(rooms, *rm)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms
}

func (repo *roomRepository) CreateRoom(ctx context.Context, rm room.Room) (room.Room, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[rm.ID]; ok {
		return room.Room{}, room.ErrIDExists
	}
	for _, existing := range repo.db.table {
		if existing.Name == rm.Name {
			return room.Room{}, room.ErrNameExists
		}
	}
	repo.db.table[rm.ID] = &rm
	return rm, nil
}

func (repo *roomRepository) GetRoomByID(ctx context.Context, id string) (room.Room, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if rm, ok := repo.db.table[id]; ok {
		return *rm, nil
	}
	return room.Room{}, room.ErrNotFound
}

func (repo *roomRepository) GetRoomByName(ctx context.Context, name string) (room.Room, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, rm := range repo.db.table {
		if rm.Name == name {
			return *rm, nil
		}
	}
	return room.Room{}, room.ErrNotFound
}

func (repo *roomRepository) QueryAllRooms(ctx context.Context) ([]room.Room, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *roomRepository) DeleteRoom(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return room.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
