package inmemdb

import (
	"context"
	"sort"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
)

type timetableRepository struct {
	db *timetableTable
}

var _ timetable.Repository = (*timetableRepository)(nil)

func NewTimetableRepository(db *DB) *timetableRepository {
	return &timetableRepository{db: db.timetable}
}

func (repo *timetableRepository) query() []timetable.Entry {
	entries := make([]timetable.Entry, 0, len(repo.db.table))
	for _, entry := range repo.db.table {
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (repo *timetableRepository) CreateEntry(ctx context.Context, entry timetable.Entry) (timetable.Entry, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.Day == entry.Day && existing.Period == entry.Period {
			return timetable.Entry{}, timetable.ErrSlotTaken
		}
	}
	repo.db.table[entry.ID] = &entry
	return entry, nil
}

func (repo *timetableRepository) QueryAllEntries(ctx context.Context) ([]timetable.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *timetableRepository) GetEntryByID(ctx context.Context, id string) (timetable.Entry, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if entry, ok := repo.db.table[id]; ok {
		return *entry, nil
	}
	return timetable.Entry{}, timetable.ErrNotFound
}

func (repo *timetableRepository) DeleteEntry(ctx context.Context, id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return timetable.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
