package inmemdb

import (
	"sync"

	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
)

type (
	DB struct {
		account   *accountTable
		session   *sessionTable
		room      *roomTable
		timetable *timetableTable
		exam      *examTable
	}

	accountTable struct {
		table map[int]*account.Account
		mutex sync.RWMutex
	}

	sessionTable struct {
		table map[string]*account.Session
		mutex sync.RWMutex
	}

	roomTable struct {
		table map[string]*room.Room
		mutex sync.RWMutex
	}

	timetableTable struct {
		table map[string]*timetable.Entry
		mutex sync.RWMutex
	}

	examTable struct {
		table map[string]*exam.Exam
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		account:   &accountTable{table: make(map[int]*account.Account)},
		session:   &sessionTable{table: make(map[string]*account.Session)},
		room:      &roomTable{table: make(map[string]*room.Room)},
		timetable: &timetableTable{table: make(map[string]*timetable.Entry)},
		exam:      &examTable{table: make(map[string]*exam.Exam)},
	}
	return db, nil
}
