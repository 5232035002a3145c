package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	logsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/logger"
	mediasvc "github.com/SaqibAli36/Indoor-Navigation-System/services/media"
	"github.com/SaqibAli36/Indoor-Navigation-System/storage/database"
	sqlxrepos "github.com/SaqibAli36/Indoor-Navigation-System/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf, err := core.NewConfig(core.Getwd())
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(false)

	media, err := mediasvc.NewFSStore(filepath.Join(conf.WorkDir, conf.Media.UploadDir))
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:       db,
		conf:     conf,
		acctRepo: sqlxrepos.NewAccountRepository(db),
		roomSvc:  room.NewService(sqlxrepos.NewRoomRepository(db), media, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
