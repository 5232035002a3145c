package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/SaqibAli36/Indoor-Navigation-System/apps/api/echo"
	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/account"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
	emailsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/email"
	logsvc "github.com/SaqibAli36/Indoor-Navigation-System/services/logger"
	mediasvc "github.com/SaqibAli36/Indoor-Navigation-System/services/media"
	"github.com/SaqibAli36/Indoor-Navigation-System/storage/database"
	sqlxrepos "github.com/SaqibAli36/Indoor-Navigation-System/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	workDir := core.Getwd()
	conf, err := core.NewConfig(workDir)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error("closing database", err)
		}
	}()

	media, err := setUpMedia(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up media store: %v", err), err)
	}

	var mailSvc core.EmailService
	if conf.SendgridAPIKey != "" {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	} else {
		mailSvc = emailsvc.NewConsoleService(conf)
	}

	acctSvc := account.NewService(sqlxrepos.NewAccountRepository(db), sqlxrepos.NewSessionRepository(db), mailSvc, conf)
	roomSvc := room.NewService(sqlxrepos.NewRoomRepository(db), media, logger)
	ttSvc := timetable.NewService(sqlxrepos.NewTimetableRepository(db))
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	account.RegisterValidators(validate, translator)

	ctx := context.Background()

	if err = seedRooms(ctx, conf, roomSvc); err != nil {
		logger.Fatal(fmt.Sprintf("seeding rooms: %v", err), err)
	}
	if err = roomSvc.ReconcileMedia(ctx); err != nil {
		logger.Error(fmt.Sprintf("reconciling media: %v", err), err)
	}
	if err = acctSvc.PurgeExpiredSessions(ctx); err != nil {
		logger.Error(fmt.Sprintf("purging expired sessions: %v", err), err)
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			Validate:     validate,
			Translator:   translator,
			AccountSvc:   acctSvc,
			RoomSvc:      roomSvc,
			TimetableSvc: ttSvc,
			ExamSvc:      examSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func setUpMedia(conf *core.Config) (core.MediaStore, error) {
	if conf.Media.Backend == "minio" {
		return mediasvc.NewMinioStore(context.Background(), conf)
	}
	return mediasvc.NewFSStore(filepath.Join(conf.WorkDir, conf.Media.UploadDir))
}

// seedRooms bulk-imports the static room listing on first boot;
// a missing seed file is not an error.
func seedRooms(ctx context.Context, conf *core.Config, svc *room.Service) error {
	path := filepath.Join(conf.WorkDir, conf.SeedFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var entries []room.SeedRoom
	if err = json.Unmarshal(raw, &entries); err != nil {
		return err
	}
	return svc.Seed(ctx, entries)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
