package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/exam"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/room"
	"github.com/SaqibAli36/Indoor-Navigation-System/core/timetable"
)

type directoryApi struct {
	roomSvc      *room.Service
	timetableSvc *timetable.Service
	examSvc      *exam.Service
	validate     *validator.Validate
	translator   ut.Translator
}

func registerDirectoryAPI(g *echo.Group, auth echo.MiddlewareFunc, deps ServerDeps) {
	api := directoryApi{
		roomSvc:      deps.RoomSvc,
		timetableSvc: deps.TimetableSvc,
		examSvc:      deps.ExamSvc,
		validate:     deps.Validate,
		translator:   deps.Translator,
	}

	// public read endpoints
	g.GET("/rooms", api.queryRooms)
	g.GET("/rooms/:id", api.retrieveRoom)
	g.GET("/timetable", api.queryTimetable)
	g.GET("/exams", api.queryExams)

	// authed write endpoints
	g.POST("/rooms", api.createRoom, auth)
	g.DELETE("/rooms/:id", api.destroyRoom, auth)
	g.POST("/timetable", api.createTimetableEntry, auth)
	g.DELETE("/timetable/:id", api.destroyTimetableEntry, auth)
	g.POST("/exams", api.createExam, auth)
	g.DELETE("/exams/:id", api.destroyExam, auth)
}

// Room handlers

func (api *directoryApi) queryRooms(ctx echo.Context) error {
	filter := new(room.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []room.Room{})
	}
	filter.Clean()

	rooms, err := api.roomSvc.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return errors.Wrap(err, "querying rooms")
	}
	if rooms == nil {
		rooms = []room.Room{}
	}
	return ctx.JSON(http.StatusOK, rooms)
}

func (api *directoryApi) retrieveRoom(ctx echo.Context) error {
	rm, err := api.roomSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == room.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding room by id")
	}
	return ctx.JSON(http.StatusOK, rm)
}

// createRoom takes a multipart form: the room fields plus the video blob.
func (api *directoryApi) createRoom(ctx echo.Context) error {
	var data room.NewRoom
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRoom")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	file, err := ctx.FormFile("video")
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "video", Error: "video file is required"})
	}
	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded video")
	}
	defer src.Close()

	rm, err := api.roomSvc.Create(ctx.Request().Context(), data, src, file.Size)
	if err != nil {
		if core.IsConflict(err) {
			return err
		}
		return errors.Wrap(err, "creating room")
	}
	return ctx.JSON(http.StatusCreated, rm)
}

func (api *directoryApi) destroyRoom(ctx echo.Context) error {
	if err := api.roomSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == room.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting room")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Timetable handlers

func (api *directoryApi) queryTimetable(ctx echo.Context) error {
	entries, err := api.timetableSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying timetable")
	}
	if entries == nil {
		entries = []timetable.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *directoryApi) createTimetableEntry(ctx echo.Context) error {
	var data timetable.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	entry, err := api.timetableSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		if core.IsConflict(err) {
			return err
		}
		return errors.Wrap(err, "creating timetable entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *directoryApi) destroyTimetableEntry(ctx echo.Context) error {
	if err := api.timetableSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == timetable.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting timetable entry")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Exam handlers

func (api *directoryApi) queryExams(ctx echo.Context) error {
	exams, err := api.examSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	if exams == nil {
		exams = []exam.Exam{}
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *directoryApi) createExam(ctx echo.Context) error {
	var data exam.NewExam
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExam")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ex, err := api.examSvc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating exam")
	}
	return ctx.JSON(http.StatusCreated, ex)
}

func (api *directoryApi) destroyExam(ctx echo.Context) error {
	if err := api.examSvc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == exam.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}
