package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

// Exam is a one-off dated event bound to a room and time window.
type Exam struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"` // normalized "YYYY-MM-DD"
	Room      string    `json:"room"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewExam contains information needed to create a new Exam.
type NewExam struct {
	Name      string `json:"name" form:"exam_name" validate:"required"`
	Date      string `json:"date" form:"exam_date" validate:"required,dateonly"`
	Room      string `json:"room" form:"exam_room" validate:"required"`
	StartTime string `json:"start_time" form:"exam_start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" form:"exam_end_time" validate:"required,timeofday"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Name = core.CleanString(ne.Name)
	ne.Date = core.CleanString(ne.Date)
	ne.Room = core.CleanString(ne.Room)
	ne.StartTime = core.CleanString(ne.StartTime)
	ne.EndTime = core.CleanString(ne.EndTime)

	if err := validate.Struct(ne); err != nil {
		return err
	}

	s, err := time.Parse(core.TimeOfDayFormat, ne.StartTime)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "start_time", Error: "invalid time format (HH:MM)"})
	}
	e, err := time.Parse(core.TimeOfDayFormat, ne.EndTime)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "end_time", Error: "invalid time format (HH:MM)"})
	}
	if !e.After(s) {
		return core.NewValidationError(
			ErrInvalidTimeRange,
			core.FieldError{Field: "end_time", Error: ErrInvalidTimeRange.Error()},
		)
	}

	// normalize the date to its canonical string form
	d, err := time.Parse(core.DateFormat, ne.Date)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "invalid date format (YYYY-MM-DD)"})
	}
	ne.Date = d.Format(core.DateFormat)
	return nil
}
