package timetable

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

// Entry is a recurring weekly class slot bound to day+period.
type Entry struct {
	ID        string    `json:"id"`
	Day       string    `json:"day"`
	Period    string    `json:"period"`
	Subject   string    `json:"subject"`
	Teacher   string    `json:"teacher"`
	Room      string    `json:"room"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`   // "HH:MM"
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewEntry contains information needed to create a new Entry.
type NewEntry struct {
	Day       string `json:"day" form:"day" validate:"required"`
	Period    string `json:"period" form:"period" validate:"required"`
	Subject   string `json:"subject" form:"subject" validate:"required"`
	Teacher   string `json:"teacher" form:"teacher" validate:"required"`
	Room      string `json:"room" form:"room" validate:"required"`
	StartTime string `json:"start_time" form:"start_time" validate:"required,timeofday"`
	EndTime   string `json:"end_time" form:"end_time" validate:"required,timeofday"`
}

func (ne *NewEntry) Validate(validate *validator.Validate) error {
	ne.Day = core.CleanString(ne.Day)
	ne.Period = core.CleanString(ne.Period)
	ne.Subject = core.CleanString(ne.Subject)
	ne.Teacher = core.CleanString(ne.Teacher)
	ne.Room = core.CleanString(ne.Room)
	ne.StartTime = core.CleanString(ne.StartTime)
	ne.EndTime = core.CleanString(ne.EndTime)

	if err := validate.Struct(ne); err != nil {
		return err
	}
	return validateTimeRange(ne.StartTime, ne.EndTime)
}

// validateTimeRange requires end to be strictly later than start.
// Both values have already passed the timeofday format check.
func validateTimeRange(start, end string) error {
	s, err := time.Parse(core.TimeOfDayFormat, start)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "start_time", Error: "invalid time format (HH:MM)"})
	}
	e, err := time.Parse(core.TimeOfDayFormat, end)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "end_time", Error: "invalid time format (HH:MM)"})
	}
	if !e.After(s) {
		return core.NewValidationError(
			ErrInvalidTimeRange,
			core.FieldError{Field: "end_time", Error: ErrInvalidTimeRange.Error()},
		)
	}
	return nil
}
