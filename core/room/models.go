package room

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/SaqibAli36/Indoor-Navigation-System/core"
)

// Room is a navigable physical space with an explanatory video.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Video     string    `json:"video"` // MediaStore filename
	CreatedAt time.Time `json:"created_at"` // UTC
}

// VideoFilename derives the deterministic MediaStore filename for a room id.
func VideoFilename(id string) string {
	return fmt.Sprintf("room_%s.mp4", id)
}

// NewRoom contains information needed to create a new Room.
// The video blob itself travels out-of-band (multipart upload).
type NewRoom struct {
	ID   string `json:"id" form:"id" validate:"required,alphanum_"`
	Name string `json:"name" form:"name" validate:"required"`
}

func (nr *NewRoom) Validate(validate *validator.Validate) error {
	nr.ID = core.CleanString(nr.ID)
	nr.Name = core.CleanString(nr.Name)
	return validate.Struct(nr)
}

// SeedRoom is one entry of the bulk-import bootstrap listing.
type SeedRoom struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Video string `json:"video"`
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
