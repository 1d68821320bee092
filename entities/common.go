package entities

import (
	"time"

	"github.com/google/uuid"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ensureID assigns a fresh UUID when the row has none yet. Rows are created on
// both postgres and sqlite, so ids are generated in Go instead of relying on
// uuid_generate_v4().
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
