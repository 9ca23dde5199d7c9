package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID generates a collision-resistant record identifier: a millisecond
// timestamp component followed by a random UUID component. The timestamp
// gives IDs rough chronological locality; the UUID contributes 122 bits of
// entropy so concurrent calls in the same instant never collide.
func NewID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + uuid.NewString()
}
