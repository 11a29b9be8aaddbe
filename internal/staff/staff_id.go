package staff

import (
	"math/rand/v2"
	"strconv"
)

const (
	staffIDMin = 100000
	staffIDMax = 999999
)

// IDGenerator draws candidate human-facing staff ids. Candidates are not
// guaranteed unique; the uq_staff_staff_id constraint decides.
type IDGenerator interface {
	Next() string
}

type randomIDGenerator struct{}

func NewIDGenerator() IDGenerator {
	return randomIDGenerator{}
}

// Next returns a six digit decimal string in [100000, 999999].
func (randomIDGenerator) Next() string {
	return strconv.Itoa(staffIDMin + rand.IntN(staffIDMax-staffIDMin+1))
}
