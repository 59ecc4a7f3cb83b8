package utils

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// NewRecordLocator returns a random 6-character alphanumeric booking reference.
func NewRecordLocator() string {
	var builder strings.Builder
	for i := 0; i < PNR_LENGTH; i++ {
		builder.WriteByte(PNR_ALPHABET[rand.IntN(len(PNR_ALPHABET))])
	}
	return builder.String()
}

// NewEmployeeID synthesizes a staff identifier such as "E482913".
func NewEmployeeID() string {
	return fmt.Sprintf("E%06d", rand.IntN(EMPLOYEE_ID_BASE))
}

// NewDocumentNumber returns a 13-digit ticket/EMD style number with the given airline prefix.
func NewDocumentNumber(prefix string) string {
	return fmt.Sprintf("%s-%010d", prefix, rand.Int64N(10_000_000_000))
}
