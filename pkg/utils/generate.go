package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateRef creates a human-readable unique reference with timestamp.
// Format: PREFIX-YYYYMMDD-HHMMSS-NNNN
func GenerateRef(prefix string) string {
	now := time.Now()

	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("%s-%s-%s-%s", prefix, datePart, timePart, randomPart)
}

func GenerateReservationRef() string {
	return GenerateRef("RSV")
}

func GenerateTravelRef() string {
	return GenerateRef("TRV")
}
