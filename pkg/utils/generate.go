package utils

import (
	"strings"

	"github.com/google/uuid"
)

// TicketNumberLength is the length of user-facing ticket codes.
const TicketNumberLength = 12

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// GenerateTicketNumber creates a short random ticket code, e.g.
// "9F2C41A07BD3". Uniqueness is enforced by the bookings table; callers
// regenerate on collision.
func GenerateTicketNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(hex[:TicketNumberLength])
}
