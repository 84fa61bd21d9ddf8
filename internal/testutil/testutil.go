package testutil

import (
	"strings"
	"time"

	"notesapi/internal/auth"
	"notesapi/internal/partner"
	"notesapi/internal/user"
)

// TestNorthPartner keeps the default thresholds.
var TestNorthPartner = partner.Partner{
	ID:                  "partner-north-id",
	Code:                "north",
	Name:                "North Utility",
	ShortContentLength:  50,
	MediumContentLength: 100,
}

// TestSouthPartner is onboarded with its own 60/120 policy.
var TestSouthPartner = partner.Partner{
	ID:                  "partner-south-id",
	Code:                "south",
	Name:                "South Utility",
	ShortContentLength:  60,
	MediumContentLength: 120,
}

// TestUser belongs to the north partner.
var TestUser = user.User{
	ID:          "test-user-id-123",
	Email:       "test@example.com",
	FirstName:   "Test",
	LastName:    "User",
	Password:    "hashedpassword",
	PartnerID:   TestNorthPartner.ID,
	PartnerCode: TestNorthPartner.Code,
	CreatedAt:   time.Now(),
	UpdatedAt:   time.Now(),
}

// GenerateTestToken generates a JWT token for handler tests.
func GenerateTestToken(secret, userID string) string {
	token, _ := auth.GenerateToken(secret, userID, time.Hour)
	return token
}

// Words builds content with exactly n words.
func Words(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSpace(strings.Repeat("word ", n))
}
