package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{"UPPER@CASE.COM", true},
		{"", false},
		{"plainaddress", false},
		{"missing@dot", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
		{"user@", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Email(tc.email), "email %q", tc.email)
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid with other symbol", "paSsw0rd,", true},
		{"too short", "Ab1!", false},
		{"no uppercase", "abcdef1!", false},
		{"no lowercase", "ABCDEF1!", false},
		{"no digit", "Abcdefg!", false},
		{"no symbol", "Abcdefg1", false},
		{"symbol outside set", "Abcdef1-", false},
		{"empty", "", false},
		{"weak", "weak", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Password(tc.password))
		})
	}
}
