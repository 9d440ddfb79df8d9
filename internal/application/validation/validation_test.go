package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  []string
	}{
		{"valid", "a@b.com", nil},
		{"plus and dots", "first.last+tag@mail.example.org", nil},
		{"blank", "   ", []string{"Email is required"}},
		{"no at", "ab.com", []string{"Invalid email format"}},
		{"short tld", "a@b.c", []string{"Invalid email format"}},
		{"too long", strings.Repeat("a", 250) + "@b.com", []string{"Email is too long"}},
		{"too long and invalid", strings.Repeat("a", 260), []string{"Invalid email format", "Email is too long"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.email))
		})
	}
}

func TestPassword(t *testing.T) {
	assert.Empty(t, Password("Passw0rd"))

	errs := Password("short")
	assert.Contains(t, errs, "Password must be at least 8 characters long")
	assert.Contains(t, errs, "Password must contain at least one uppercase letter")
	assert.Contains(t, errs, "Password must contain at least one number")
	assert.NotContains(t, errs, "Password must contain at least one lowercase letter")

	assert.Equal(t, []string{"Password must contain at least one uppercase letter"}, Password("alllowercase1"))
	assert.Equal(t, []string{"Password must contain at least one lowercase letter"}, Password("ALLUPPER1"))
	assert.Equal(t, []string{"Password is too long"}, Password("Aa1"+strings.Repeat("x", 126)))
	assert.Empty(t, Password("Aa1"+strings.Repeat("x", 125)))
}

func TestPasswordAccumulatesEveryViolation(t *testing.T) {
	errs := Password("")
	assert.Len(t, errs, 4)
}

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"valid", "Ann", nil},
		{"hyphen apostrophe space", "Mary-Jane O'Neil", nil},
		{"unicode letters", "Zoë Åberg", nil},
		{"blank", "  ", []string{"Name is required"}},
		{"single char", "A", []string{"Name must be at least 2 characters long"}},
		{"too long", strings.Repeat("a", 51), []string{"Name is too long"}},
		{"digits", "R2D2", []string{"Name contains invalid characters"}},
		{"single digit", "7", []string{"Name must be at least 2 characters long", "Name contains invalid characters"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Empty(t, Title("Buy milk"))
	assert.Empty(t, Title(strings.Repeat("t", 200)))
	assert.Equal(t, []string{"Title is too long"}, Title(strings.Repeat("t", 201)))
	assert.Equal(t, []string{"Title is required"}, Title(" \t"))
}

func TestDescription(t *testing.T) {
	assert.Empty(t, Description(nil))
	ok := strings.Repeat("d", 500)
	assert.Empty(t, Description(&ok))
	long := strings.Repeat("d", 501)
	assert.Equal(t, []string{"Description is too long"}, Description(&long))
}

func TestRegistrationCollectsAllFields(t *testing.T) {
	errs := Registration("bad", "short", "")
	assert.Contains(t, errs, "Invalid email format")
	assert.Contains(t, errs, "Password must be at least 8 characters long")
	assert.Contains(t, errs, "Name is required")
	assert.Empty(t, Registration("a@b.com", "Passw0rd", "Ann"))
}

func TestTodo(t *testing.T) {
	long := strings.Repeat("d", 501)
	errs := Todo("", &long)
	assert.Equal(t, []string{"Title is required", "Description is too long"}, errs)
}
