package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"studio-ana", true},
		{"ana123", true},
		{"a-b-c", true},
		{"ab", false},
		{"Studio-Ana", false},
		{"studio ana", false},
		{"-studio", false},
		{"studio-", false},
		{"studio--ana", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateSlug(tt.slug), "ValidateSlug(%q)", tt.slug)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ana@example.com"))
	assert.False(t, ValidateEmail("ana@"))
	assert.False(t, ValidateEmail("not-an-email"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+55 (11) 99999-0000"))
	assert.True(t, ValidatePhone("11999990000"))
	assert.False(t, ValidatePhone("123"))
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Studio Ana", "studio-ana"},
		{"  Ana's  Salon  ", "ana-s-salon"},
		{"UPPER", "upper"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
