package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("student@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.org"))

	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("notanemail"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail("UPPER@EXAMPLE.COM"))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Al"))
	assert.True(t, ValidName("Maria"))
	assert.True(t, ValidName(strings.Repeat("a", NameMaxLength)))

	assert.False(t, ValidName("A"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName(strings.Repeat("a", NameMaxLength+1)))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("12345678"))
	assert.True(t, ValidPassword("a much longer passphrase"))

	assert.False(t, ValidPassword(""))
	assert.False(t, ValidPassword("short1"))
}
