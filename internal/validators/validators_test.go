package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@example.com"))
	assert.False(t, IsEmail("Ana <ana@example.com>"))
	assert.False(t, IsEmail("ana@localhost"))
	assert.False(t, IsEmail("not-an-email"))
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.True(t, IsPhone("+55 11 98765-4321"))
	assert.False(t, IsPhone("123"))
}
