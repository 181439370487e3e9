package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	s, err := NewSupplier("  Acme  ")
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.Name)

	_, err = NewSupplier("")
	require.Error(t, err)

	_, err = NewSupplier(strings.Repeat("a", 256))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot exceed 255")
}

func TestSupplier_Rename(t *testing.T) {
	s, _ := NewSupplier("Acme")
	require.NoError(t, s.Rename("Acme Corp"))
	assert.Equal(t, "Acme Corp", s.Name)
	require.Error(t, s.Rename(" "))
	assert.Equal(t, "Acme Corp", s.Name)
}

func TestSupplier_SetContact(t *testing.T) {
	s, _ := NewSupplier("Acme")

	require.NoError(t, s.SetContact("Jane Roe", "jane@acme.test", "555-0100"))
	assert.Equal(t, "jane@acme.test", s.Email)

	err := s.SetContact("Jane Roe", "not-an-email", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "@")

	require.NoError(t, s.SetContact("", "", ""))
	assert.Empty(t, s.Email)
}

func TestTag(t *testing.T) {
	tag, err := NewTag(" Support ")
	require.NoError(t, err)
	assert.Equal(t, "Support", tag.Name)

	_, err = NewTag("")
	require.Error(t, err)

	require.Error(t, tag.Rename(strings.Repeat("x", 65)))
	require.NoError(t, tag.Rename(strings.Repeat("x", 64)))
}
