package profile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanmove/service-mobility/internal/platform/apperror"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile(" Ana Souza ", "Ana@Example.com ", "hash")
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", p.FullName())
	assert.Equal(t, "ana@example.com", p.Email())
	assert.Equal(t, int64(1), p.Version())
	assert.False(t, p.Address().IsSet())
}

func TestNewProfile_ReportsFields(t *testing.T) {
	_, err := NewProfile("", "not-an-email", "")

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"full_name", "email", "password"}, appErr.Fields)
}

func TestUpdateAddress(t *testing.T) {
	p, err := NewProfile("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	err = p.UpdateAddress(Address{Address: " Rua Augusta, 500 ", Complement: "apto 12", City: "São Paulo", State: "SP", ZipCode: "01304-000"})
	require.NoError(t, err)

	assert.Equal(t, "Rua Augusta, 500", p.Address().Address)
	assert.Equal(t, "Rua Augusta, 500, apto 12, São Paulo, SP, 01304-000", p.Address().Full())
	assert.Equal(t, int64(2), p.Version())
}

func TestUpdateAddress_RequiresCityAndState(t *testing.T) {
	p, err := NewProfile("Ana", "ana@example.com", "hash")
	require.NoError(t, err)

	err = p.UpdateAddress(Address{Address: "Rua Augusta"})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []string{"city", "state"}, appErr.Fields)
	assert.Equal(t, int64(1), p.Version())
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordBytes)))

	err := ValidatePassword(strings.Repeat("a", MaxPasswordBytes+1))
	assert.True(t, apperror.Is(err, apperror.CodeValidation))

	// multi-byte runes count by bytes
	assert.Error(t, ValidatePassword(strings.Repeat("é", 40)))
}
