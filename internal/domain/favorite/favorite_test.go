package favorite

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFavorite_TrimsLine(t *testing.T) {
	f, err := NewFavorite(uuid.New(), "  875A-10 ")
	require.NoError(t, err)
	assert.Equal(t, "875A-10", f.LineNumber())
}

func TestNewFavorite_Rejects(t *testing.T) {
	_, err := NewFavorite(uuid.Nil, "175T")
	assert.Error(t, err)

	_, err = NewFavorite(uuid.New(), "   ")
	assert.Error(t, err)

	_, err = NewFavorite(uuid.New(), strings.Repeat("9", MaxLineNumberLength+1))
	assert.Error(t, err)
}
