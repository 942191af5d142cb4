package arrival

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMinutes(t *testing.T) {
	cases := map[int]string{
		-3:  "now",
		0:   "now",
		1:   "1 minute",
		2:   "2 minutes",
		59:  "59 minutes",
		60:  "1h 0m",
		135: "2h 15m",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMinutes(in), "minutes=%d", in)
	}
}

func TestArrival_Status(t *testing.T) {
	assert.Equal(t, StatusArriving, Arrival{Minutes: 0}.Status())
	assert.Equal(t, StatusArriving, Arrival{Minutes: 2}.Status())
	assert.Equal(t, StatusOnTime, Arrival{Minutes: 3}.Status())
}

func TestArrival_DisplayName(t *testing.T) {
	assert.Equal(t, "Terminal Lapa", Arrival{LineName: "Terminal Lapa", Destination: "Centro"}.DisplayName())
	assert.Equal(t, "Centro", Arrival{Destination: "Centro"}.DisplayName())
	assert.Equal(t, "Destination", Arrival{}.DisplayName())
}

func TestFromSchedule(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 30, 0, time.UTC)

	a := FromSchedule("875A", "Perdizes", LineTypeBus, now.Add(7*time.Minute+20*time.Second), now)
	assert.Equal(t, 7, a.Minutes)
	assert.Equal(t, "08:07", a.ScheduledAt)

	past := FromSchedule("875A", "Perdizes", LineTypeBus, now.Add(-5*time.Minute), now)
	assert.Equal(t, 0, past.Minutes)
}

func TestBuildBoard(t *testing.T) {
	board := BuildBoard([]Arrival{
		{LineNumber: "B", Minutes: 12},
		{LineNumber: "A", Minutes: 1},
		{LineNumber: "C", Minutes: 1},
	}, map[string]bool{"C": true})

	require.Len(t, board, 3)
	assert.Equal(t, []string{"A", "C", "B"}, []string{board[0].LineNumber, board[1].LineNumber, board[2].LineNumber})
	assert.True(t, board[1].Favorited)
	assert.False(t, board[0].Favorited)
	assert.Equal(t, "1 minute", board[0].Label)
	assert.Equal(t, StatusOnTime, board[2].Status)
}

func TestParseSourceKind(t *testing.T) {
	k, err := ParseSourceKind("")
	require.NoError(t, err)
	assert.Equal(t, SourceStatic, k)

	k, err = ParseSourceKind("LIVE")
	require.NoError(t, err)
	assert.Equal(t, SourceLive, k)

	_, err = ParseSourceKind("mock")
	assert.Error(t, err)
}

func TestEarliest(t *testing.T) {
	got := Earliest([]Arrival{
		{LineNumber: "8000", Minutes: 15, ScheduledAt: "08:15"},
		{LineNumber: "L2", Minutes: 4},
		{LineNumber: "8000", Minutes: 3, ScheduledAt: "08:03"},
		{LineNumber: "8000", Minutes: 9},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "8000", got[0].LineNumber)
	assert.Equal(t, 3, got[0].Minutes)
	assert.Equal(t, "08:03", got[0].ScheduledAt)
	assert.Equal(t, "L2", got[1].LineNumber)
	assert.Empty(t, Earliest(nil))
}
