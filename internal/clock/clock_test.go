package clock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{input: "12:00", want: At(12, 0, 0)},
		{input: "18:30:45", want: At(18, 30, 45)},
		{input: "00:00", want: At(0, 0, 0)},
		{input: "23:59:59", want: At(23, 59, 59)},
		{input: "25:00", wantErr: true},
		{input: "noon", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDayAdd_WrapsAroundMidnight(t *testing.T) {
	assert.Equal(t, At(23, 0, 0), At(1, 0, 0).Add(-2*time.Hour))
	assert.Equal(t, At(1, 30, 0), At(23, 30, 0).Add(2*time.Hour))
	assert.Equal(t, At(16, 0, 0), At(18, 0, 0).Add(-2*time.Hour))
}

func TestTimeOfDayOrdering(t *testing.T) {
	assert.True(t, At(18, 0, 0).Before(At(20, 1, 0)))
	assert.True(t, At(20, 1, 0).After(At(18, 0, 0)))
	assert.False(t, At(18, 0, 0).Before(At(18, 0, 0)))
}

func TestTimeOfDayJSON(t *testing.T) {
	data, err := json.Marshal(At(18, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, `"18:00:00"`, string(data))

	var parsed TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"19:30"`), &parsed))
	assert.Equal(t, At(19, 30, 0), parsed)

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &parsed))
}

func TestTimeOfDayScan(t *testing.T) {
	var tod TimeOfDay

	require.NoError(t, tod.Scan("18:00:00"))
	assert.Equal(t, At(18, 0, 0), tod)

	require.NoError(t, tod.Scan([]byte("12:15:30")))
	assert.Equal(t, At(12, 15, 30), tod)

	require.NoError(t, tod.Scan(time.Date(2024, 5, 14, 21, 45, 0, 0, time.UTC)))
	assert.Equal(t, At(21, 45, 0), tod)

	assert.Error(t, tod.Scan(42))
}

func TestFixedOffsetClock(t *testing.T) {
	c := NewFixedOffsetClock(3)
	_, offset := c.Now().Zone()
	assert.Equal(t, 3*3600, offset)

	half := NewFixedOffsetClock(5.5)
	_, offset = half.Now().Zone()
	assert.Equal(t, int(5.5*3600), offset)
}
