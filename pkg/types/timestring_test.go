package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")

		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, raw := range []string{"9:30", "25:00", "10:60", "abc", ""} {
			_, err := NewTimeStringFromString(raw)
			assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", raw)
		}
	})
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("09:30").Validate())

	// Без ведущего нуля строка ломает лексикографический порядок
	assert.ErrorIs(t, TimeString("9:30").Validate(), ErrInvalidTimeString)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(570)

		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("midnight", func(t *testing.T) {
		ts, err := NewTimeStringFromMinutes(0)

		require.NoError(t, err)
		assert.Equal(t, "00:00", ts.String())
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := NewTimeStringFromMinutes(1440)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)

		_, err = NewTimeStringFromMinutes(-1)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_MinuteOfDay(t *testing.T) {
	ts := TimeString("17:45")

	minutes, err := ts.MinuteOfDay()

	require.NoError(t, err)
	assert.Equal(t, 17*60+45, minutes)
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		ts := TimeString("10:00")

		result, err := ts.AddMinutes(90)

		require.NoError(t, err)
		assert.Equal(t, "11:30", result.String())
	})

	t.Run("past midnight", func(t *testing.T) {
		ts := TimeString("23:30")

		_, err := ts.AddMinutes(60)

		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan(time.Date(2025, 10, 15, 14, 30, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("from string with seconds", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan("10:00:00")

		require.NoError(t, err)
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		err := ts.Scan([]byte("08:15"))

		require.NoError(t, err)
		assert.Equal(t, "08:15", ts.String())
	})

	t.Run("nil resets", func(t *testing.T) {
		ts := TimeString("10:00")
		err := ts.Scan(nil)

		require.NoError(t, err)
		assert.True(t, ts.IsZero())
	})
}

func TestTimeString_Value(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		v, err := TimeString("10:00").Value()

		require.NoError(t, err)
		assert.Equal(t, "10:00", v)
	})

	t.Run("zero is nil", func(t *testing.T) {
		v, err := TimeString("").Value()

		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("invalid rejected", func(t *testing.T) {
		_, err := TimeString("bad").Value()

		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})
}
