package normalize

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tables := []struct {
		in   string
		want int64
	}{
		{"1:02:03", 3723},
		{"05:30", 330},
		{"42", 42},
		{"0:00", 0},
		{"10:00:00", 36000},
		{" 3:07 ", 187},
	}
	for _, table := range tables {
		got, err := ParseDuration(table.in)
		require.NoError(t, err, table.in)
		assert.Equal(t, table.want, got, table.in)
	}
}

func TestParseDurationMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1:xx", "1::2", "-5", "1:2:3:4", "1.5:00",
		"3000000:00:00", "5124095576:00:00", "9223372036854775807", "99999999999999999999"} {
		_, err := ParseDuration(in)
		assert.ErrorIs(t, err, ErrMalformedDuration, "%q", in)
	}
}

func TestParseDurationLongest(t *testing.T) {
	got, err := ParseDuration(strconv.FormatInt(MaxDurationSeconds, 10))
	require.NoError(t, err)
	assert.Equal(t, MaxDurationSeconds, got)
	assert.False(t, strings.HasPrefix(model.DurationFromSeconds(got).String(), "-"))
}

func TestDurationRoundTrip(t *testing.T) {
	tables := []struct {
		in   string
		want string
	}{
		{"1:02:03", "1:02:03"},
		{"01:02:03", "1:02:03"},
		{"12:00:59", "12:00:59"},
		{"0:45:10", "45:10"},
		{"05:30", "5:30"},
	}
	for _, table := range tables {
		seconds, err := ParseDuration(table.in)
		require.NoError(t, err)
		assert.Equal(t, table.want, model.DurationFromSeconds(seconds).String(), table.in)
	}
}

func TestParseDateFull(t *testing.T) {
	now := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	tables := []struct {
		in   string
		want time.Time
	}{
		{"15 января 2024", time.Date(2024, time.January, 15, 0, 0, 0, 0, model.Location())},
		{"1 Май 2023", time.Date(2023, time.May, 1, 0, 0, 0, 0, model.Location())},
		{"29 февраля 2024", time.Date(2024, time.February, 29, 0, 0, 0, 0, model.Location())},
		{"7 December 2022", time.Date(2022, time.December, 7, 0, 0, 0, 0, model.Location())},
	}
	for _, table := range tables {
		got, dateOnly, err := ParseDate(table.in, now)
		require.NoError(t, err, table.in)
		assert.True(t, dateOnly, table.in)
		assert.True(t, table.want.Equal(got), "%q: got %s want %s", table.in, got, table.want)
		assert.Equal(t, model.Location().String(), got.Location().String())
	}
}

func TestParseDateTimeOfDay(t *testing.T) {
	// 22:30 UTC on March 3rd is already March 4th in Moscow.
	now := time.Date(2024, time.March, 3, 22, 30, 0, 0, time.UTC)
	got, dateOnly, err := ParseDate("09:15", now)
	require.NoError(t, err)
	assert.False(t, dateOnly)
	want := time.Date(2024, time.March, 4, 9, 15, 0, 0, model.Location())
	assert.True(t, want.Equal(got), "got %s want %s", got, want)
	_, offset := got.Zone()
	assert.Equal(t, 3*60*60, offset)
}

func TestParseDateUnparseable(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "вчера", "31 февраля 2024", "15 foo 2024", "25:99", "2024-01-15"} {
		_, _, err := ParseDate(in, now)
		assert.ErrorIs(t, err, ErrUnparseableDate, "%q", in)
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "", Description(nil))
	s := "Выпуск о главном"
	assert.Equal(t, s, Description(&s))
}
