package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateRepresentations(t *testing.T) {
	for _, input := range []string{
		"1990-03-15",
		"1990-03-15T08:30:00Z",
		"1990-03-15T08:30:00+05:00",
		"1990-03-15T08:30:00",
		"1990-03-15 08:30:00",
	} {
		key, err := normalizeDate(input)
		require.NoError(t, err, "input: %s", input)
		assert.Equal(t, "1990-03-15", key)
	}
}

func TestNormalizeDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "15/03/1990", "yesterday"} {
		_, err := normalizeDate(input)
		assert.Error(t, err, "input: %q", input)
	}
}

func TestDateRangeInclusiveBounds(t *testing.T) {
	r := &DateRange{Start: "1990-01-01", End: "1990-12-31"}

	assert.True(t, r.inRange("1990-01-01"))
	assert.True(t, r.inRange("1990-12-31"))
	assert.True(t, r.inRange("1990-06-15"))
	assert.False(t, r.inRange("1989-12-31"))
	assert.False(t, r.inRange("1991-01-01"))

	var open *DateRange
	assert.True(t, open.inRange("1990-06-15"))

	startOnly := &DateRange{Start: "1990-06-01"}
	assert.True(t, startOnly.inRange("1991-01-01"))
	assert.False(t, startOnly.inRange("1990-05-31"))
}
