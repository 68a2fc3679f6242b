package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_ScanAcceptsDriverShapes(t *testing.T) {
	want := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	for _, src := range []any{
		"2024-01-31",
		[]byte("2024-01-31"),
		"2024-01-31T00:00:00Z",
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.FixedZone("x", 3600)),
	} {
		var d Date
		require.NoError(t, d.Scan(src), "%v", src)
		assert.True(t, want.Equal(d.Time), "%v scanned as %v", src, d.Time)
	}

	var d Date
	assert.Error(t, d.Scan(nil))
	assert.Error(t, d.Scan(42))
}

func TestNullDate_ScanAndValue(t *testing.T) {
	var d NullDate
	require.NoError(t, d.Scan(nil))
	assert.False(t, d.Valid)
	assert.Nil(t, d.Ptr())
	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, d.Scan("2024-02-29"))
	assert.True(t, d.Valid)
	require.NotNil(t, d.Ptr())
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", v)
}
