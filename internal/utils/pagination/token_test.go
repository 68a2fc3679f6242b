package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	date := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	token := EncodeToken(date, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedDate, decodedID, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(decodedDate), "Date should match after decode")
	assert.Equal(t, int64(42), decodedID)
}

func TestEncodeTokenDropsClock(t *testing.T) {
	withClock := time.Date(2024, 3, 31, 17, 45, 0, 0, time.UTC)

	decodedDate, _, err := DecodeToken(EncodeToken(withClock, 7))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), decodedDate)
}

func TestDecodeTokenError(t *testing.T) {
	raw := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name    string
		token   string
		wantMsg string
	}{
		{name: "not base64", token: "this is not base64!", wantMsg: "base64 decode"},
		{name: "missing separator", token: raw("2024-03-31"), wantMsg: "split"},
		{name: "too many fields", token: raw("2024-03-31|1|2"), wantMsg: "split"},
		{name: "bad date", token: raw("notadate|5"), wantMsg: "date parse"},
		{name: "bad id", token: raw("2024-03-31|abc"), wantMsg: "id parse"},
		{name: "zero id", token: raw("2024-03-31|0"), wantMsg: "id parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeToken(tt.token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")

	fields, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, fields)

	_, err = DecodeMultiFieldToken("%%%")
	assert.Error(t, err)
}
