package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEdgeParsesWireTimestamp(t *testing.T) {
	e, err := NewEdge("raffi", "maryam", "2016-03-28T23:25:21Z")
	require.NoError(t, err)

	assert.Equal(t, "raffi", e.V1)
	assert.Equal(t, "maryam", e.V2)
	assert.Equal(t, time.Date(2016, 3, 28, 23, 25, 21, 0, time.UTC), e.Created)
	assert.Equal(t, [2]string{"raffi", "maryam"}, e.Vertices())
}

func TestNewEdgeRejectsMalformedTimestamps(t *testing.T) {
	cases := []struct {
		name string
		ts   string
	}{
		{"invalid month", "2016-13-28T23:25:21Z"},
		{"invalid day", "2016-02-30T10:00:00Z"},
		{"invalid hour", "2016-03-28T-1:25:21Z"},
		{"invalid minute", "2016-03-28T23:61:21Z"},
		{"invalid second", "2016-03-28T23:25:100Z"},
		{"missing zulu suffix", "2016-03-28T23:25:21"},
		{"numeric offset instead of zulu", "2016-03-28T23:25:21+00:00"},
		{"fractional seconds", "2016-03-28T23:25:21.500Z"},
		{"trailing garbage", "2016-03-28T23:25:21Zabc"},
		{"empty", ""},
		{"not a timestamp at all", "last tuesday"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEdge("a", "b", tc.ts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
		})
	}
}
