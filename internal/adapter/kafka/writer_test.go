package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ice-report-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	date := time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC)
	thickness := 8.5
	o := domain.Observation{
		DateRaw:     "12/30/2025",
		Date:        &date,
		DateKey:     "12-30-2025",
		Lake:        "Harriet",
		CoordsRaw:   "44.92, -93.30",
		Coords:      &domain.Coordinates{Lat: 44.92, Lon: -93.30},
		ThicknessIn: &thickness,
		Info:        "clear ice",
	}

	msg, err := serializeToMessage(o)
	require.NoError(t, err)

	assert.Equal(t, []byte("Harriet|12-30-2025"), msg.Key)

	var decoded domain.Observation
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, o, decoded)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "lake", msg.Headers[0].Key)
	assert.Equal(t, []byte("Harriet"), msg.Headers[0].Value)
	assert.Equal(t, "date_key", msg.Headers[1].Key)
	assert.Equal(t, []byte("12-30-2025"), msg.Headers[1].Value)
}

func TestSerializeToMessage_UndatedObservation(t *testing.T) {
	o := domain.Observation{Lake: "Nokomis", Info: "no date reported"}

	msg, err := serializeToMessage(o)
	require.NoError(t, err)
	assert.Equal(t, []byte("Nokomis|"), msg.Key, "missing date leaves the key's date segment empty")
}
