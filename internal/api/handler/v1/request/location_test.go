package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateLocationRequest_NestedBody(t *testing.T) {
	body := `{"location":{"latitude":48.1315,"longitude":11.5497,"accuracy":5,"timestamp":"2025-09-21T14:00:00Z"}}`

	var req UpdateLocationRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Validate())

	assert.Equal(t, 48.1315, *req.Location.Latitude)
	assert.Equal(t, 11.5497, *req.Location.Longitude)
	assert.Equal(t, 5.0, *req.Location.Accuracy)
	assert.NotNil(t, req.Location.Timestamp)
}

func TestUpdateLocationRequest_MissingCoordinates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "empty location", body: `{"location":{}}`},
		{name: "coordinates not nested under location", body: `{"latitude":48.1315,"longitude":11.5497}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateLocationRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			assert.Error(t, req.Validate())
		})
	}
}

func TestUpdateLocationRequest_ZeroCoordinatesAreValid(t *testing.T) {
	var req UpdateLocationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"location":{"latitude":0,"longitude":0}}`), &req))

	assert.NoError(t, req.Validate())
}
