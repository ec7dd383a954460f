package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FlexID
	}{
		{"numeric timestamp", `{"id": 1700000000000}`, "1700000000000"},
		{"string timestamp", `{"id": "1700000000000"}`, "1700000000000"},
		{"uuid string", `{"id": "b2f7c3a0-1111-4f5e-9c3d-000000000001"}`, "b2f7c3a0-1111-4f5e-9c3d-000000000001"},
		{"small int", `{"id": 555}`, "555"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				ID FlexID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.in), &payload))
			assert.Equal(t, tt.want, payload.ID)
		})
	}
}

func TestFlexIDRejectsOtherTypes(t *testing.T) {
	var payload struct {
		ID FlexID `json:"id"`
	}
	err := json.Unmarshal([]byte(`{"id": true}`), &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id")
}

func TestDateOnly(t *testing.T) {
	var payload struct {
		Fecha DateOnly `json:"fecha"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"fecha": "2024-03-01"}`), &payload))
	assert.Equal(t, "2024-03-01", payload.Fecha.Format("2006-01-02"))

	out, err := json.Marshal(payload.Fecha)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-01"`, string(out))
}

func TestDateOnlyInvalid(t *testing.T) {
	var payload struct {
		Fecha DateOnly `json:"fecha"`
	}

	err := json.Unmarshal([]byte(`{"fecha": "01/03/2024"}`), &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fecha")

	err = json.Unmarshal([]byte(`{"fecha": 20240301}`), &payload)
	require.Error(t, err)
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		in   string
		want ClockTime
	}{
		{`"10:00"`, "10:00"},
		{`"10:00:00"`, "10:00"},
		{`"23:59:59"`, "23:59"},
	}

	for _, tt := range tests {
		var c ClockTime
		require.NoError(t, json.Unmarshal([]byte(tt.in), &c), tt.in)
		assert.Equal(t, tt.want, c)
	}
}

func TestClockTimeInvalid(t *testing.T) {
	var c ClockTime
	err := json.Unmarshal([]byte(`"25:99"`), &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hora")
}
