package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarPatch_UserIDStates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want OptionalID
	}{
		{name: "absent", body: `{"year": 2001}`, want: OptionalID{}},
		{name: "null", body: `{"user_id": null}`, want: NullID()},
		{name: "value", body: `{"user_id": 7}`, want: SomeID(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch CarPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.Equal(t, tt.want, patch.UserID)
		})
	}
}

func TestCarPatch_NullOwnerIsNotEmpty(t *testing.T) {
	var patch CarPatch
	require.NoError(t, json.Unmarshal([]byte(`{"user_id": null}`), &patch))

	assert.False(t, patch.IsEmpty())
	assert.Nil(t, patch.UserID.Ptr())
}

func TestOptionalID_RejectsNonInteger(t *testing.T) {
	var patch CarPatch
	assert.Error(t, json.Unmarshal([]byte(`{"user_id": "seven"}`), &patch))
}
