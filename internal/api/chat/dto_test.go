package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRefUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected UserRef
	}{
		{"bare string", `"whatsapp:+234801"`, UserRef{ID: "whatsapp:+234801"}},
		{"bare string trimmed", `"  u1  "`, UserRef{ID: "u1"}},
		{"object with id", `{"id":"u1","name":"Ada"}`, UserRef{ID: "u1", Name: "Ada"}},
		{"object with user field", `{"user":"u2"}`, UserRef{ID: "u2"}},
		{"object with username", `{"username":"u3","displayName":"Ada"}`, UserRef{ID: "u3", Name: "Ada"}},
		{"name doubles as id when nothing else", `{"name":"Ada"}`, UserRef{ID: "Ada", Name: "Ada"}},
		{"id wins over user", `{"id":"u1","user":"u2"}`, UserRef{ID: "u1"}},
		{"name wins over displayName", `{"id":"u1","name":"Ada","displayName":"B"}`, UserRef{ID: "u1", Name: "Ada"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ref UserRef
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &ref))
			assert.Equal(t, tt.expected, ref)
		})
	}
}

func TestUserRefUnmarshalRejectsGarbage(t *testing.T) {
	var ref UserRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}

func TestUserRefEmpty(t *testing.T) {
	assert.True(t, UserRef{}.Empty())
	assert.True(t, UserRef{Name: "Ada"}.Empty())
	assert.False(t, UserRef{ID: "u1"}.Empty())
}

func TestIntentRequestDecoding(t *testing.T) {
	payload := `{"message":"I need a loan","user":{"id":"u1","name":"Ada"}}`

	var req IntentRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	assert.Equal(t, "I need a loan", req.Message)
	assert.Equal(t, "u1", req.User.ID)
	assert.Equal(t, "Ada", req.User.Name)
}
