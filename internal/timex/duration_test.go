package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var holder struct {
		TTL Duration `json:"ttl"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":"168h"}`), &holder))
	assert.Equal(t, 168*time.Hour, holder.TTL.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"ttl":1000000000}`), &holder))
	assert.Equal(t, time.Second, holder.TTL.Duration)

	assert.Error(t, json.Unmarshal([]byte(`{"ttl":"soon"}`), &holder))
	assert.Error(t, json.Unmarshal([]byte(`{"ttl":true}`), &holder))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 90 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"1h30m0s"`, string(b))
}
