package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedule-proposer/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	tm := time.Date(2024, 5, 10, 20, 30, 0, 0, tokyo)

	b, err := json.Marshal(response.DateTime(tm))
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-10 20:30:00"`, string(b))
}
