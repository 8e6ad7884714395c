package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSceneTime_KnownLayouts(t *testing.T) {
	inputs := []string{
		"2023-07-15T09:50:21.024Z",
		"2023-07-15T09:50:21.024",
		"2023-07-15T09:50:21Z",
		"2023-07-15T09:50:21",
	}

	for _, input := range inputs {
		parsed, err := ParseSceneTime(input)
		assert.Nil(t, err, "failed to parse %s", input)
		assert.Equal(t, 2023, parsed.Year())
		assert.Equal(t, time.July, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
		assert.Equal(t, 9, parsed.Hour())
	}
}

func TestParseSceneTime_BadInput(t *testing.T) {
	_, err := ParseSceneTime("15/07/2023 09:50")
	assert.NotNil(t, err)

	_, err = ParseSceneTime("")
	assert.NotNil(t, err)
}

func TestTimeFromEpochMillis(t *testing.T) {
	// 2023-07-15T09:50:21.024Z
	parsed := TimeFromEpochMillis(1689414621024)

	assert.Equal(t, time.UTC, parsed.Location())
	assert.Equal(t, "2023-07-15T09:50:21.024Z", parsed.Format("2006-01-02T15:04:05.999Z"))
}

func TestTimeFromEpochMillis_Epoch(t *testing.T) {
	assert.True(t, TimeFromEpochMillis(0).Equal(time.Unix(0, 0)))
}
