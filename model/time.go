package model

import (
	"fmt"
	"time"
)

// The upstream catalog returns datetime data in several shapes: RFC3339-ish
// strings in a handful of variants, plus a generation timestamp in epoch
// milliseconds. None of the string forms adhere to a single official IETF
// standard, so we need lenient "multi-format" parsing functionality.

var sceneTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseSceneTime is a drop-in replacement for time.Parse, but matching
// against multiple possible catalog time formats
func ParseSceneTime(sceneTime string) (time.Time, error) {
	for _, layout := range sceneTimeLayouts {
		if output, err := time.Parse(layout, sceneTime); err == nil {
			return output, nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", sceneTime)
}

// TimeFromEpochMillis converts an upstream generation timestamp in epoch
// milliseconds into a UTC time
func TimeFromEpochMillis(millis int64) time.Time {
	return time.Unix(millis/1000, (millis%1000)*int64(time.Millisecond)).UTC()
}
