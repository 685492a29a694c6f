// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format the remote API expects in push
// payloads.
const DateLayout = "2006-01-02"

// serverLayouts are tried in order. Layouts without an offset are
// interpreted as UTC.
var serverLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseServerTime parses a timestamp produced by the remote API. Timestamps
// without a zone designator are taken as UTC.
func ParseServerTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range serverLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// EpochMillis converts t to milliseconds since the Unix epoch. The zero
// time maps to 0.
func EpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromEpochMillis is the inverse of EpochMillis.
func FromEpochMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// FormatUTC renders t as RFC 3339 with millisecond precision in UTC.
func FormatUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// FormatDate reformats any timestamp accepted by ParseServerTime as
// YYYY-MM-DD. Unparseable input is returned unchanged.
func FormatDate(s string) string {
	t, err := ParseServerTime(s)
	if err != nil {
		return s
	}
	return t.Format(DateLayout)
}
