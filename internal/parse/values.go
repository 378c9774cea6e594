// Package parse converts raw wire values (headers, path segments, query
// parameters, timestamps) into typed values.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wire format of booking times: ISO-8601 without zone.
const TimestampLayout = "2006-01-02T15:04:05"

var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d{1,9})?$`)

// UserID parses the acting user id taken from the identity header.
func UserID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("user id is required")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id: %q", raw)
	}
	return id, nil
}

// ID parses a positive numeric path parameter.
func ID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// Timestamp parses a zone-less ISO-8601 time. The wall clock is kept as UTC and
// any fractional seconds are dropped.
func Timestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if !timestampRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid timestamp %q, expected %s", raw, TimestampLayout)
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return t.Truncate(time.Second), nil
}

// Approved parses the "approved" decision flag.
func Approved(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("approved must be true or false, got %q", raw)
	}
}

// Default page of request listings.
const (
	DefaultFrom = 0
	DefaultSize = 10
)

// Paging parses the "from" and "size" query parameters. Empty values take the defaults;
// from must not be negative and size must be positive.
func Paging(rawFrom, rawSize string) (from, size int, err error) {
	from, size = DefaultFrom, DefaultSize
	if s := strings.TrimSpace(rawFrom); s != "" {
		if from, err = strconv.Atoi(s); err != nil || from < 0 {
			return 0, 0, fmt.Errorf("from must be a non-negative integer, got %q", rawFrom)
		}
	}
	if s := strings.TrimSpace(rawSize); s != "" {
		if size, err = strconv.Atoi(s); err != nil || size <= 0 {
			return 0, 0, fmt.Errorf("size must be a positive integer, got %q", rawSize)
		}
	}
	return from, size, nil
}
