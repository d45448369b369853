package github

import (
	"net/http"
	"strconv"
	"time"
)

// resetTime parses X-RateLimit-Reset (epoch seconds). A missing or malformed
// header yields the zero time.
func resetTime(h http.Header) time.Time {
	v := h.Get("X-RateLimit-Reset")
	if v == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
