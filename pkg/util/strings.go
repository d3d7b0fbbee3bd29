package util

import (
    "math"
    "strconv"
    "strings"
)

// ParseFloat coerces an upstream numeric string. Blank, non-numeric and
// non-finite inputs report ok=false.
func ParseFloat(s string) (float64, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return 0, false
    }
    v, err := strconv.ParseFloat(s, 64)
    if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
        return 0, false
    }
    return v, true
}

// RedactQuery masks the value of key in a raw URL so it can be logged.
func RedactQuery(rawURL, key string) string {
    marker := key + "="
    i := strings.Index(rawURL, marker)
    if i < 0 {
        return rawURL
    }
    start := i + len(marker)
    end := strings.IndexByte(rawURL[start:], '&')
    if end < 0 {
        return rawURL[:start] + "***"
    }
    return rawURL[:start] + "***" + rawURL[start+end:]
}
