package util

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestParseFloat(t *testing.T) {
    v, ok := ParseFloat(" 1.25 ")
    assert.True(t, ok)
    assert.Equal(t, 1.25, v)

    for _, s := range []string{"", "abc", "NaN", "Inf", "1.2.3"} {
        _, ok := ParseFloat(s)
        assert.False(t, ok, s)
    }
}

func TestRedactQuery(t *testing.T) {
    assert.Equal(t, "https://x/query?apikey=***&symbol=SPY", RedactQuery("https://x/query?apikey=SECRET&symbol=SPY", "apikey"))
    assert.Equal(t, "https://x/query?symbol=SPY&apikey=***", RedactQuery("https://x/query?symbol=SPY&apikey=SECRET", "apikey"))
    assert.Equal(t, "https://x/query?symbol=SPY", RedactQuery("https://x/query?symbol=SPY", "apikey"))
}
