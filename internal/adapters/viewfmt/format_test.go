package viewfmt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", Number(0))
	assert.Equal(t, "250,000", Number(250000))
	assert.Equal(t, "1,234.5", Number(1234.5))
	assert.Equal(t, "72.25", Number(72.25))
	assert.Equal(t, "-3", Number(-3))
	assert.Equal(t, "", Number(math.NaN()))
	assert.Equal(t, "", Number(math.Inf(1)))
}

func TestNumber_KeepsFullPrecision(t *testing.T) {
	assert.Equal(t, "0.004", Number(0.004))
	assert.Equal(t, "0.125", Number(0.125))
	assert.Equal(t, "-0.5", Number(-0.5))
	assert.Equal(t, "-1,234.5", Number(-1234.5))
	assert.Equal(t, "1,000,000.001", Number(1000000.001))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "[2JMain St", PlainText("\x1b[2JMain St"))
	assert.Equal(t, "a b c", PlainText("a\nb\tc"))
	assert.Equal(t, "bell", PlainText("be\x07ll\u009b"))
	assert.Equal(t, "улица Ленина", PlainText("улица Ленина"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc…", Truncate("abcdef", 4))
	assert.Equal(t, "улиц…", Truncate("улица Ленина", 5))
	assert.Equal(t, "anything", Truncate("anything", 0))
}
