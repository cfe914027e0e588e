package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeconds(t *testing.T) {
	assert.Equal(t, "0s", Seconds(0))
	assert.Equal(t, "45s", Seconds(45))
	assert.Equal(t, "1m 0s", Seconds(60))
	assert.Equal(t, "20m 0s", Seconds(1200))
	assert.Equal(t, "1h 1m 5s", Seconds(3665))
	assert.Equal(t, "0s", Seconds(-10), "negative values clamp to zero")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "long str…", Truncate("long string here", 9))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"SERIAL", "STATE"},
		[][]string{
			{"SN001", "open"},
			{"SN000123", "closed"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[2], "SN001")
	assert.Contains(t, lines[3], "SN000123")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}
