package format

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// panicNotice fails the test if the notice producer is ever invoked.
func panicNotice(t *testing.T) NoticeFunc {
	return func(context.Context) string {
		t.Fatal("notice producer invoked although nothing was truncated")
		return ""
	}
}

// countingNotice records how often the producer runs.
func countingNotice(text string, calls *int) NoticeFunc {
	return func(context.Context) string {
		*calls++
		return text
	}
}

func TestTruncateFittingTextIsUntouched(t *testing.T) {
	body := "fn main() {}\nprintln!"
	got := Truncate(context.Background(), body, "```", panicNotice(t))
	assert.Equal(t, body+"```", got)
}

func TestTruncateCharLimit(t *testing.T) {
	body := strings.Repeat("x", 2500)
	calls := 0
	got := Truncate(context.Background(), body, "```", countingNotice("...truncated", &calls))

	assert.Equal(t, 1, calls)
	assert.LessOrEqual(t, len(got), 2000)
	assert.True(t, strings.HasSuffix(got, "```...truncated"))
	prefix := strings.TrimSuffix(got, "```...truncated")
	assert.True(t, strings.HasPrefix(body, prefix))
}

func TestTruncateRespectsCharacterBoundaries(t *testing.T) {
	// Multi-byte runes all the way through; a naive byte cut would slice
	// one in half.
	body := strings.Repeat("ü", 1500)
	calls := 0
	got := Truncate(context.Background(), body, "```", countingNotice("n", &calls))

	assert.LessOrEqual(t, len(got), 2000)
	cutBody := strings.TrimSuffix(got, "```n")
	assert.True(t, utf8.ValidString(cutBody))
	assert.True(t, strings.HasPrefix(body, cutBody))
}

func TestTruncateLineLimit(t *testing.T) {
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = "line"
	}
	body := strings.Join(lines, "\n")

	calls := 0
	got := Truncate(context.Background(), body, "```", countingNotice("<notice>", &calls))

	require.Equal(t, 1, calls)
	want := strings.Join(lines[:45], "\n") + "```<notice>"
	assert.Equal(t, want, got)
}

func TestTruncateNoticeProducedOnceForBothLimits(t *testing.T) {
	// 50 lines of 100 chars each breaks the char limit and the line limit.
	lines := make([]string, 50)
	for i := range lines {
		lines[i] = strings.Repeat("y", 100)
	}
	body := strings.Join(lines, "\n")

	calls := 0
	got := Truncate(context.Background(), body, "```", countingNotice("...", &calls))

	assert.Equal(t, 1, calls)
	assert.LessOrEqual(t, len(got), 2000)
}

func TestTruncateNoticeLeavesRoomForClosing(t *testing.T) {
	body := strings.Repeat("z", 4000)
	calls := 0
	notice := countingNotice("\nfull output: https://play.example/abcdef", &calls)
	got := Truncate(context.Background(), body, "```", notice)

	assert.LessOrEqual(t, len(got), 2000)
	assert.Contains(t, got, "```\nfull output:")
}
