package format

import (
	"context"
	"strings"
	"unicode/utf8"
)

const (
	// Discord's hard limit on message content.
	messageCharLimit = 2000
	maxOutputLines   = 45
)

// NoticeFunc produces the truncation notice. Building the notice can be
// expensive (it may involve a network round trip to create a share link),
// so Truncate only calls it when truncation actually happens, and at most
// once per call.
type NoticeFunc func(ctx context.Context) string

// Truncate bounds body against the message size limits. closing is always
// appended intact; it exists for trailing code fences that must survive
// truncation. The result is body+closing, or body+closing+notice when
// either limit was exceeded.
func Truncate(ctx context.Context, body, closing string, notice NoticeFunc) string {
	var noticeText string
	haveNotice := false
	materialize := func() string {
		if !haveNotice {
			noticeText = notice(ctx)
			haveNotice = true
		}
		return noticeText
	}

	if len(body)+len(closing) > messageCharLimit {
		n := materialize()

		available := messageCharLimit - len(closing) - len(n)
		if available < 0 {
			available = 0
		}

		cut := available
		if cut > len(body) {
			cut = len(body)
		}
		// Never split a multi-byte character.
		for cut > 0 && cut < len(body) && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}

	if countLines(body) > maxOutputLines {
		materialize()
		body = strings.Join(strings.Split(body, "\n")[:maxOutputLines], "\n")
	}

	if haveNotice {
		return body + closing + noticeText
	}
	return body + closing
}

// countLines counts lines the way a terminal would: a trailing newline
// does not start an extra line.
func countLines(s string) int {
	if s == "" {
		return 1
	}
	return len(strings.Split(strings.TrimSuffix(s, "\n"), "\n"))
}
