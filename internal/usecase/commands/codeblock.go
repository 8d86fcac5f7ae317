package commands

import (
	"regexp"
	"strings"

	"rustbot/internal/domain"
)

var (
	fencedBlock = regexp.MustCompile("(?s)```(?:([a-zA-Z0-9_+-]*)\n)?(.*?)```")
	inlineBlock = regexp.MustCompile("`([^`]+)`")
)

// ExtractCodeBlock pulls code out of a fenced (```lang ... ```) or inline
// (`...`) block. Returns domain.ErrMissingCodeBlock when the text has
// neither.
func ExtractCodeBlock(s string) (code, lang string, err error) {
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[2]), m[1], nil
	}
	if m := inlineBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1]), "", nil
	}
	return "", "", domain.ErrMissingCodeBlock
}
