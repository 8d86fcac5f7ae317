// Package format normalizes raw collaborator output into platform-safe
// message text: merging stdout/stderr style streams and bounding the
// result against Discord's message limits.
package format

import "strings"

// MergeOutput combines a command's primary output with its diagnostics
// into one displayable block. Diagnostics come first, above the result,
// matching compiler-tool conventions. If both streams are blank a single
// space is returned because Discord renders an empty code block badly.
func MergeOutput(output, errors string) string {
	output = strings.TrimSpace(output)
	errors = strings.TrimSpace(errors)

	switch {
	case output == "" && errors == "":
		return " "
	case errors == "":
		return output
	case output == "":
		return errors
	default:
		return errors + "\n\n" + output
	}
}
