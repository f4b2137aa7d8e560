package assistant

import "strings"

// emojiRanges are the pictograph blocks stripped from replies. Small
// local models decorate terminal output with them and they break cell
// width math in the history tail.
var emojiRanges = [][2]rune{
	{0x1F300, 0x1F5FF},
	{0x1F600, 0x1F64F},
	{0x1F680, 0x1F6FF},
	{0x1F900, 0x1F9FF},
	{0x1F1E6, 0x1F1FF},
	{0x2600, 0x27BF},
	{0xFE00, 0xFE0F},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// Sanitize normalizes a model reply for terminal display: pictographs
// and stray control bytes go, space runs collapse within each line, and
// blank-line runs shrink to a single separator. Newlines survive so the
// history overlay can still render markdown structure.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isEmoji(r):
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7F:
		default:
			b.WriteRune(r)
		}
	}

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
