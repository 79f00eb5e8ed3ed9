package format

import "strings"

const (
	mdV1Specials = "_*`["
	mdV2Specials = "_*[]()~`>#+-=|{}.!"
)

// EscapeMarkdown escapes Telegram Markdown (v1) special characters so
// user-provided text can be embedded in formatted messages.
func EscapeMarkdown(text string) string {
	return escape(text, mdV1Specials)
}

// EscapeMarkdownV2 escapes the full MarkdownV2 special set.
func EscapeMarkdownV2(text string) string {
	return escape(text, mdV2Specials)
}

func escape(text, specials string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(specials, r) || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
