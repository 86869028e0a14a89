package routes

import "strings"

// polishASCII maps the nine Polish diacritics to their ASCII equivalents.
// The mapping must stay byte-for-byte identical to the one used by the
// client-side link generator or derived links will 404.
var polishASCII = map[rune]rune{
	'ą': 'a',
	'ć': 'c',
	'ę': 'e',
	'ł': 'l',
	'ń': 'n',
	'ó': 'o',
	'ś': 's',
	'ź': 'z',
	'ż': 'z',
}

// Slugify derives a URL-safe slug from a human-readable title: lowercase,
// Polish diacritics folded to ASCII, every other non-alphanumeric run
// collapsed to a single hyphen, no leading or trailing hyphen. Idempotent.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if mapped, ok := polishASCII[r]; ok {
			r = mapped
		}
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
