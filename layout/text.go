package layout

// charWidth approximates a single character's rendered width in pixels at
// a 16px base font size, modeled on Arial/Helvetica metrics. Ported
// verbatim from the character-width table used to size text without an
// actual font rasterizer.
func charWidth(c rune) float64 {
	switch c {
	case 'i', 'l', '!', '|', '.', ',', ':', ';', '\'':
		return 4.0
	case 'I', 'j', 'f', 'r', 't':
		return 5.0
	case ' ', '(', ')', '[', ']', '{', '}':
		return 5.0
	case 'a', 'c', 'e', 'g', 'n', 'o', 'p', 's', 'u', 'v', 'x', 'y', 'z':
		return 8.5
	case 'b', 'd', 'h', 'k', 'q':
		return 9.0
	case 'w':
		return 12.0
	case 'm':
		return 13.0
	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'K', 'N', 'O', 'P', 'Q',
		'R', 'S', 'T', 'U', 'V', 'X', 'Y', 'Z':
		return 10.0
	case 'M', 'W':
		return 13.0
	case '-', '_', '=', '+', '~', '^':
		return 8.0
	case '@':
		return 15.0
	case '#', '$', '%', '&', '*':
		return 10.0
	case '/', '\\', '?':
		return 6.0
	case '"', '`':
		return 6.0
	case '<', '>':
		return 8.0
	}
	if c >= '0' && c <= '9' {
		return 8.5
	}
	return 9.6 // wide estimate for unicode outside the ASCII table
}

// measureTextWidth sums per-character widths scaled to fontSize against the
// 16px baseline the table was built at.
func measureTextWidth(text string, fontSize float64) float64 {
	scale := fontSize / 16.0
	var total float64
	for _, c := range text {
		total += charWidth(c) * scale
	}
	return total
}

// wrapText greedily breaks text into lines no wider than maxWidth at word
// boundaries, falling back to a single overflowing line when a single word
// exceeds maxWidth (never splits mid-word: this is a layout approximation,
// not a hyphenation engine).
func wrapText(text string, fontSize, maxWidth float64) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	words := fieldsPreserveNone(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur []string
	curWidth := 0.0
	spaceWidth := charWidth(' ') * fontSize / 16.0

	for _, w := range words {
		ww := measureTextWidth(w, fontSize)
		addition := ww
		if len(cur) > 0 {
			addition += spaceWidth
		}
		if len(cur) > 0 && curWidth+addition > maxWidth {
			lines = append(lines, joinWords(cur))
			cur = []string{w}
			curWidth = ww
			continue
		}
		cur = append(cur, w)
		curWidth += addition
	}
	if len(cur) > 0 {
		lines = append(lines, joinWords(cur))
	}
	return lines
}

func fieldsPreserveNone(s string) []string {
	var out []string
	start := -1
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, s[start:i])
			start = -1
		}
	}
	return out
}

func joinWords(words []string) string {
	out := words[0]
	for _, w := range words[1:] {
		out += " " + w
	}
	return out
}
