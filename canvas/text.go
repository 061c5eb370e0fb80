package canvas

import "github.com/mattn/go-runewidth"

// StringWidth returns the display width of a string in terminal cells.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// FitText truncates text to maxWidth cells, ending with ellipsis when cut.
func FitText(text string, maxWidth int, ellipsis string) string {
	if maxWidth <= 0 {
		return ""
	}
	if StringWidth(text) <= maxWidth {
		return text
	}
	if StringWidth(ellipsis) >= maxWidth {
		return runewidth.Truncate(text, maxWidth, "")
	}
	return runewidth.Truncate(text, maxWidth, ellipsis)
}
