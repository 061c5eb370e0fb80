package canvas

// Arms is the set of directions a box-drawing glyph reaches toward.
type Arms uint8

const (
	ArmN Arms = 1 << iota
	ArmE
	ArmS
	ArmW

	ArmsHorizontal = ArmE | ArmW
	ArmsVertical   = ArmN | ArmS
	ArmsAll        = ArmN | ArmE | ArmS | ArmW
)

// Has reports whether every arm of b is in a.
func (a Arms) Has(b Arms) bool {
	return a&b == b
}

// Count returns the number of arms.
func (a Arms) Count() int {
	n := 0
	for _, d := range []Arms{ArmN, ArmE, ArmS, ArmW} {
		if a&d != 0 {
			n++
		}
	}
	return n
}

// Opposite returns the arms pointing the other way.
func (a Arms) Opposite() Arms {
	var o Arms
	if a&ArmN != 0 {
		o |= ArmS
	}
	if a&ArmS != 0 {
		o |= ArmN
	}
	if a&ArmE != 0 {
		o |= ArmW
	}
	if a&ArmW != 0 {
		o |= ArmE
	}
	return o
}

var glyphArms = map[rune]Arms{
	'─': ArmsHorizontal, '━': ArmsHorizontal, '═': ArmsHorizontal,
	'│': ArmsVertical, '┃': ArmsVertical, '║': ArmsVertical,
	'┌': ArmE | ArmS, '╭': ArmE | ArmS,
	'┐': ArmW | ArmS, '╮': ArmW | ArmS,
	'└': ArmN | ArmE, '╰': ArmN | ArmE,
	'┘': ArmN | ArmW, '╯': ArmN | ArmW,
	'├': ArmsVertical | ArmE,
	'┤': ArmsVertical | ArmW,
	'┬': ArmsHorizontal | ArmS,
	'┴': ArmsHorizontal | ArmN,
	'┼': ArmsAll,
	'-': ArmsHorizontal,
	'|': ArmsVertical,
	'+': ArmsAll,
}

var sharpGlyphs = map[Arms]rune{
	ArmsHorizontal:         '─',
	ArmsVertical:           '│',
	ArmE | ArmS:            '┌',
	ArmW | ArmS:            '┐',
	ArmN | ArmE:            '└',
	ArmN | ArmW:            '┘',
	ArmsVertical | ArmE:    '├',
	ArmsVertical | ArmW:    '┤',
	ArmsHorizontal | ArmS:  '┬',
	ArmsHorizontal | ArmN:  '┴',
	ArmsAll:                '┼',
}

var roundedCorners = map[Arms]rune{
	ArmE | ArmS: '╭',
	ArmW | ArmS: '╮',
	ArmN | ArmE: '╰',
	ArmN | ArmW: '╯',
}

// ArmsOf returns the arms of a line glyph, zero for anything else.
func ArmsOf(r rune) Arms {
	return glyphArms[r]
}

// IsASCIILine reports whether r is one of the ASCII line glyphs.
func IsASCIILine(r rune) bool {
	return r == '-' || r == '|' || r == '+'
}

// IsRounded reports whether r is a rounded corner.
func IsRounded(r rune) bool {
	switch r {
	case '╭', '╮', '╰', '╯':
		return true
	}
	return false
}

// Glyph returns the glyph drawing exactly the given arms. Single arms draw
// as a full line on their axis.
func Glyph(a Arms, rounded, ascii bool) rune {
	switch a {
	case 0:
		return ' '
	case ArmN, ArmS:
		a = ArmsVertical
	case ArmE, ArmW:
		a = ArmsHorizontal
	}
	if ascii {
		switch a {
		case ArmsHorizontal:
			return '-'
		case ArmsVertical:
			return '|'
		default:
			return '+'
		}
	}
	if rounded {
		if r, ok := roundedCorners[a]; ok {
			return r
		}
	}
	return sharpGlyphs[a]
}

// Arrowheads by the direction they point in.
const (
	ArrowUp    = '▲'
	ArrowDown  = '▼'
	ArrowLeft  = '◀'
	ArrowRight = '▶'
)

// IsArrow reports whether r is an arrowhead.
func IsArrow(r rune) bool {
	switch r {
	case ArrowUp, ArrowDown, ArrowLeft, ArrowRight, '>', '<', '^', 'v':
		return true
	}
	return false
}

// ArrowArm returns the arm an arrowhead expects a line on.
func ArrowArm(r rune) Arms {
	switch r {
	case ArrowRight, '>':
		return ArmW
	case ArrowLeft, '<':
		return ArmE
	case ArrowUp, '^':
		return ArmS
	case ArrowDown, 'v':
		return ArmN
	}
	return 0
}

// Merger combines a glyph already on the grid with a new one so crossing
// and touching lines turn into junctions.
type Merger struct {
	ASCII bool
}

// Merge returns the glyph for a cell holding existing when next is drawn
// over it.
func (m Merger) Merge(existing, next rune) rune {
	if existing == ' ' || existing == 0 {
		return next
	}
	if existing == next {
		return existing
	}
	// arrowheads are never overwritten, and win over plain lines
	if IsArrow(existing) {
		return existing
	}
	if IsArrow(next) {
		return next
	}

	ea, na := ArmsOf(existing), ArmsOf(next)
	if ea == 0 || na == 0 {
		return existing
	}
	union := ea | na
	if m.ASCII || IsASCIILine(existing) || IsASCIILine(next) {
		return Glyph(union, false, true)
	}
	return Glyph(union, IsRounded(existing) || IsRounded(next), false)
}

// MergeArms adds arms to the glyph in a cell. Path corners come out
// rounded; text and arrowheads are kept.
func (m Merger) MergeArms(existing rune, a Arms) rune {
	if a == 0 || IsArrow(existing) {
		return existing
	}
	ea := ArmsOf(existing)
	if ea == 0 && existing != ' ' && existing != 0 {
		return existing
	}
	ascii := m.ASCII || IsASCIILine(existing)
	return Glyph(ea|a, ea == 0 || IsRounded(existing), ascii)
}
