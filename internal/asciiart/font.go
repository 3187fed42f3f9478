package asciiart

import "strings"

// Height is the number of rows every glyph occupies.
const Height = 6

const ink = "█"

// glyphs are drawn with '#' for ink and normalized in init.
var glyphs = map[rune][Height]string{
	'A': {" ### ", "#   #", "#   #", "#####", "#   #", "#   #"},
	'B': {"#### ", "#   #", "#### ", "#   #", "#   #", "#### "},
	'C': {" ####", "#    ", "#    ", "#    ", "#    ", " ####"},
	'D': {"#### ", "#   #", "#   #", "#   #", "#   #", "#### "},
	'E': {"#####", "#    ", "#### ", "#    ", "#    ", "#####"},
	'F': {"#####", "#    ", "#### ", "#    ", "#    ", "#    "},
	'G': {" ####", "#    ", "#  ##", "#   #", "#   #", " ### "},
	'H': {"#   #", "#   #", "#####", "#   #", "#   #", "#   #"},
	'I': {"#####", "  #  ", "  #  ", "  #  ", "  #  ", "#####"},
	'J': {"#####", "   # ", "   # ", "   # ", "#  # ", " ##  "},
	'K': {"#   #", "#  # ", "###  ", "#  # ", "#   #", "#   #"},
	'L': {"#    ", "#    ", "#    ", "#    ", "#    ", "#####"},
	'M': {"#   #", "## ##", "# # #", "#   #", "#   #", "#   #"},
	'N': {"#   #", "##  #", "# # #", "#  ##", "#   #", "#   #"},
	'O': {" ### ", "#   #", "#   #", "#   #", "#   #", " ### "},
	'P': {"#### ", "#   #", "#   #", "#### ", "#    ", "#    "},
	'Q': {" ### ", "#   #", "#   #", "# # #", "#  # ", " ## #"},
	'R': {"#### ", "#   #", "#   #", "#### ", "#  # ", "#   #"},
	'S': {" ####", "#    ", " ### ", "    #", "    #", "#### "},
	'T': {"#####", "  #  ", "  #  ", "  #  ", "  #  ", "  #  "},
	'U': {"#   #", "#   #", "#   #", "#   #", "#   #", " ### "},
	'V': {"#   #", "#   #", "#   #", "#   #", " # # ", "  #  "},
	'W': {"#   #", "#   #", "#   #", "# # #", "## ##", "#   #"},
	'X': {"#   #", " # # ", "  #  ", "  #  ", " # # ", "#   #"},
	'Y': {"#   #", " # # ", "  #  ", "  #  ", "  #  ", "  #  "},
	'Z': {"#####", "   # ", "  #  ", " #   ", "#    ", "#####"},
	'0': {" ### ", "#  ##", "# # #", "##  #", "#   #", " ### "},
	'1': {"  #  ", " ##  ", "  #  ", "  #  ", "  #  ", "#####"},
	'2': {" ### ", "#   #", "   # ", "  #  ", " #   ", "#####"},
	'3': {"#### ", "    #", " ### ", "    #", "    #", "#### "},
	'4': {"#   #", "#   #", "#####", "    #", "    #", "    #"},
	'5': {"#####", "#    ", "#### ", "    #", "    #", "#### "},
	'6': {" ### ", "#    ", "#### ", "#   #", "#   #", " ### "},
	'7': {"#####", "    #", "   # ", "  #  ", "  #  ", "  #  "},
	'8': {" ### ", "#   #", " ### ", "#   #", "#   #", " ### "},
	'9': {" ### ", "#   #", "#   #", " ####", "    #", " ### "},
	' ': {"   ", "   ", "   ", "   ", "   ", "   "},
	'!': {"#", "#", "#", "#", " ", "#"},
	'?': {" ### ", "#   #", "   # ", "  #  ", "     ", "  #  "},
	'.': {" ", " ", " ", " ", " ", "#"},
	',': {"  ", "  ", "  ", "  ", " #", "# "},
	':': {" ", "#", " ", " ", "#", " "},
	'"': {"# #", "# #", "   ", "   ", "   ", "   "},
	'-': {"    ", "    ", "####", "    ", "    ", "    "},
	'_': {"     ", "     ", "     ", "     ", "     ", "#####"},
	'+': {"     ", "  #  ", "#####", "  #  ", "     ", "     "},
	'=': {"    ", "####", "    ", "####", "    ", "    "},
	'/': {"    #", "   # ", "  #  ", "  #  ", " #   ", "#    "},
	'(': {" #", "# ", "# ", "# ", "# ", " #"},
	')': {"# ", " #", " #", " #", " #", "# "},
}

func init() {
	glyphs['\''] = [Height]string{"#", "#", " ", " ", " ", " "}
	for r, g := range glyphs {
		for i, row := range g {
			g[i] = strings.ReplaceAll(row, "#", ink)
		}
		glyphs[r] = g
	}
}

// Supported reports whether r has a glyph after upper-casing.
func Supported(r rune) bool {
	_, ok := glyphs[toUpper(r)]
	return ok
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func glyph(r rune) [Height]string {
	if g, ok := glyphs[toUpper(r)]; ok {
		return g
	}
	return glyphs['?']
}
