package imgcodec

// lengthTable maps the long-form back-reference index byte to a match
// length. It is a pure constant, computed once at package initialization
// rather than inline in the decoder's hot loop.
var lengthTable = buildLengthTable()

func buildLengthTable() [256]int {
	var t [256]int
	for i := 0; i <= 0xFD; i++ {
		t[i] = i + 3
	}
	t[0xFE] = 0x400
	t[0xFF] = 0x1000
	return t
}
