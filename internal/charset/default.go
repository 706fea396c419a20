package charset

// defaultPunct is the punctuation tail of the bundled table, mapped after
// the digits so that letters keep their historical codes (a→100 … z→125).
const defaultPunct = " .,!?;:'\"()-_"

// Default returns the bundled table: lowercase letters from 100, then
// uppercase, decimal digits, space, and common punctuation, all contiguous.
// It maps the digits, so it supports lock sequences of any length.
func Default() *Table {
	m := make(map[rune]int, 26+26+10+len(defaultPunct))
	code := 100
	for r := 'a'; r <= 'z'; r++ {
		m[r] = code
		code++
	}
	for r := 'A'; r <= 'Z'; r++ {
		m[r] = code
		code++
	}
	for r := '0'; r <= '9'; r++ {
		m[r] = code
		code++
	}
	for _, r := range defaultPunct {
		m[r] = code
		code++
	}
	t, err := New(m)
	if err != nil {
		// Unreachable: the mapping above is contiguous and non-negative.
		panic(err)
	}
	return t
}
