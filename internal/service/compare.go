package service

// Placeholder marks an answer character the input did not reach
const Placeholder = '_'

// Mark is one rendered character of answer feedback
type Mark struct {
	Char    rune
	Correct bool
}

// Compare lines up input with answer rune by rune. Input characters are
// correct when they match the answer at the same position. Missing answer
// characters become incorrect placeholders and extra input characters are
// incorrect.
func Compare(input, answer string) []Mark {
	in := []rune(input)
	want := []rune(answer)

	marks := make([]Mark, 0, max(len(in), len(want)))
	for i, r := range in {
		marks = append(marks, Mark{
			Char:    r,
			Correct: i < len(want) && r == want[i],
		})
	}
	for i := len(in); i < len(want); i++ {
		marks = append(marks, Mark{Char: Placeholder})
	}
	return marks
}
