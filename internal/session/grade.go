package session

// Grade returns the number of answers matching the correct index of their
// question. Missing answers count as incorrect; extra answers are ignored.
func Grade(questions []Question, answers []int) int {
	score := 0
	for _, ok := range Correctness(questions, answers) {
		if ok {
			score++
		}
	}
	return score
}

// Correctness reports, per question, whether the answer at the same index is
// correct.
func Correctness(questions []Question, answers []int) []bool {
	out := make([]bool, len(questions))
	for i, q := range questions {
		out[i] = i < len(answers) && answers[i] == q.CorrectIndex
	}
	return out
}
