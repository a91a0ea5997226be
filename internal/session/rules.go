package session

// rules is the per-mode transition table. Operations a mode does not support
// return false.
type rules interface {
	enter(s *Session)
	selectOption(s *Session, idx int) bool
	submit(s *Session) bool
	advance(s *Session) bool
	tick(s *Session, token uint64) bool
	reveal(s *Session) bool
	selfGrade(s *Session, correct bool) bool
}

type unsupported struct{}

func (unsupported) selectOption(*Session, int) bool { return false }
func (unsupported) submit(*Session) bool { return false }
func (unsupported) advance(*Session) bool { return false }
func (unsupported) tick(*Session, uint64) bool { return false }
func (unsupported) reveal(*Session) bool { return false }
func (unsupported) selfGrade(*Session, bool) bool { return false }

// choiceRules drive chapter quizzes and standard mock exams.
type choiceRules struct{ unsupported }

func (choiceRules) enter(s *Session) {
	s.selected = -1
	s.phase = PhaseAwaitingAnswer
}

func (choiceRules) selectOption(s *Session, idx int) bool {
	if s.phase != PhaseAwaitingAnswer {
		return false
	}
	if _, ok := s.questions[s.current].OptionText(idx); !ok {
		return false
	}
	s.selected = idx
	return true
}

func (choiceRules) submit(s *Session) bool {
	if s.phase != PhaseAwaitingAnswer || s.selected < 0 {
		return false
	}
	s.answers = append(s.answers, s.selected)
	s.phase = PhaseAnswered
	return true
}

func (choiceRules) advance(s *Session) bool {
	if s.phase != PhaseAnswered {
		return false
	}
	s.next()
	return true
}

// audioRules drive the self-graded audio mock exam.
type audioRules struct{ unsupported }

func (audioRules) enter(s *Session) {
	s.phase = PhasePresenting
	s.remaining = s.countdown
	s.token++
	s.lifecycle.Enter(Presentation{
		Index:    s.current,
		Question: s.questions[s.current],
		Token:    s.token,
		Seconds:  s.countdown,
	})
}

func (r audioRules) tick(s *Session, token uint64) bool {
	if s.phase != PhasePresenting || token != s.token {
		return false
	}
	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		r.reveal(s)
	}
	return true
}

func (audioRules) reveal(s *Session) bool {
	if s.phase != PhasePresenting {
		return false
	}
	s.phase = PhaseRevealed
	s.lifecycle.Reveal()
	return true
}

func (audioRules) selfGrade(s *Session, correct bool) bool {
	if s.phase != PhaseRevealed {
		return false
	}
	answer := Unknown
	if correct {
		answer = s.questions[s.current].CorrectIndex
	}
	s.answers = append(s.answers, answer)
	s.lifecycle.Leave()
	s.next()
	return true
}
