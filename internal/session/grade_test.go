package session

import (
	"reflect"
	"testing"
)

func TestGrade(t *testing.T) {
	qs := testQuestions(0, 1, 2)

	tests := []struct {
		name    string
		answers []int
		want    int
		correct []bool
	}{
		{"one wrong", []int{0, 1, 3}, 2, []bool{true, true, false}},
		{"all right", []int{0, 1, 2}, 3, []bool{true, true, true}},
		{"unknown sentinel", []int{Unknown, 1, Unknown}, 1, []bool{false, true, false}},
		{"missing answers", []int{0}, 1, []bool{true, false, false}},
		{"no answers", nil, 0, []bool{false, false, false}},
		{"extra answers ignored", []int{0, 1, 2, 0}, 3, []bool{true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Grade(qs, tt.answers); got != tt.want {
				t.Errorf("Grade() = %d, want %d", got, tt.want)
			}
			// Idempotent.
			if got := Grade(qs, tt.answers); got != tt.want {
				t.Errorf("second Grade() = %d, want %d", got, tt.want)
			}
			if got := Correctness(qs, tt.answers); !reflect.DeepEqual(got, tt.correct) {
				t.Errorf("Correctness() = %v, want %v", got, tt.correct)
			}
		})
	}
}

func TestResultMessageBands(t *testing.T) {
	tests := []struct {
		score, total int
		want         string
	}{
		{9, 10, "அற்புதம்! மிகச் சிறப்பான அறிவு."},
		{7, 10, "நன்று! நீங்கள் நன்றாக செய்திருக்கிறீர்கள்."},
		{5, 10, "பரவாயில்லை, இன்னும் முயற்சி செய்யவும்."},
		{4, 10, "மேலும் படிக்கவும்."},
	}
	for _, tt := range tests {
		r := &Result{Questions: make([]Question, tt.total), Score: tt.score}
		if got := r.Message(); got != tt.want {
			t.Errorf("%d/%d: Message() = %q, want %q", tt.score, tt.total, got, tt.want)
		}
	}
}
