package philosophy

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// LoadQuestions reads one candidate question per line from path. Lines are
// trimmed and blank or whitespace-only lines are dropped.
func LoadQuestions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	var questions []string
	for _, line := range strings.Split(string(data), "\n") {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions in %s", path)
	}
	return questions, nil
}

// QuestionBank hands out starter questions loaded once at startup.
type QuestionBank struct {
	questions []string
}

// NewQuestionBank wraps an already-loaded question list.
func NewQuestionBank(questions []string) *QuestionBank {
	return &QuestionBank{questions: questions}
}

// LoadQuestionBank builds a bank from the file at path.
func LoadQuestionBank(path string) (*QuestionBank, error) {
	questions, err := LoadQuestions(path)
	if err != nil {
		return nil, err
	}
	return NewQuestionBank(questions), nil
}

// Random returns one question chosen uniformly at random.
func (b *QuestionBank) Random() string {
	if len(b.questions) == 0 {
		return ""
	}
	return b.questions[rand.Intn(len(b.questions))]
}

// Len reports how many questions the bank holds.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}
