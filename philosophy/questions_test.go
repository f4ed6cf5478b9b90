package philosophy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csv610/dialectica/philosophy"
)

func writeQuestions(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuestionsFiltersBlankLines(t *testing.T) {
	t.Parallel()

	path := writeQuestions(t, "Q1\n\nQ2\n  \nQ3\n")
	questions, err := philosophy.LoadQuestions(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, questions)
}

func TestLoadQuestionsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := philosophy.LoadQuestions(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadQuestionsAllBlank(t *testing.T) {
	t.Parallel()

	path := writeQuestions(t, "\n   \n\t\n")
	_, err := philosophy.LoadQuestions(path)
	assert.Error(t, err)
}

func TestQuestionBankRandom(t *testing.T) {
	t.Parallel()

	questions := []string{"What is justice?", "What is beauty?", "What is truth?"}
	bank := philosophy.NewQuestionBank(questions)
	assert.Equal(t, 3, bank.Len())

	for i := 0; i < 20; i++ {
		assert.Contains(t, questions, bank.Random())
	}
}

func TestLoadQuestionBank(t *testing.T) {
	t.Parallel()

	path := writeQuestions(t, "Only question\n")
	bank, err := philosophy.LoadQuestionBank(path)
	require.NoError(t, err)
	assert.Equal(t, 1, bank.Len())
	assert.Equal(t, "Only question", bank.Random())
}
