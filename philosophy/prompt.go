package philosophy

import (
	"fmt"
	"strings"
)

// Categories lists the classification targets offered to the model. The
// model's pick is stored raw and never validated against this list.
var Categories = []string{
	"Metaphysics",
	"Epistemology",
	"Ethics",
	"Aesthetics",
	"Logic and Reasoning",
	"Political Philosophy",
	"Philosophy of Science",
	"Philosophy of Religion",
	"Philosophy of Mind",
	"Philosophy of Language",
	"Philosophy of Time",
}

// BuildPrompt frames question in the given tone. Neutral (or zero) tones
// return the question unchanged, with no escaping of the question text.
func BuildPrompt(tone Tone, question string) string {
	if tone.IsNeutral() {
		return question
	}
	return fmt.Sprintf(
		"You are an expert in discussing philosophical questions. "+
			"Your tone is: **%s** in nature. "+
			"Please provide a thoughtful and detailed answer to the following question: **%s**",
		tone.Name, question)
}

// ClassificationPrompt asks the model to pick the single best-fitting
// category for question.
func ClassificationPrompt(question string) string {
	return fmt.Sprintf(
		"Given the question: %s, what is the most accurate classification? "+
			"Choose from the following categories: %s.",
		question, strings.Join(Categories, ", "))
}
