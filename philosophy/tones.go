// Package philosophy holds the prompt templates, tones, categories, and
// question bank used by the chat core.
package philosophy

// Tone is a named rhetorical style applied to outgoing prompts. The zero
// value behaves like Neutral.
type Tone struct {
	Name        string
	Description string
}

// Neutral is the pass-through sentinel: questions go to the model unmodified.
var Neutral = Tone{Name: "Neutral", Description: "Neutral"}

var tones = []Tone{
	Neutral,
	{Name: "Analytical", Description: "This tone focuses on breaking down arguments into smaller parts, evaluating their logic, and ensuring clarity. It’s often precise, critical, and detailed."},
	{Name: "Speculative", Description: "A more exploratory and imaginative tone that considers possibilities, hypotheses, or abstract ideas that go beyond concrete facts."},
	{Name: "Socratic", Description: "Based on Socrates’ method, this tone is questioning and inquisitive, often encouraging the other person to reflect on their beliefs and assumptions."},
	{Name: "Didactic", Description: "A teaching or instructive tone, where the speaker aims to impart knowledge or explain complex concepts in a clear, authoritative manner."},
	{Name: "Dialectical", Description: "This tone is characterized by an exchange of ideas between opposing viewpoints, with the aim of arriving at a higher truth through reasoned dialogue."},
	{Name: "Cynical", Description: "A more skeptical and sometimes dismissive tone, often critical of established ideas or institutions, questioning motives, and highlighting flaws."},
	{Name: "Optimistic", Description: "A hopeful and constructive tone that focuses on positive possibilities, growth, or ideal outcomes in philosophical exploration."},
	{Name: "Pessimistic", Description: "This tone reflects a more doubtful or negative outlook on human nature, existence, or philosophical concepts, often focusing on limitations and problems."},
	{Name: "Empirical", Description: "A tone that emphasizes experience, observation, and evidence, often associated with philosophers who stress the importance of real-world data and facts in their reasoning."},
	{Name: "Existential", Description: "A deeply personal and reflective tone that deals with individual experience, meaning, and the human condition, often touching on themes like freedom, isolation, and choice."},
	{Name: "Normative", Description: "This tone deals with values, ethics, and how things should be. It often involves moral judgments or considerations of right and wrong."},
	{Name: "Absurdist", Description: "A tone that reflects on the inherent contradictions or lack of meaning in life, often humorously or paradoxically, following in the tradition of philosophers like Camus."},
}

// Tones returns the selectable tones in display order, Neutral first.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

// ToneByName looks a tone up by its display name.
func ToneByName(name string) (Tone, bool) {
	for _, t := range tones {
		if t.Name == name {
			return t, true
		}
	}
	return Tone{}, false
}

// IsNeutral reports whether t leaves questions untouched.
func (t Tone) IsNeutral() bool {
	return t.Name == "" || t.Name == Neutral.Name
}
