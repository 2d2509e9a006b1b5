package assist

import (
	"fmt"
	"strings"
)

func ExplainSystemPrompt() string {
	return "You are a concise Python tutor helping a student work through an exam checklist. Keep answers short and practical."
}

func BuildExplainPrompt(topic string) string {
	return fmt.Sprintf(
		`Provide a very brief, 3-sentence summary and one simple code example for the following Python study topic: %q. Format the code example clearly using Markdown.`,
		topic,
	)
}

func QuizSystemPrompt() string {
	return `You are a Python quiz generator.

Respond with ONLY a raw JSON array — no markdown fences, no commentary.
Each element must be an object with exactly these fields:
- "question": the question text
- "options": an array of exactly 4 answer strings
- "correctAnswer": the zero-based index (0-3) of the correct option
- "explanation": one or two sentences shown after the student answers

Generate exactly 3 questions.`
}

func BuildQuizPrompt(categoryName string, topics []string) string {
	return fmt.Sprintf(
		`Generate a 3-question multiple choice quiz about the following Python topics within the category %q: %s. Provide questions that test practical understanding.`,
		categoryName, strings.Join(topics, ", "),
	)
}
