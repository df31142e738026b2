package study

import (
	"fmt"
	"strings"
)

// Instructions for the three agents
const (
	ResearchInstruction = "You are a research expert. Provide clear, concise explanations and " +
		"practical examples for the given study topic. Prefer factual, " +
		"beginner-friendly language and cite simple examples."

	QuizInstruction = "You are a quiz master. Generate 3-5 relevant quiz questions with" +
		" clear answers based on the provided study material."

	ExplainInstruction = "You are a teaching assistant. Explain why an answer is correct or " +
		"incorrect using step-by-step reasoning and simplified notes."
)

// NoContextPlaceholder stands in for a missing lookup summary
const NoContextPlaceholder = "No external summary available."

// ExplainFallback replaces an explanation the agent could not produce
const ExplainFallback = "This question checks understanding of the topic's definition, key concepts, " +
	"and practical usage. The answer highlights the essential idea concisely."

// ResearchPrompt asks for a short explanation of topic grounded on context
func ResearchPrompt(topic, context string) string {
	if context == "" {
		context = NoContextPlaceholder
	}
	return fmt.Sprintf("Topic: %s\n\nContext: %s\n\n"+
		"Produce a concise explanation (80-150 words) and 2 practical examples.", topic, context)
}

// ResearchFallback is the deterministic research paragraph used when the
// research agent fails. With a lookup summary it is quoted verbatim.
func ResearchFallback(topic, context string) string {
	if context != "" {
		return "Overview of " + topic + ":\n" + context + "\n\n" +
			"Examples:\n- Real-world: Used in everyday web browsing between clients and servers.\n" +
			"- Practical: Inspect HTTP requests via browser DevTools (Network tab)."
	}
	return topic + " — key points:\n- Definition and purpose.\n- Core components/concepts.\n" +
		"- Common use cases.\n\nExamples:\n- Example 1 describing a real scenario.\n- Example 2 describing practical usage."
}

// QuizPrompt derives questions from research, or from the topic alone when
// research is blank
func QuizPrompt(topic, research string) string {
	research = strings.TrimSpace(research)
	if research != "" {
		return "Based on the following study material, generate 5 quiz questions with" +
			" short answers. Format as 'Q: ... A: ...' on separate lines.\n\n" + research
	}
	return fmt.Sprintf("Generate 5 quiz questions with short answers about the topic: "+
		"'%s'. Format as 'Q: ... A: ...' each on its own line.", topic)
}

// QuizFallback returns the five template questions for topic
func QuizFallback(topic string) string {
	replacer := strings.NewReplacer("{topic}", topic)
	return replacer.Replace(
		"Q: What is {topic}? A: A brief definition or purpose.\n" +
			"Q: Name one core concept of {topic}. A: A key concept.\n" +
			"Q: Give a real-world use of {topic}. A: A practical scenario.\n" +
			"Q: How is {topic} commonly implemented? A: Typical approach/tools.\n" +
			"Q: What is a common pitfall of {topic}? A: A typical mistake.")
}

// ExplanationBlock formats one quiz line with its explanation
func ExplanationBlock(line, explanation string) string {
	return "Q/A: " + line + "\nExplanation: " + explanation
}

// JoinExplanations separates blocks with a blank line
func JoinExplanations(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}
