package study

import (
	"edusync/pkg"
	"strings"
)

const (
	questionMarker = "Q:"
	answerMarker   = "A:"
)

// QuizLines splits quiz text into trimmed, non-blank lines
func QuizLines(quiz string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(quiz, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseQuizLine splits "Q: ... A: ..." into question and answer. Lines that do
// not follow the format keep the whole text as the question.
func ParseQuizLine(line string) pkg.QuizItem {
	item := pkg.QuizItem{Raw: line}

	body := strings.TrimSpace(line)
	body = strings.TrimPrefix(body, questionMarker)

	idx := strings.LastIndex(body, " "+answerMarker)
	if idx < 0 {
		item.Question = strings.TrimSpace(body)
		return item
	}

	item.Question = strings.TrimSpace(body[:idx])
	item.Answer = strings.TrimSpace(body[idx+len(answerMarker)+1:])
	return item
}

// ParseQuiz parses every non-blank line of quiz
func ParseQuiz(quiz string) []pkg.QuizItem {
	lines := QuizLines(quiz)
	items := make([]pkg.QuizItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, ParseQuizLine(line))
	}
	return items
}
