package main

import (
	"edusync/pkg"
	"edusync/src/llm/study"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

type section struct {
	title string
	body  string
}

func resultSections(result *pkg.Result) []section {
	return []section{
		{"Topic", result.Topic},
		{"Research", result.Research},
		{"Quiz", result.Quiz},
		{"Explanations", result.Explanations},
	}
}

// formatPlain prints "[Title]\nbody" sections separated by blank lines
func formatPlain(result *pkg.Result, styled bool) string {
	var sb strings.Builder
	for _, s := range resultSections(result) {
		heading := "[" + s.title + "]"
		if styled {
			heading = headingStyle.Render(heading)
		}
		sb.WriteString("\n" + heading + "\n" + s.body + "\n")
	}
	return sb.String()
}

// formatMarkdown renders the sections through glamour
func formatMarkdown(result *pkg.Result, wordWrap int) (string, error) {
	var md strings.Builder
	for _, s := range resultSections(result) {
		md.WriteString("## " + s.title + "\n\n")
		if s.title == "Quiz" {
			for _, line := range study.QuizLines(s.body) {
				md.WriteString("- " + line + "\n")
			}
			md.WriteString("\n")
			continue
		}
		md.WriteString(s.body + "\n\n")
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("error creating renderer: %w", err)
	}
	out, err := renderer.Render(md.String())
	if err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return out, nil
}

func formatJSON(result *pkg.Result) (string, error) {
	data, err := sonic.ConfigDefault.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding result: %w", err)
	}
	return string(data) + "\n", nil
}
