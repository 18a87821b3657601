package llm

import "strings"

// Prompt templates. Both instruct the model to skip introductory boilerplate
// and avoid list formatting so the output is directly displayable prose.
const (
	gecfTemplate = "You are an expert geopolitical energy analyst. Directly summarize " +
		"key insights from the text below in one paragraph, focusing on the role of " +
		"GECF countries. Do not start with introductory phrases. Avoid lists.\n\nCONTEXT: "

	genericTemplate = "You are an expert analyst. Directly summarize the key insights " +
		"from the text below in one concise paragraph. Do not start with introductory " +
		"phrases. Avoid lists.\n\nCONTEXT: "
)

// BuildPrompt renders the summarization prompt. The GECF-focused framing is
// used only when the extraction stage found at least one registry country.
func BuildPrompt(context string, gecfFocus bool) string {
	template := genericTemplate
	if gecfFocus {
		template = gecfTemplate
	}
	return template + strings.TrimSpace(context)
}
