package intellidocs

import (
	"fmt"
	"strings"
	"text/template"
)

const formatTextTemplate = `
Please format the following text into a clean, well-structured document using Markdown.
Identify the main title, headings, subheadings, bullet points, and any other relevant structures.
Ensure the output is only the formatted Markdown content.

Raw Text:
---
{{.}}
---
`

const readmeTemplate = `
As an expert senior software developer and technical writer, create an exceptionally detailed and professional README.md file based on the following project analysis. The tone should be clear, comprehensive, and helpful to a new developer.

**Structure the README with the following sections in this exact order:**

1.  **Project Title:** A creative and descriptive title.
2.  **Project Overview:** A detailed paragraph explaining the project's purpose, what problem it solves, and who the target user is.
3.  **Key Features:** A bulleted list of the most important features.
4.  **Tech Stack:** A table listing the languages, frameworks, major libraries and external APIs (if any) used.
5.  **Workflow Diagram:** A detailed, text-based (ASCII) flow diagram illustrating the complete data and user flow of the application. The diagram should clearly show the simple path from the user's action on the React frontend, to the backend, to the external API if used any (also mention the name of API used if any), and back to the user.
6.  **Project Structure:** A brief explanation of the key files and folder structure. Describe the purpose of important files.
7.  **Setup and Installation:** A clear, step-by-step guide on how to get the project running locally. Include all necessary commands (e.g., ` + "`git clone`, `npm install`, `pip install`" + `).
8.  **Usage:** Explain how to run the application and use its main features after installation.
9.  **Code Explanation:** (If applicable) Briefly explain the logic of one or two key functions or components from the provided code snippets.
10. **API Endpoints:** (If it's a backend project) List and describe the API endpoints, including the HTTP method and what they do. Don't assume anything on your own. Don't make any assumptions.

Here is the project analysis to use:
---
{{.}}
---

Generate only the Markdown content for the README.md file. Do not include any introductory text like "Here is the README...".
`

var (
	formatTextTmpl = template.Must(template.New("format-text").Parse(formatTextTemplate))
	readmeTmpl     = template.Must(template.New("readme").Parse(readmeTemplate))
)

// FormatTextPrompt wraps raw text with the Markdown formatting instructions
func FormatTextPrompt(text string) (string, error) {
	return render(formatTextTmpl, text)
}

// ReadmePrompt wraps a structure summary with the README generation instructions
func ReadmePrompt(summary string) (string, error) {
	return render(readmeTmpl, summary)
}

func render(tmpl *template.Template, data string) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
