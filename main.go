// IntelliDocs generates README documents for software projects with the Gemini API.
//
// A project is read from a local directory, a git repository URL, an uploaded zip
// archive or a set of uploaded files. IntelliDocs lists its directory structure,
// copies the first part of a few well-known files (package.json, requirements.txt,
// main.py, ...) and asks the model to write a README from that summary.
//
// Example Usage:
//
//	# Write a README for a local directory
//	intellidocs ./my-project -o README.generated.md
//
//	# Write a README for a remote repository
//	intellidocs https://github.com/username/repo
//
//	# Print the summary sent to the model
//	intellidocs ./my-project --summary-only
//
//	# Serve the HTTP API on :5001
//	intellidocs serve
package main

import "github.com/pratm1304/IntelliDocs-Ai/cmd"

func main() {
	cmd.Execute()
}
