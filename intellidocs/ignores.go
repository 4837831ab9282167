package intellidocs

import (
	"path/filepath"
	"strings"
)

// Directories never walked or listed
var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	"venv":         true,
}

// Files whose leading content is copied into the summary
var keyFiles = map[string]bool{
	"package.json":     true,
	"requirements.txt": true,
	"index.html":       true,
	"main.py":          true,
	"app.py":           true,
	"server.js":        true,
}

// keyFileExcerptChars is the number of characters copied from each key file
const keyFileExcerptChars = 1000

// IgnorePatterns decides which walked entries are left out of the summary
type IgnorePatterns struct {
	customPatterns []string
}

func newIgnorePatterns(additionalPatterns []string) *IgnorePatterns {
	customPatterns := make([]string, 0, len(additionalPatterns))
	for _, pattern := range additionalPatterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		customPatterns = append(customPatterns, pattern)
	}
	return &IgnorePatterns{customPatterns: customPatterns}
}

func (ip *IgnorePatterns) skipDir(name string) bool {
	if excludedDirs[name] {
		return true
	}
	return ip.matchCustom(name)
}

func (ip *IgnorePatterns) skipFile(name string) bool {
	return ip.matchCustom(name)
}

func (ip *IgnorePatterns) matchCustom(name string) bool {
	for _, pattern := range ip.customPatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// IsKeyFile reports whether a base name is on the excerpt allow-list
func IsKeyFile(name string) bool {
	return keyFiles[name]
}
