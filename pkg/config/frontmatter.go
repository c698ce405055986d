package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatter holds the YAML header of a custom command file.
type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parseFrontmatter extracts the YAML frontmatter and body from file content.
// format: ---\nkey: value\n---\nbody. content without frontmatter is returned
// as body with an empty header.
func parseFrontmatter(content string) (frontmatter, string, error) {
	if !strings.HasPrefix(content, "---\n") {
		return frontmatter{}, content, nil
	}

	end := strings.Index(content[4:], "\n---")
	if end == -1 {
		return frontmatter{}, content, nil
	}

	header := content[4 : 4+end]
	body := strings.TrimSpace(content[4+end+4:])

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
		return frontmatter{}, "", fmt.Errorf("parse frontmatter: %w", err)
	}

	return fm, body, nil
}
