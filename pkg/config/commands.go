package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CustomCommand is a user-defined console command loaded from a markdown file.
type CustomCommand struct {
	Name        string // dispatch name, defaults to the file basename
	Description string // one-line help text from frontmatter
	Body        string // markdown body shown on invocation
}

// loadCommands loads custom command files from config directories.
// it uses replace behavior: if the local commands dir has any .md files,
// use ONLY local commands; otherwise fall back to global commands.
func loadCommands(localDir, globalDir string) ([]CustomCommand, error) {
	if localDir != "" {
		hasFiles, err := dirHasCommandFiles(localDir)
		if err != nil {
			return nil, err
		}
		if hasFiles {
			// use ONLY local commands
			return loadCommandsFromDir(localDir)
		}
	}

	// fall back to global commands
	return loadCommandsFromDir(globalDir)
}

// dirHasCommandFiles checks if a directory has any .md files.
func dirHasCommandFiles(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read commands directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			return true, nil
		}
	}
	return false, nil
}

// loadCommandsFromDir loads command files from a specific directory.
func loadCommandsFromDir(dir string) ([]CustomCommand, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read commands directory %s: %w", dir, err)
	}

	var commands []CustomCommand
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		cmd, err := loadCommandFile(path)
		if err != nil {
			return nil, fmt.Errorf("load command file %s: %w", path, err)
		}
		commands = append(commands, cmd)
	}

	// stable order for help output regardless of directory iteration
	sort.Slice(commands, func(i, j int) bool { return commands[i].Name < commands[j].Name })
	return commands, nil
}

// loadCommandFile reads a single command file, parsing frontmatter for the
// dispatch name and description. the name falls back to the file basename.
func loadCommandFile(path string) (CustomCommand, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from directory listing
	if err != nil {
		return CustomCommand{}, fmt.Errorf("read file: %w", err)
	}

	fm, body, err := parseFrontmatter(string(data))
	if err != nil {
		return CustomCommand{}, err
	}

	name := fm.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	if strings.TrimSpace(body) == "" {
		return CustomCommand{}, fmt.Errorf("command %q has empty body", name)
	}

	return CustomCommand{Name: name, Description: fm.Description, Body: body}, nil
}
