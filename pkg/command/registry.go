package command

import (
	"fmt"
	"sort"
	"strings"
)

// Registry owns the name to descriptor mapping used for dispatch.
// commands are registered once at startup and never mutated afterwards,
// so lookups need no locking.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command to the registry.
// names are unique within the registry: registering a duplicate is an error.
func (r *Registry) Register(cmd Command) error {
	name := cmd.Name()
	if name == "" {
		return fmt.Errorf("command with empty name")
	}
	if _, ok := r.commands[name]; ok {
		return fmt.Errorf("duplicate command %q", name)
	}
	r.commands[name] = cmd
	return nil
}

// MustRegister registers commands and panics on conflict.
// intended for builtin registration at startup where a duplicate is a programming error.
func (r *Registry) MustRegister(cmds ...Command) {
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			panic(err)
		}
	}
}

// Lookup finds a command by name. a leading slash is accepted and stripped,
// so "/learn" and "learn" dispatch to the same descriptor.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.TrimPrefix(name, "/")]
	return cmd, ok
}

// List returns all registered commands sorted by name, for help output
// and completion.
func (r *Registry) List() []Command {
	res := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

// Names returns sorted registered command names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
