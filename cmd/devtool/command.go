package main

import "fmt"

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry holds the subcommands in registration order
type Registry struct {
	commands []Command
}

func NewRegistry(cmds ...Command) *Registry {
	return &Registry{commands: cmds}
}

func (r *Registry) Get(name string) (Command, bool) {
	for _, cmd := range r.commands {
		if cmd.Name() == name {
			return cmd, true
		}
	}
	return nil, false
}

func (r *Registry) PrintHelp() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("\nAvailable Commands:")

	width := 0
	for _, cmd := range r.commands {
		if len(cmd.Name()) > width {
			width = len(cmd.Name())
		}
	}
	for _, cmd := range r.commands {
		fmt.Printf("  %-*s  %s\n", width, cmd.Name(), cmd.Description())
	}
}
