package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/client/config"
)

type command struct {
	usage string
	run   func(a *App, ctx context.Context, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"register":     {"register", (*App).register},
		"login":        {"login", (*App).login},
		"logout":       {"logout", (*App).logout},
		"me":           {"me", (*App).me},
		"categories":   {"categories", (*App).listCategories},
		"add-category": {"add-category <name> [color]", (*App).addCategory},
		"rm-category":  {"rm-category <categoryId>", (*App).removeCategory},
		"tasks":        {"tasks [-search q] [-category id]", (*App).listTasks},
		"add-task":     {"add-task <categoryId> <title>", (*App).addTask},
		"done":         {"done <taskId>", (*App).completeTask},
		"move":         {"move <taskId> <categoryId>", (*App).moveTask},
		"rm-task":      {"rm-task <taskId>", (*App).removeTask},
		"stats":        {"stats", (*App).stats},
		"export":       {"export <file>", (*App).exportData},
		"import":       {"import <file>", (*App).importData},
		"snapshot":     {"snapshot [file]", (*App).snapshot},
		"shell":        {"shell", (*App).shell},
	}
}

var commandOrder = []string{
	"register", "login", "logout", "me",
	"categories", "add-category", "rm-category",
	"tasks", "add-task", "done", "move", "rm-task", "stats",
	"export", "import", "snapshot", "shell",
}

var errUsage = errors.New("usage")

func (a *App) dispatch(ctx context.Context, name string, args []string) error {
	if name == "help" {
		a.printHelp()
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (try 'help')", name)
	}

	err := cmd.run(a, ctx, args)
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: taskctl %s", cmd.usage)
	}
	return err
}

func (a *App) printHelp() {
	a.printf("Usage: taskctl [-s server-url] [-t seconds] <command>\n\nCommands:\n")
	for _, name := range commandOrder {
		a.printf("  %s\n", commands[name].usage)
	}
}

// shell reads commands line by line until EOF or "exit".
func (a *App) shell(ctx context.Context, _ []string) error {
	for {
		line, err := ReadLine(a.reader, "taskctl> ", a.out)
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "exit", "quit":
			a.printf("Bye!\n")
			return nil
		case "shell":
			continue
		}

		if err := a.dispatch(ctx, parts[0], parts[1:]); err != nil {
			a.printf("error: %v\n", err)
		}
	}
}

// stripGlobalFlags drops config flags and their values from args, leaving
// the command and its own arguments. Global flags must precede the command.
func stripGlobalFlags(args []string) []string {
	global := make(map[string]bool, len(config.GlobalFlags))
	for _, f := range config.GlobalFlags {
		global[f] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return args[i:]
		}
		name, _, hasValue := strings.Cut(arg, "=")
		if !global[name] {
			return args[i:]
		}
		if !hasValue && i+1 < len(args) {
			i++
		}
	}
	return nil
}
