package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	parts := []string{}
	if name := a.tokens.UserName(); name != "" {
		parts = append(parts, name)
	}
	if a.engine.Online() {
		parts = append(parts, "online")
	} else {
		parts = append(parts, "offline")
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Root runs the REPL until the user exits or stdin is closed.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Story client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "story %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		if done := a.dispatch(ctx, parts[0], parts[1:]); done {
			return
		}
	}
}

// dispatch runs one command; it returns true when the REPL should exit.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "Available commands: list, add, save <id>, saveall, delete <key>, sync, pending, login, status, clear, exit")

	case "login":
		a.login(ctx)
	case "list":
		a.list(ctx, args)
	case "add":
		a.add(ctx)
	case "save":
		a.save(ctx, args)
	case "saveall":
		a.saveAll(ctx)
	case "delete":
		a.delete(ctx, args)
	case "sync":
		a.syncNow(ctx)
	case "pending":
		a.pendingCount(ctx)
	case "status":
		a.status(ctx)
	case "clear":
		a.clear(ctx)
	case "exit", "quit":
		fmt.Fprintln(a.out, "Bye!")
		return true

	default:
		fmt.Fprintln(a.out, "Unknown command:", cmd)
	}
	return false
}
