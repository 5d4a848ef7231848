package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Import(ctx context.Context, args []string) error
	Formats(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Match(ctx context.Context, args []string) error
	Domains(ctx context.Context, args []string) error
	SetDomains(ctx context.Context, args []string) error
	ClearSettings(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
}

type command struct {
	run       func(execIface, context.Context, []string) error
	needLogin bool
}

var commands = map[string]command{
	"login":         {run: execIface.Login},
	"formats":       {run: execIface.Formats},
	"import":        {run: execIface.Import, needLogin: true},
	"list":          {run: execIface.List, needLogin: true},
	"l":             {run: execIface.List, needLogin: true},
	"match":         {run: execIface.Match, needLogin: true},
	"domains":       {run: execIface.Domains, needLogin: true},
	"setdomains":    {run: execIface.SetDomains, needLogin: true},
	"clearsettings": {run: execIface.ClearSettings, needLogin: true},
	"logout":        {run: execIface.Logout, needLogin: true},
}

// runREPL reads commands line by line and dispatches them to a. The first
// token is the command, the rest are its arguments. The loop exits on
// scanner EOF or when the user types "exit" or "quit".
//
// Commands that touch the vault require a login. Handler errors are not
// fatal; handlers report their own failures.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vault %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: import <format> <location>..., formats, (l)ist, match <url>, domains, setdomains, clearsettings, logout, exit")
			} else {
				printlnFn("Available commands: login, formats, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		cmd, ok := commands[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if cmd.needLogin && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}
		_ = cmd.run(a, ctx, args)
	}
}
