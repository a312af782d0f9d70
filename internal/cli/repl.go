package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isConnected() bool
	Add(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	Export(ctx context.Context) error
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Mint(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the certmint CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help           — show available commands
//	  - add            — create a certificate
//	  - edit           — edit a certificate
//	  - delete         — delete a certificate (with confirmation)
//	  - list | l       — list certificates
//	  - show           — show a certificate and select it
//	  - export         — save a certificate card as a PNG file
//	  - exit | quit    — leave the program
//
//	Wallet:
//	  - connect        — load the wallet keypair
//	  - disconnect     — drop the wallet session (when connected)
//	  - mint           — mint a certificate as an NFT (when connected)
//
// Any errors returned by command handlers are ignored here; handlers should
// notify the user themselves. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("certmint %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: add, edit, delete, (l)ist, show, export, exit")
			if a.isConnected() {
				printlnFn("Wallet commands: disconnect, mint")
			} else {
				printlnFn("Wallet commands: connect")
			}

		case "add":
			_ = a.Add(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx)

		case "export":
			_ = a.Export(ctx)

		case "connect":
			_ = a.Connect(ctx)

		case "disconnect":
			_ = a.Disconnect(ctx)

		case "mint":
			_ = a.Mint(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
