package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Pay(ctx context.Context) error
	Orders(ctx context.Context) error
	Order(ctx context.Context, id int64) error
	Health(ctx context.Context, service string) error
}

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Command errors are printed and the loop continues.
//
//	help               show available commands
//	pay                submit a payment
//	orders | list      list stored orders
//	order <id>         show one order
//	health [service]   check gateway, vault or db health
//	exit | quit        leave the program
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("paytoken> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error

		switch cmd {
		case "help":
			printlnFn("Available commands: pay, orders, order <id>, health [service], exit")

		case "pay":
			err = a.Pay(ctx)

		case "l", "list", "orders":
			err = a.Orders(ctx)

		case "order", "show":
			if len(args) != 1 {
				printlnFn("Usage: order <id>")
				continue
			}
			id, perr := strconv.ParseInt(args[0], 10, 64)
			if perr != nil {
				printlnFn("Invalid order id:", args[0])
				continue
			}
			err = a.Order(ctx, id)

		case "health":
			service := ""
			if len(args) > 0 {
				service = args[0]
			}
			err = a.Health(ctx, service)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
