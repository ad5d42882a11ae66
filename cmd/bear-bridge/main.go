// Package main is the entrypoint for bear-bridge.
package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/morezero/bear-bridge/internal/server"
	"github.com/morezero/bear-bridge/pkg/actions"
)

const usage = `Usage: bear-bridge [command]

Commands:
  (default)   Start the bridge (callback listener, NATS, HTTP health).
  serve       Same as the default.
  actions     List the supported Bear actions.
  help        Show this help.

Environment: BEAR_TOKEN (listing actions), COMMS_URL, BRIDGE_SUBJECT, BRIDGE_SOCKET_DIR, BRIDGE_REQUEST_TIMEOUT, HTTP_PORT, LOG_LEVEL. See README for full list.
`

func main() {
	args := os.Args[1:]
	cmd := ""
	if len(args) > 0 && args[0] != "" {
		cmd = args[0]
	}

	switch cmd {
	case "actions":
		printActions()
		return
	case "help", "-h", "--help":
		fmt.Print(usage)
		return
	case "", "serve":
		// fall through to server
	default:
		// unknown subcommand
		fmt.Fprintf(os.Stderr, "Unknown command %q.\n%s", cmd, usage)
		os.Exit(1)
	}

	if err := server.Run(); err != nil {
		log.Fatalf("bear-bridge: fatal error: %v", err)
	}
}

func printActions() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACTION\tTOKEN\tMUTATING\tDESCRIPTION")
	for _, spec := range actions.Specs() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", spec.Name, yesNo(spec.NeedsToken), yesNo(spec.Mutating), spec.Description)
	}
	w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
