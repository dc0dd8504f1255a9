// Command pyreborn-dial is a minimal interactive client: it connects to a
// Graal Reborn server, logs the events it sees, and exits on Ctrl-C.
// Grounded on the teacher's cmd/l1jgo/main.go startup choreography
// (banner/section/ready helpers, signal-driven shutdown loop) but driving
// an outbound connection instead of an accept loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hosler/pyreborn-go"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              pyreborn-dial                \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       Graal Reborn protocol client         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

func run() error {
	host := flag.String("host", "127.0.0.1", "server host")
	port := flag.Int("port", 14900, "server port")
	account := flag.String("account", "", "account name")
	password := flag.String("password", "", "account password")
	configPath := flag.String("config", "", "optional TOML config path")
	flag.Parse()

	if *account == "" {
		return fmt.Errorf("-account is required")
	}

	printBanner()

	var opts []pyreborn.Option
	if *configPath != "" {
		opts = append(opts, pyreborn.WithConfigFile(*configPath))
	}
	client, err := pyreborn.New(opts...)
	if err != nil {
		return fmt.Errorf("build client: %w", err)
	}

	printSection("events")
	pyreborn.Subscribe(client, func(e pyreborn.Connected) {
		printOK("transport connected")
	})
	pyreborn.Subscribe(client, func(e pyreborn.Authenticated) {
		printOK("authenticated")
	})
	pyreborn.Subscribe(client, func(e pyreborn.Disconnected) {
		printReady(fmt.Sprintf("disconnected: %s", e.Reason))
	})
	pyreborn.Subscribe(client, func(e pyreborn.LevelEntered) {
		printReady(fmt.Sprintf("entered level %s", e.Name))
	})
	pyreborn.Subscribe(client, func(e pyreborn.ChatMessage) {
		fmt.Printf("  [chat %d] %s\n", e.ID, e.Text)
	})
	pyreborn.Subscribe(client, func(e pyreborn.UnknownPacket) {
		fmt.Printf("  [unknown packet id=%d len=%d]\n", e.ID, len(e.Body))
	})
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("connection")
	if err := client.Connect(ctx, *host, *port, *account, *password); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	printReady(fmt.Sprintf("dialing %s:%d as %s", *host, *port, *account))
	fmt.Println()

	<-ctx.Done()
	client.Disconnect("interrupted")
	return nil
}
