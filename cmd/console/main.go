// Command console runs the engine interactively or for a single request.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/arogyalabs/clinicflow/internal/agent"
	"github.com/arogyalabs/clinicflow/internal/capability"
	"github.com/arogyalabs/clinicflow/internal/clinicdata"
	"github.com/arogyalabs/clinicflow/internal/compliance"
	"github.com/arogyalabs/clinicflow/internal/config"
	"github.com/arogyalabs/clinicflow/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	var (
		request = flag.String("request", "", "process a single request and exit")
		dryRun  = flag.Bool("dry-run", false, "simulate bookings without committing them")
		verbose = flag.Bool("verbose", false, "print the full structured response")
	)
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewWithWriter(cfg.LogLevel, "text", os.Stderr)

	// The env default applies unless -dry-run was given explicitly.
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "dry-run" {
			explicit = true
		}
	})
	if !explicit && cfg.DryRunDefault {
		*dryRun = true
	}

	store := clinicdata.NewStore()
	if err := clinicdata.Seed(store, clinicdata.SeedOptions{
		Seed:         int64(cfg.SeedValue),
		PatientCount: cfg.PatientCount,
	}); err != nil {
		logger.Error("failed to seed demo data", "error", err)
		os.Exit(1)
	}

	engine := agent.New(agent.Options{
		Capabilities: capability.NewService(store, logger, nil),
		Audit:        compliance.NewRecorder(),
		Logger:       logger,
	})

	ctx := context.Background()

	if *request != "" {
		printResponse(engine.ProcessRequest(ctx, *request, *dryRun), *verbose)
		return
	}

	stats := store.Stats()
	fmt.Println("Clinical workflow console")
	fmt.Printf("Loaded %d patients and %d open slots.\n", stats.Patients, stats.AvailableSlots)
	if *dryRun {
		fmt.Println("Dry-run mode: bookings are simulated.")
	}
	fmt.Println("Type a request, or 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		printResponse(engine.ProcessRequest(ctx, line, *dryRun), *verbose)
	}
	if err := scanner.Err(); err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}
}

func printResponse(resp *agent.Response, verbose bool) {
	if verbose {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		fmt.Println(string(out))
		return
	}

	switch {
	case resp.Refused:
		fmt.Printf("REFUSED: %s\n", resp.Error)
	case !resp.Success && resp.Error != "":
		fmt.Printf("FAILED: %s\n", resp.Error)
	case !resp.Success:
		fmt.Printf("PARTIAL: %s\n", resp.Summary)
	default:
		fmt.Printf("OK: %s\n", resp.Summary)
	}
	if resp.DryRun {
		fmt.Println("(dry run - nothing was committed)")
	}
}
