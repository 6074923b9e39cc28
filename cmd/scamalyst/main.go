// Command scamalyst runs the analyzers from a terminal and carries a few
// operator tools for the scamalystd deployment.
//
// Usage:
//
//	scamalyst [-json] message|website|ai <text...>
//	scamalyst [-json] -example message
//	scamalyst watch
//	scamalyst token -client <id> [-roles analyst,inference] [-ttl 24h]
//	scamalyst certs [-out dir] [host...]
//	scamalyst keygen [-out dir]
//
// A single "-" argument reads the text from stdin.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/naomili-code/scamalyst/internal/application/dto"
	"github.com/naomili-code/scamalyst/internal/application/usecase"
	"github.com/naomili-code/scamalyst/internal/domain/rules"
	"github.com/naomili-code/scamalyst/internal/domain/service"
	"github.com/naomili-code/scamalyst/internal/infrastructure/config"
	"github.com/naomili-code/scamalyst/pkg/observability"
)

var errUsage = errors.New("usage: scamalyst [-json] [-example] message|website|ai <text...> | watch | token | certs | keygen")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "scamalyst:", err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// cli holds what every subcommand needs.
type cli struct {
	cfg    config.Config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	asJSON bool
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("scamalyst", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "print the full result as JSON")
	example := fs.Bool("example", false, "analyze the bundled example message")
	logLevel := fs.String("log-level", "warn", "diagnostic log level (written to stderr)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := &cli{
		cfg:    config.Load(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: observability.NewLogger(observability.LogConfig{Output: stderr, Level: *logLevel, Format: "text"}),
		asJSON: *asJSON,
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errUsage
	}
	cmd, rest := rest[0], rest[1:]

	switch cmd {
	case "message", "website", "ai":
		text, err := c.input(rest, *example)
		if err != nil {
			return err
		}
		return c.analyze(ctx, cmd, text)
	case "watch":
		return c.watch(ctx, rest)
	case "token":
		return c.token(rest)
	case "certs":
		return c.certs(rest)
	case "keygen":
		return c.keygen(rest)
	default:
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

// input joins the positional words, or reads stdin for a lone "-".
func (c *cli) input(args []string, example bool) (string, error) {
	switch {
	case example:
		return rules.ExampleMessage, nil
	case len(args) == 1 && args[0] == "-":
		b, err := io.ReadAll(c.stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	default:
		return strings.Join(args, " "), nil
	}
}

func (c *cli) analyze(ctx context.Context, kind, text string) error {
	// Events stay in-process; the CLI has no publisher.
	switch kind {
	case "message":
		resp, err := usecase.NewAnalyzeMessage(
			service.NewMessageScorer(), service.NewScamTypeClassifier(), nil, nil, c.logger,
		).Execute(ctx, dto.AnalyzeTextRequest{Text: text})
		if err != nil {
			return err
		}
		if c.asJSON {
			return c.printJSON(resp)
		}
		fmt.Fprintf(c.stdout, "Score:    %.1f / 10 (%d%%)\n", resp.Score, resp.MeterPercent)
		fmt.Fprintf(c.stdout, "Verdict:  %s\n", resp.Verdict)
		fmt.Fprintf(c.stdout, "Type:     %s\n", resp.ScamType.Label)
		c.printList("Reasons", resp.Reasons)
		c.printList("What to do", resp.SafetyActions)
		c.printList("Highlights", resp.Highlights)

	case "ai":
		resp, err := usecase.NewDetectAI(service.NewAIDetector(), nil, nil, c.logger).
			Execute(ctx, dto.AnalyzeTextRequest{Text: text})
		if err != nil {
			return err
		}
		if c.asJSON {
			return c.printJSON(resp)
		}
		fmt.Fprintf(c.stdout, "Score:    %.2f\n", resp.Score)
		fmt.Fprintf(c.stdout, "Verdict:  %s\n", resp.Verdict)
		c.printList("Reasons", resp.Reasons)

	case "website":
		resp, err := usecase.NewAnalyzeWebsite(service.NewWebsiteScorer(), nil, nil, c.logger).
			Execute(ctx, dto.AnalyzeWebsiteRequest{Input: text})
		if err != nil {
			return err
		}
		if c.asJSON {
			return c.printJSON(resp)
		}
		fmt.Fprintf(c.stdout, "Score:    %.1f / 10\n", resp.Score)
		fmt.Fprintf(c.stdout, "Verdict:  %s\n", resp.Verdict)
		fmt.Fprintf(c.stdout, "Mode:     %s\n", resp.Mode)
		flags := make([]string, 0, len(resp.RedFlags))
		for _, f := range resp.RedFlags {
			flags = append(flags, fmt.Sprintf("[%s +%g] %s", f.Category, f.Weight, f.Message))
		}
		c.printList("Red flags", flags)
	}
	return nil
}

func (c *cli) printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(c.stdout, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(c.stdout, "  - %s\n", item)
	}
}

func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
