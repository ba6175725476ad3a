// Command chat is a streaming terminal chat client.
//
// Usage:
//
//	ANTHROPIC_API_KEY=sk-... chat [flags]
//
// Flags:
//
//	-model string     Model ID (default: claude-sonnet-4-20250514)
//	-system string    Path to a system prompt file
//	-save string      Directory to save the transcript into on exit
//	-max-tokens uint  Max tokens per response (default 4096)
//	-v                Verbose logging to stderr
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/telsho/anthropic-go"
	"github.com/telsho/anthropic-go/key"
	"github.com/telsho/anthropic-go/markdown"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	usageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "chat: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		model      = flag.String("model", string(anthropic.DefaultModel), "Model ID")
		systemPath = flag.String("system", "", "Path to a system prompt file")
		saveDir    = flag.String("save", "", "Directory to save the transcript into on exit")
		maxTokens  = flag.Uint64("max-tokens", 4096, "Max tokens per response")
		verbose    = flag.Bool("v", false, "Verbose logging to stderr")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	k, err := key.Parse(os.Getenv("ANTHROPIC_API_KEY"))
	if err != nil {
		return fmt.Errorf("ANTHROPIC_API_KEY: %w", err)
	}

	var opts []anthropic.Option
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, anthropic.WithLogger(logger))
	}
	client := anthropic.New(k, opts...)

	req := anthropic.NewRequest()
	req.Model = anthropic.Model(*model)
	req.MaxTokens = *maxTokens
	if *systemPath != "" {
		system, err := os.ReadFile(*systemPath)
		if err != nil {
			return err
		}
		req.SetSystem(strings.TrimSpace(string(system)))
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return err
	}

	var total anthropic.Usage
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you") + " > ")
		if !in.Scan() {
			break
		}
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		req.AddUser(line)
		resp, err := turn(ctx, client, req)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			// Drop the failed turn so the conversation stays alternating.
			req.Messages = req.Messages[:len(req.Messages)-1]
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		req.Add(resp.Message())

		if out, err := renderer.Render(resp.String()); err == nil {
			fmt.Print(out)
		} else {
			fmt.Println(resp.String())
		}
		total.Add(resp.Usage)
		fmt.Println(usageStyle.Render(fmt.Sprintf("[in %d out %d, total %d]",
			resp.Usage.InputTokens, resp.Usage.OutputTokens,
			total.InputTokens+total.OutputTokens)))
	}

	if *saveDir != "" && len(req.Messages) > 0 {
		path, err := save(*saveDir, req)
		if err != nil {
			return err
		}
		fmt.Println("saved transcript to", path)
	}
	return nil
}

// turn streams one response, echoing text fragments as they arrive, and
// returns the accumulated message.
func turn(ctx context.Context, client *anthropic.Client, req *anthropic.Request) (anthropic.Response, error) {
	stream, err := client.Stream(ctx, req)
	if err != nil {
		return anthropic.Response{}, err
	}
	defer stream.Close()
	stream.FilterTransient()

	var acc anthropic.Accumulator
	for {
		ev, err := stream.Next()
		if err == io.EOF {
			fmt.Println()
			return acc.Response()
		}
		if err != nil {
			var decodeErr *anthropic.DecodeError
			if errors.As(err, &decodeErr) {
				continue
			}
			return anthropic.Response{}, err
		}
		if err := acc.Apply(ev); err != nil {
			return anthropic.Response{}, err
		}
		if d, ok := ev.(anthropic.EventContentBlockDelta); ok {
			if t, ok := d.Delta.(anthropic.TextDelta); ok {
				fmt.Print(t.Text)
			}
		}
	}
}

func save(dir string, req *anthropic.Request) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.NewString()+".md")
	doc := markdown.Request(req, markdown.Verbose())
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
