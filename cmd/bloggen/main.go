// Command bloggen generates Markdown blog articles with front matter from
// a structured post metadata file, using a chat completion API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-logger/glog"

	"github.com/bjaus/tabdoc/gen"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bloggen: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("bloggen", flag.ExitOnError)
	configPath := fs.String("config", "config.yml", "Path to the generator config YAML")
	input := fs.String("input", "out.yml", "Blog post metadata YAML input")
	output := fs.String("output", "generated_content", "Directory to write Markdown output")
	model := fs.String("model", "", "Override the configured model")
	temperature := fs.Float64("temperature", -1, "Override the configured temperature")
	maxTokens := fs.Int("max-tokens", 0, "Override the configured max token budget")
	tokensPerMinute := fs.Int("tokens-per-minute", 0, "Override tokens per minute of reading time")
	force := fs.Bool("force", false, "Regenerate posts whose output already exists")
	logLevel := fs.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := gen.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *model != "" {
		cfg.Model = *model
	}
	if *temperature >= 0 {
		cfg.Temperature = float32(*temperature)
	}
	if *maxTokens > 0 {
		cfg.MaxTokens = *maxTokens
	}
	if *tokensPerMinute > 0 {
		cfg.TokensPerMinute = *tokensPerMinute
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	root := glog.NewLogger(
		glog.WithLevel(parseLevel(*logLevel)),
		glog.WithLoggerTypeConsole(),
	)
	logger := root.GetLogger("bloggen")

	data, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("read metadata: %w", err)
	}
	posts, err := gen.LoadPosts(data)
	if err != nil {
		return err
	}

	logger.Info("starting blog post generation", "posts", len(posts), "output", *output)
	g := gen.New(cfg, gen.NewOpenAIClient(cfg.APIKey), logger)
	res, err := g.Run(context.Background(), posts, gen.RunOptions{OutputDir: *output, Force: *force})
	if err != nil {
		return err
	}
	logger.Info("generation finished", "written", res.Written, "skipped", res.Skipped, "failed", res.Failed)
	return nil
}

func parseLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return glog.Info
	}
}
