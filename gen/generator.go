// Package gen turns a structured list of blog post records into Markdown
// articles with YAML front matter, one file per post, using a chat
// completion API for the article bodies.
package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goliatone/go-logger/glog"
	slug "github.com/goliatone/go-slug"

	"github.com/bjaus/tabdoc"
)

// Message is one turn of the chat transcript.
type Message struct {
	Role    string
	Content string
}

// ChatClient abstracts the completion API so runs can be tested without
// network access.
type ChatClient interface {
	Complete(ctx context.Context, model string, temperature float32, maxTokens int, messages []Message) (string, error)
}

// Generator writes one Markdown article per post. It keeps the running
// conversation as memory so later posts stay thematically consistent
// with earlier ones.
type Generator struct {
	cfg    Config
	client ChatClient
	logger glog.Logger
	memory []Message
}

// New returns a Generator using the given client and logger.
func New(cfg Config, client ChatClient, logger glog.Logger) *Generator {
	return &Generator{cfg: cfg, client: client, logger: logger}
}

// RunOptions configures a generation run.
type RunOptions struct {
	// OutputDir receives one <slug>.md file per post. Created if missing.
	OutputDir string
	// Force regenerates posts whose output file already exists.
	Force bool
}

// Result summarizes a run.
type Result struct {
	Written int
	Skipped int
	Failed  int
}

// Run generates an article for every post. A failing post is logged and
// counted, never fatal: the run continues with the next post.
func (g *Generator) Run(ctx context.Context, posts []Post, opts RunOptions) (Result, error) {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	var res Result
	for _, post := range posts {
		title := stringField(post.Record, "Title")
		if title == "" {
			g.logger.Warn("skipping post without a title", "category", post.Category)
			res.Skipped++
			continue
		}
		slugged, _ := slug.Normalize(title)
		path := filepath.Join(opts.OutputDir, slugged+".md")
		if !opts.Force && alreadyGenerated(path, title) {
			g.logger.Info("already generated, skipping", "title", title, "path", path)
			res.Skipped++
			continue
		}

		article, err := g.generate(ctx, post.Record, title)
		if err != nil {
			g.logger.Error("generation failed", "title", title, "error", err)
			res.Failed++
			continue
		}
		front, err := frontMatter(post.Record)
		if err != nil {
			g.logger.Error("front matter failed", "title", title, "error", err)
			res.Failed++
			continue
		}
		body := front + withDiagramPlaceholder(article, stringField(post.Record, "Suggested Diagram/Image"))
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			g.logger.Error("write failed", "path", path, "error", err)
			res.Failed++
			continue
		}
		g.logger.Info("saved", "title", title, "path", path)
		res.Written++
	}
	return res, nil
}

func (g *Generator) generate(ctx context.Context, rec tabdoc.Record, title string) (string, error) {
	synopsis := stringField(rec, "Synopsis")
	readingTime := intField(rec, "Estimated Reading Time", 6)
	maxTokens := estimateTokens(readingTime, g.cfg.TokensPerMinute, g.cfg.MaxTokens)
	prompt := renderPrompt(g.cfg.ContentPromptTemplate, title, synopsis)
	g.logger.Info("generating", "title", title, "reading_time", readingTime, "max_tokens", maxTokens)
	g.logger.Debug("prompt", "content", prompt)

	messages := make([]Message, 0, len(g.memory)+2)
	messages = append(messages, Message{Role: "system", Content: g.cfg.SystemPrompt})
	messages = append(messages, g.memory...)
	messages = append(messages, Message{Role: "user", Content: prompt})

	article, err := g.client.Complete(ctx, g.cfg.Model, g.cfg.Temperature, maxTokens, messages)
	if err != nil {
		return "", err
	}
	g.memory = append(g.memory, Message{Role: "assistant", Content: article})
	return article, nil
}

// estimateTokens scales the token budget by reading time, capped at max.
func estimateTokens(readingTime, perMinute, max int) int {
	if readingTime <= 0 || perMinute <= 0 {
		return max
	}
	if est := readingTime * perMinute; est < max {
		return est
	}
	return max
}

func renderPrompt(tmpl, title, synopsis string) string {
	out := strings.ReplaceAll(tmpl, "{title}", title)
	return strings.ReplaceAll(out, "{synopsis}", synopsis)
}

func stringField(rec tabdoc.Record, name string) string {
	v, ok := rec.Get(name)
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func intField(rec tabdoc.Record, name string, fallback int) int {
	v, ok := rec.Get(name)
	if !ok {
		return fallback
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return fallback
}

func listField(rec tabdoc.Record, name string) []string {
	v, ok := rec.Get(name)
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return val
	case string:
		if val != "" {
			return []string{val}
		}
	}
	return nil
}
