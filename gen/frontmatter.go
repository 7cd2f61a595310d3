package gen

import (
	"bytes"
	"fmt"
	"os"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/tabdoc"
)

// frontMatter renders the post metadata as a YAML front matter block.
// Keys are emitted in a fixed order with tags in flow style, matching the
// shape downstream site generators expect.
func frontMatter(rec tabdoc.Record) (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value any) error {
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		v := &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("encode front matter %q: %w", key, err)
		}
		node.Content = append(node.Content, k, v)
		return nil
	}

	title := stringField(rec, "Title")
	if title == "" {
		title = "Untitled"
	}
	if err := add("title", title); err != nil {
		return "", err
	}

	tags := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, t := range listField(rec, "Tags") {
		tags.Content = append(tags.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t})
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "tags"}, tags)

	if err := add("reading_time", intField(rec, "Estimated Reading Time", 6)); err != nil {
		return "", err
	}
	if err := add("description", stringField(rec, "Short Description")); err != nil {
		return "", err
	}
	if err := add("draft", false); err != nil {
		return "", err
	}
	if image := stringField(rec, "Suggested Diagram/Image"); image != "" {
		if err := add("image", image); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode front matter: %w", err)
	}
	return "---\n" + buf.String() + "---\n\n", nil
}

// withDiagramPlaceholder prepends a placeholder image line when the post
// suggests a diagram.
func withDiagramPlaceholder(article, note string) string {
	if note == "" {
		return article
	}
	return fmt.Sprintf("![%s](images/placeholder.png)\n\n%s", note, article)
}

// alreadyGenerated reports whether path holds a previously generated
// article for the same title, read from its front matter.
func alreadyGenerated(path, title string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var meta struct {
		Title string `yaml:"title"`
	}
	if _, err := frontmatter.Parse(bytes.NewReader(data), &meta); err != nil {
		return false
	}
	return meta.Title == title
}
