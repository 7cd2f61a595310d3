package gen

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/tabdoc"
)

// Post is one entry from the blog metadata document.
type Post struct {
	// Category is the grouping key from the metadata file, empty when the
	// file is a bare list.
	Category string
	Record   tabdoc.Record
}

// LoadPosts reads the blog metadata YAML: either a mapping of category to
// post list, or a bare list of posts. Category and post order are
// preserved.
func LoadPosts(data []byte) ([]Post, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, fmt.Errorf("metadata is empty")
	}
	top := root.Content[0]
	switch top.Kind {
	case yaml.SequenceNode:
		return decodePosts("", top)
	case yaml.MappingNode:
		var posts []Post
		for i := 0; i+1 < len(top.Content); i += 2 {
			category := top.Content[i].Value
			group, err := decodePosts(category, top.Content[i+1])
			if err != nil {
				return nil, err
			}
			posts = append(posts, group...)
		}
		return posts, nil
	default:
		return nil, fmt.Errorf("metadata must be a mapping of categories or a list of posts")
	}
}

func decodePosts(category string, node *yaml.Node) ([]Post, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("category %q: expected a list of posts", category)
	}
	posts := make([]Post, 0, len(node.Content))
	for i, entry := range node.Content {
		var rec tabdoc.Record
		if err := entry.Decode(&rec); err != nil {
			return nil, fmt.Errorf("category %q, post %d: %w", category, i+1, err)
		}
		posts = append(posts, Post{Category: category, Record: rec})
	}
	return posts, nil
}
