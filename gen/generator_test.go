package gen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-logger/glog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/tabdoc"
)

type stubClient struct {
	calls [][]Message
	reply func(n int) (string, error)
}

func (s *stubClient) Complete(_ context.Context, _ string, _ float32, _ int, messages []Message) (string, error) {
	copied := make([]Message, len(messages))
	copy(copied, messages)
	s.calls = append(s.calls, copied)
	if s.reply != nil {
		return s.reply(len(s.calls))
	}
	return fmt.Sprintf("article %d", len(s.calls)), nil
}

func testLogger() glog.Logger {
	return glog.NewLogger(
		glog.WithLevel(glog.Error),
		glog.WithLoggerTypeConsole(),
	)
}

func testConfig() Config {
	return Config{
		APIKey:                "sk-test",
		Model:                 "gpt-4o",
		Temperature:           0.7,
		MaxTokens:             1500,
		TokensPerMinute:       225,
		SystemPrompt:          "be helpful",
		ContentPromptTemplate: "write about {title}: {synopsis}",
	}
}

func testPosts() []Post {
	return []Post{
		{Category: "Go", Record: tabdoc.Record{
			{Name: "Title", Value: "Intro to Go"},
			{Name: "Synopsis", Value: "a gentle start"},
			{Name: "Estimated Reading Time", Value: 4},
			{Name: "Tags", Value: []string{"go", "basics"}},
			{Name: "Short Description", Value: "first steps"},
		}},
		{Category: "Go", Record: tabdoc.Record{
			{Name: "Title", Value: "Interfaces in Go"},
			{Name: "Synopsis", Value: "contracts over types"},
			{Name: "Tags", Value: []string{"go"}},
			{Name: "Suggested Diagram/Image", Value: "interface satisfaction"},
		}},
	}
}

func TestGeneratorRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	client := &stubClient{}
	g := New(testConfig(), client, testLogger())

	res, err := g.Run(context.Background(), testPosts(), RunOptions{OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 2}, res)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var intro, interfaces string
	for _, entry := range entries {
		assert.True(t, strings.HasSuffix(entry.Name(), ".md"))
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		require.NoError(t, err)
		if strings.Contains(string(data), "title: Intro to Go") {
			intro = string(data)
		} else {
			interfaces = string(data)
		}
	}
	require.NotEmpty(t, intro)
	require.NotEmpty(t, interfaces)

	assert.True(t, strings.HasPrefix(intro, "---\n"))
	assert.Contains(t, intro, "tags: [go, basics]")
	assert.Contains(t, intro, "reading_time: 4")
	assert.Contains(t, intro, "description: first steps")
	assert.Contains(t, intro, "draft: false")
	assert.Contains(t, intro, "article 1")

	assert.Contains(t, interfaces, "title: Interfaces in Go")
	assert.Contains(t, interfaces, "![interface satisfaction](images/placeholder.png)")
	assert.Contains(t, interfaces, "reading_time: 6")
}

func TestGeneratorCarriesMemory(t *testing.T) {
	t.Parallel()
	client := &stubClient{}
	g := New(testConfig(), client, testLogger())

	_, err := g.Run(context.Background(), testPosts(), RunOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	require.Len(t, client.calls, 2)

	first := client.calls[0]
	require.Len(t, first, 2)
	assert.Equal(t, "system", first[0].Role)
	assert.Equal(t, "user", first[1].Role)
	assert.Equal(t, "write about Intro to Go: a gentle start", first[1].Content)

	second := client.calls[1]
	require.Len(t, second, 3)
	assert.Equal(t, "assistant", second[1].Role)
	assert.Equal(t, "article 1", second[1].Content)
}

func TestGeneratorSkipsExisting(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	posts := testPosts()

	g := New(testConfig(), &stubClient{}, testLogger())
	_, err := g.Run(context.Background(), posts, RunOptions{OutputDir: dir})
	require.NoError(t, err)

	rerun := &stubClient{}
	g2 := New(testConfig(), rerun, testLogger())
	res, err := g2.Run(context.Background(), posts, RunOptions{OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 2}, res)
	assert.Empty(t, rerun.calls)

	forced := &stubClient{}
	g3 := New(testConfig(), forced, testLogger())
	res, err = g3.Run(context.Background(), posts, RunOptions{OutputDir: dir, Force: true})
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 2}, res)
	assert.Len(t, forced.calls, 2)
}

func TestGeneratorContinuesAfterFailure(t *testing.T) {
	t.Parallel()
	client := &stubClient{reply: func(n int) (string, error) {
		if n == 1 {
			return "", errors.New("rate limited")
		}
		return "recovered article", nil
	}}
	g := New(testConfig(), client, testLogger())

	res, err := g.Run(context.Background(), testPosts(), RunOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, Result{Written: 1, Failed: 1}, res)
}

func TestGeneratorSkipsUntitledPosts(t *testing.T) {
	t.Parallel()
	client := &stubClient{}
	g := New(testConfig(), client, testLogger())
	posts := []Post{{Category: "Go", Record: tabdoc.Record{{Name: "Synopsis", Value: "no title"}}}}

	res, err := g.Run(context.Background(), posts, RunOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 1}, res)
	assert.Empty(t, client.calls)
}

func TestEstimateTokens(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		readingTime int
		perMinute   int
		max         int
		want        int
	}{
		"under cap":    {readingTime: 4, perMinute: 225, max: 1500, want: 900},
		"capped":       {readingTime: 10, perMinute: 225, max: 1500, want: 1500},
		"zero reading": {readingTime: 0, perMinute: 225, max: 1500, want: 1500},
		"zero rate":    {readingTime: 4, perMinute: 0, max: 1500, want: 1500},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, estimateTokens(tt.readingTime, tt.perMinute, tt.max))
		})
	}
}

func TestLoadPostsGrouped(t *testing.T) {
	t.Parallel()
	input := `Go:
  - Title: Intro
    Synopsis: first
  - Title: Next
Python:
  - Title: Elsewhere
`
	posts, err := LoadPosts([]byte(input))
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Go", posts[0].Category)
	assert.Equal(t, "Go", posts[1].Category)
	assert.Equal(t, "Python", posts[2].Category)
	title, _ := posts[2].Record.Get("Title")
	assert.Equal(t, "Elsewhere", title)
}

func TestLoadPostsBareList(t *testing.T) {
	t.Parallel()
	posts, err := LoadPosts([]byte("- Title: Intro\n- Title: Next\n"))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Empty(t, posts[0].Category)
}

func TestLoadPostsRejectsScalar(t *testing.T) {
	t.Parallel()
	_, err := LoadPosts([]byte("just text\n"))
	assert.Error(t, err)
}

func TestFrontMatterOmitsEmptyImage(t *testing.T) {
	t.Parallel()
	fm, err := frontMatter(tabdoc.Record{{Name: "Title", Value: "Intro"}})
	require.NoError(t, err)
	assert.NotContains(t, fm, "image:")
	assert.Contains(t, fm, "title: Intro")
	assert.Contains(t, fm, "tags: []")
	assert.True(t, strings.HasSuffix(fm, "---\n\n"))
}

func TestFrontMatterUntitledFallback(t *testing.T) {
	t.Parallel()
	fm, err := frontMatter(tabdoc.Record{})
	require.NoError(t, err)
	assert.Contains(t, fm, "title: Untitled")
}

func TestWithDiagramPlaceholder(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "body", withDiagramPlaceholder("body", ""))
	assert.Equal(t, "![note](images/placeholder.png)\n\nbody", withDiagramPlaceholder("body", "note"))
}
