// Package topics serves documentation topics bundled with a Cobra CLI.
// Topics are files in an fs.FS, usually embedded, and are listed or
// rendered by a dedicated command.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// TopicManager holds the topics found in a filesystem
type TopicManager struct {
	fsys       fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Topic is a single documentation file
type Topic struct {
	Name    string
	Path    string
	Title   string
	Content string
}

// Options configures the TopicManager
type Options struct {
	// Extensions considered as topics; defaults to .md and .txt
	Extensions []string
	// Renderer formats topic content; defaults to PlainRenderer
	Renderer Renderer
}

// New creates a TopicManager and loads every topic in fsys
func New(fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		fsys:       fsys,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".md", ".txt"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}

	if err := tm.scanTopics(); err != nil {
		return nil, fmt.Errorf("failed to scan topics: %w", err)
	}
	return tm, nil
}

func (tm *TopicManager) scanTopics() error {
	return fs.WalkDir(tm.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(tm.fsys, p)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{
			Name:    name,
			Path:    p,
			Title:   titleOf(string(content), name),
			Content: string(content),
		}
		return nil
	})
}

func (tm *TopicManager) supported(ext string) bool {
	for _, valid := range tm.extensions {
		if ext == valid {
			return true
		}
	}
	return false
}

// titleOf returns the first markdown heading, or fallback
func titleOf(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	topic, exists := tm.topics[strings.ToLower(name)]
	return topic, exists
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the configured renderer
func (tm *TopicManager) Render(topic *Topic) string {
	return tm.renderer.Render(topic.Content, path.Ext(topic.Path))
}

// WriteIndex writes the list of topics with their titles
func (tm *TopicManager) WriteIndex(w io.Writer, cliName string) {
	names := tm.ListTopics()
	if len(names) == 0 {
		fmt.Fprintln(w, "No topics available.")
		return
	}

	fmt.Fprintln(w, "Available topics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, tm.topics[name].Title)
	}
	fmt.Fprintf(w, "\nUse '%s guide <topic>' to read a topic.\n", cliName)
}

// NewCommand builds a command that lists topics, or renders the one named
// by its argument. The manager is resolved lazily so renderer choices made
// at run time (output format, colour) are honoured.
func NewCommand(use, short string, manager func() (*TopicManager, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			tm, err := manager()
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return tm.ListTopics(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := manager()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				tm.WriteIndex(cmd.OutOrStdout(), cmd.Root().Name())
				return nil
			}

			topic, exists := tm.GetTopic(args[0])
			if !exists {
				return fmt.Errorf("unknown topic %q, available: %s", args[0], strings.Join(tm.ListTopics(), ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), tm.Render(topic))
			return nil
		},
	}
}
