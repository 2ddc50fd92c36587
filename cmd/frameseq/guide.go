package frameseq

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/frameseq/pkg/cobrax/topics"
	"github.com/arthur-debert/frameseq/pkg/output"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

func newGuideCmd(a *app) *cobra.Command {
	cmd := topics.NewCommand("guide [topic]", MsgGuideShort, func() (*topics.TopicManager, error) {
		sub, err := fs.Sub(topicFiles, "topics")
		if err != nil {
			return nil, err
		}

		var renderer topics.Renderer = &topics.PlainRenderer{}
		if a.renderer != nil && a.renderer.Format() == output.FormatTerminal {
			renderer = topics.NewGlamourRenderer()
		}
		return topics.New(sub, topics.Options{Extensions: []string{".md"}, Renderer: renderer})
	})
	cmd.GroupID = "misc"
	return cmd
}
