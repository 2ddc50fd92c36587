package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/arthur-debert/frameseq/pkg/binding"
	"github.com/arthur-debert/frameseq/pkg/errors"
	"github.com/arthur-debert/frameseq/pkg/logging"
	"github.com/arthur-debert/frameseq/pkg/output/styles"
	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// Renderer writes command results in one format
type Renderer struct {
	w      io.Writer
	format Format
	logger zerolog.Logger
}

// NewRenderer creates a renderer for w. FormatAuto is resolved against w
// when it is a file and falls back to text otherwise.
func NewRenderer(w io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		}
	}

	logger := logging.GetLogger("output")
	logger.Debug().Str("format", format.String()).Msg("Renderer created")

	return &Renderer{w: w, format: format, logger: logger}
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

func (r *Renderer) styled(name, text string) string {
	if r.format != FormatTerminal {
		return text
	}
	return styles.GetStyle(name).Render(text)
}

func (r *Renderer) println(parts ...string) {
	fmt.Fprintln(r.w, strings.Join(parts, " "))
}

// Message prints a single line using a named style
func (r *Renderer) Message(style, format string, args ...interface{}) {
	if r.format == FormatJSON {
		return
	}
	r.println(r.styled(style, fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON
func (r *Renderer) JSON(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type resequenceView struct {
	*sequence.ResequenceResult
	DryRun bool `json:"dry_run"`
}

// RenderResequence prints the rename plan of a resequence run
func (r *Renderer) RenderResequence(result *sequence.ResequenceResult, dryRun bool) error {
	if r.format == FormatJSON {
		return r.JSON(resequenceView{ResequenceResult: result, DryRun: dryRun})
	}

	r.println(r.styled("Title", "Resequence"), r.styled("Path", result.Directory))
	r.println(r.styled("Label", "extension"), fmt.Sprintf("%s (png %d, jpg %d, jpeg %d)",
		result.Extension, result.Vote.PNG, result.Vote.JPG, result.Vote.JPEG))
	r.println(r.styled("Label", "prefix"), fmt.Sprintf("%q", result.Prefix))
	r.println(r.styled("Label", "frames"), fmt.Sprint(len(result.Frames)))

	switch {
	case result.Plan.Empty():
		r.println(r.styled("Success", "Already in sequence, nothing to rename"))
	default:
		table, err := r.renameTable(result)
		if err != nil {
			return err
		}
		fmt.Fprint(r.w, table)
		if dryRun {
			r.println(r.styled("Warning", fmt.Sprintf("Dry run: %d files would be renamed", len(result.Plan.Moves()))))
		} else if result.Applied {
			r.println(r.styled("Success", fmt.Sprintf("Renamed %d files", len(result.Plan.Moves()))))
		}
	}

	r.println(r.styled("Label", "first frame"), r.styled("Path", result.FirstFrame))
	return nil
}

func (r *Renderer) renameTable(result *sequence.ResequenceResult) (string, error) {
	data := pterm.TableData{{"From", "To", "Status"}}
	for _, move := range result.Plan.Moves() {
		status := string(move.Status)
		if r.format == FormatTerminal {
			status = RenameStyle(move.Status).Sprint(status)
		}
		data = append(data, []string{move.From, move.To, status})
	}

	if r.format != FormatTerminal {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render rename table")
	}
	return out + "\n", nil
}

type refreshView struct {
	*sequence.RefreshResult
	Trailing []string `json:"trailing"`
}

// RenderRefresh prints a refresh outcome and the newest frames
func (r *Renderer) RenderRefresh(result *sequence.RefreshResult, trailing []string) error {
	if r.format == FormatJSON {
		return r.JSON(refreshView{RefreshResult: result, Trailing: trailing})
	}

	status := string(result.Status)
	if r.format == FormatTerminal {
		status = RefreshStyle(result.Status).Sprint(" " + status + " ")
	}
	r.println(status, fmt.Sprintf("%d frames, +%d -%d", len(result.Frames), len(result.Added), len(result.Dropped)))

	if result.AnchorReplaced {
		r.println(r.styled("Warning", fmt.Sprintf("First frame was removed, sequence now starts at %s", result.Anchor)))
	}
	for _, name := range result.Added {
		r.println(r.styled("Added", "+ "+name))
	}
	for _, name := range result.Dropped {
		r.println(r.styled("Dropped", "- "+name))
	}
	r.renderTrailing(trailing)
	return nil
}

type statusView struct {
	*binding.Binding
	BindingFile string   `json:"binding_file"`
	FirstFrame  string   `json:"first_frame"`
	Trailing    []string `json:"trailing"`
}

// RenderStatus prints the active binding
func (r *Renderer) RenderStatus(b *binding.Binding, path string, trailing int) error {
	if r.format == FormatJSON {
		if b == nil {
			return r.JSON(map[string]interface{}{"binding_file": path, "bound": false})
		}
		return r.JSON(statusView{Binding: b, BindingFile: path, FirstFrame: b.FirstFramePath(), Trailing: b.Trailing(trailing)})
	}

	if b == nil {
		r.println(r.styled("Muted", "No sequence bound"), r.styled("Path", path))
		return nil
	}

	r.println(r.styled("Title", "Bound sequence"))
	r.println(r.styled("Label", "directory"), r.styled("Path", b.Directory))
	r.println(r.styled("Label", "kind"), string(b.Kind))
	r.println(r.styled("Label", "frames"), fmt.Sprint(len(b.Frames)))
	r.println(r.styled("Label", "frame start"), fmt.Sprint(b.FrameStart))
	if first := b.FirstFramePath(); first != "" {
		r.println(r.styled("Label", "first frame"), r.styled("Path", first))
	}
	if !b.UpdatedAt.IsZero() {
		r.println(r.styled("Label", "updated"), b.UpdatedAt.Local().Format(time.DateTime))
	}
	r.renderTrailing(b.Trailing(trailing))
	return nil
}

func (r *Renderer) renderTrailing(frames []string) {
	if len(frames) == 0 {
		return
	}
	r.println(r.styled("Muted", fmt.Sprintf("last %d frames:", len(frames))))
	for _, name := range frames {
		r.println(r.styled("Frame", name))
	}
}

type errorView struct {
	Code    errors.ErrorCode       `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RenderError prints err; JSON output wraps it in an "error" object
func (r *Renderer) RenderError(err error) error {
	if err == nil {
		return nil
	}
	if r.format == FormatJSON {
		view := errorView{
			Code:    errors.GetErrorCode(err),
			Message: err.Error(),
			Details: errors.GetErrorDetails(err),
		}
		return r.JSON(map[string]errorView{"error": view})
	}

	r.println(r.styled("Error", "Error:"), err.Error())
	return nil
}
