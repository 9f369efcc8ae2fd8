package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/shelf-sh/shelf/pkg/installerr"
	"github.com/shelf-sh/shelf/pkg/types"
)

// actionVerbs maps each action kind to its real-run and dry-run verb.
var actionVerbs = map[types.ActionKind]struct {
	Done  string
	Would string
}{
	types.ActionCreate:   {Done: "linked", Would: "would link"},
	types.ActionRelink:   {Done: "relinked", Would: "would relink"},
	types.ActionSkip:     {Done: "skipped", Would: "skipped"},
	types.ActionConflict: {Done: "conflict", Would: "conflict"},
}

// Renderer writes run reports to a writer, typically stdout.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a Renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// RenderResult writes one line per target followed by the aggregate
// summary. Dry-run output is prefixed so it cannot be mistaken for a
// real run.
func (r *Renderer) RenderResult(result types.ReconcileResult) {
	var b strings.Builder

	if result.DryRun {
		b.WriteString(TitleStyle.Render("dry-run: no changes made") + "\n")
	}

	if len(result.Actions) == 0 {
		b.WriteString(MutedStyle.Sprint("nothing to install") + "\n")
		fmt.Fprint(r.w, b.String())
		return
	}

	for _, action := range result.Actions {
		b.WriteString(renderAction(action, result.DryRun) + "\n")
	}

	b.WriteString("\n" + summaryLine(result) + "\n")
	fmt.Fprint(r.w, b.String())
}

// RenderError writes a fatal error with its code.
func (r *Renderer) RenderError(err error) {
	code := installerr.GetErrorCode(err)
	fmt.Fprintf(r.w, "%s %s\n", ErrorStyle.Sprint(string(code)), err.Error())
}

func renderAction(action types.Action, dryRun bool) string {
	st, indicator := ActionStyle(action.Kind)
	verbs := actionVerbs[action.Kind]
	verb := verbs.Done
	if dryRun {
		verb = verbs.Would
	}

	name := action.Target.Name
	if action.Target.Kind == types.LinkKindCompletion {
		name = fmt.Sprintf("%s (%s completion)", name, action.Target.Shell)
	}

	var detail string
	switch action.Kind {
	case types.ActionCreate:
		detail = fmt.Sprintf("%s %s -> %s", verb, action.Target.TargetPath, action.Target.Source)
	case types.ActionRelink:
		detail = fmt.Sprintf("%s %s (was %s)", verb, action.Target.TargetPath, action.PreviousTarget)
	case types.ActionSkip:
		detail = fmt.Sprintf("%s %s (%s)", verb, action.Target.TargetPath, action.Reason)
	default:
		detail = fmt.Sprintf("%s %s: %s", verb, action.Target.TargetPath, action.Reason)
	}

	return fmt.Sprintf("  %s %s %s", st.Sprint(indicator), name, MutedStyle.Sprint(detail))
}

func summaryLine(result types.ReconcileResult) string {
	parts := []string{
		CreatedStyle.Sprintf("%d created", result.Created),
		MutedStyle.Sprintf("%d skipped", result.Skipped),
		RelinkStyle.Sprintf("%d relinked", result.Relinked),
	}
	if result.Conflicted > 0 {
		parts = append(parts, ConflictStyle.Sprintf("%d conflicts", result.Conflicted))
	} else {
		parts = append(parts, MutedStyle.Sprint("0 conflicts"))
	}
	return strings.Join(parts, ", ")
}
