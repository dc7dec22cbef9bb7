package cli

import (
	"io"

	"github.com/fatih/color"

	"arrivq/internal/script"
)

// printer renders script outcomes the way the console demo always has:
// one header per step, then an indented result.
type printer struct {
	w    io.Writer
	step *color.Color
	ok   *color.Color
	task *color.Color
	fail *color.Color
	dim  *color.Color
}

func newPrinter(w io.Writer, enabled bool) *printer {
	p := &printer{
		w:    w,
		step: color.New(color.FgCyan, color.Bold),
		ok:   color.New(color.FgGreen),
		task: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
		dim:  color.New(color.Faint),
	}
	if !enabled {
		for _, c := range []*color.Color{p.step, p.ok, p.task, p.fail, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) outcomes(outs []script.Outcome) {
	for _, o := range outs {
		p.step.Fprintf(p.w, "> %s\n", o.Step)

		switch {
		case o.Err != nil:
			p.fail.Fprintf(p.w, "  error: %v\n", o.Err)
		case o.Task != nil:
			p.task.Fprintf(p.w, "  executing %s\n", o.Task)
		case o.Step.Op == script.OpList:
			if len(o.Tasks) == 0 {
				p.dim.Fprintln(p.w, "  no pending tasks")
			}
			for i, t := range o.Tasks {
				p.ok.Fprintf(p.w, "  %d. %s\n", i+1, t)
			}
		default:
			p.ok.Fprintln(p.w, "  ok")
		}
	}
}
