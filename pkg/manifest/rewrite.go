package manifest

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pypin/pkg/dates"
	"github.com/matzehuels/pypin/pkg/errors"
	"github.com/matzehuels/pypin/pkg/resolve"
)

// Resolver resolves a package name to its version as of a date.
// *resolve.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, pkg string, date dates.Date) (resolve.Result, error)
}

// Diagnostic reports a requirement that was dropped from the output.
type Diagnostic struct {
	Line    int        `json:"line" yaml:"line"` // 1-based line number in the input
	Package string     `json:"package" yaml:"package"`
	Date    dates.Date `json:"date" yaml:"date"`
	Err     error      `json:"-" yaml:"-"`
}

// Error returns the diagnostic's error text.
func (d Diagnostic) Error() string {
	return errors.UserMessage(d.Err)
}

// String renders the diagnostic the way the CLI prints it.
func (d Diagnostic) String() string {
	return fmt.Sprintf("No version found for %s on %s: %s", d.Package, d.Date, d.Error())
}

// Output is a rewritten manifest.
type Output struct {
	Lines       []string
	Diagnostics []Diagnostic
	Pinned      int // requirements replaced by a pin
}

// String joins the output lines with newlines.
func (o Output) String() string {
	return strings.Join(o.Lines, "\n")
}

// Options configures a Rewriter.
type Options struct {
	// OnDiagnostic is called for every dropped requirement, as it happens.
	OnDiagnostic func(Diagnostic)
	// OnProgress is called after each requirement with the number handled
	// so far, the total, and the requirement's name.
	OnProgress func(done, total int, name string)
	Logger     *log.Logger
}

// Rewriter pins every requirement in a manifest.
type Rewriter struct {
	resolver Resolver
	opts     Options
}

// NewRewriter creates a Rewriter that resolves through r.
func NewRewriter(r Resolver, opts Options) *Rewriter {
	if opts.OnDiagnostic == nil {
		opts.OnDiagnostic = func(Diagnostic) {}
	}
	if opts.OnProgress == nil {
		opts.OnProgress = func(int, int, string) {}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Rewriter{resolver: r, opts: opts}
}

// Rewrite processes lines in order. Pass-through lines are copied verbatim;
// each requirement becomes "name==version" or is dropped with a diagnostic.
//
// Per-package failures never abort the rewrite. Cancellation of ctx does,
// returning the context error; other non-local errors are returned as well.
func (w *Rewriter) Rewrite(ctx context.Context, lines []string, date dates.Date) (Output, error) {
	classified := make([]Line, len(lines))
	total := 0
	for i, raw := range lines {
		classified[i] = Classify(raw)
		if !classified[i].PassThrough() {
			total++
		}
	}

	out := Output{Lines: make([]string, 0, len(lines))}
	done := 0
	for i, line := range classified {
		if line.PassThrough() {
			out.Lines = append(out.Lines, line.Raw)
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}

		name := line.Lookup()
		pinned, err := w.pin(ctx, line, date)
		switch {
		case err == nil:
			out.Lines = append(out.Lines, pinned)
			out.Pinned++
		case ctx.Err() != nil:
			return out, ctx.Err()
		case errors.Local(err):
			d := Diagnostic{Line: i + 1, Package: name, Date: date, Err: err}
			out.Diagnostics = append(out.Diagnostics, d)
			w.opts.Logger.Debug("dropping requirement", "line", d.Line, "package", name, "err", err)
			w.opts.OnDiagnostic(d)
		default:
			return out, err
		}

		done++
		w.opts.OnProgress(done, total, name)
	}
	return out, nil
}

func (w *Rewriter) pin(ctx context.Context, line Line, date dates.Date) (string, error) {
	name := line.Lookup()
	if err := errors.ValidatePythonPackageName(name); err != nil {
		return "", err
	}
	res, err := w.resolver.Resolve(ctx, name, date)
	if err != nil {
		return "", err
	}
	return line.Declared() + "==" + res.Version, nil
}
