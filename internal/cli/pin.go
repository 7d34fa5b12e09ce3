package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/pypin/pkg/cache"
	"github.com/matzehuels/pypin/pkg/dates"
	"github.com/matzehuels/pypin/pkg/errors"
	"github.com/matzehuels/pypin/pkg/manifest"
	"github.com/matzehuels/pypin/pkg/resolve"
)

// Output formats for single-package mode.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// pinOpts holds the flags of the root command.
type pinOpts struct {
	output     string // manifest destination
	format     string // single-package output format
	noProgress bool   // disable spinner and progress bar
	useCache   bool   // enable the cross-run release store
	refresh    bool   // skip store reads
}

// pinResult is the structured single-package output.
type pinResult struct {
	Package string `json:"package" yaml:"package"`
	Version string `json:"version" yaml:"version"`
	Date    string `json:"date" yaml:"date"`
}

func (c *CLI) pinCommand() *cobra.Command {
	var opts pinOpts

	cmd := &cobra.Command{
		Use:   "pypin <package|requirements-file> <date>",
		Short: "Pin Python packages to the versions that were current on a date",
		Long: `pypin looks up, on PyPI, the newest version of a package that had been
published by the start of the given day (UTC).

Given a package name it prints the pin. Given the path of a requirements file
it rewrites every requirement into name==version, keeps comments, blank lines,
options and VCS lines as they are, and writes the result to a new file.

Accepted date formats: ` + strings.Join(dates.Formats(), ", ") + `.`,
		Example: `  pypin flask 01-01-2017
  pypin flask 2017-01-01 --format json
  pypin requirements.txt "Jan 1 2017" -o requirements.lock`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPin(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "manifest output path (default requirements_<date>.txt)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "single-package output format: text, json or yaml")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable progress display")
	cmd.Flags().BoolVar(&opts.useCache, "cache", false, "keep fetched release histories between runs")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore stored release histories (with --cache)")

	return cmd
}

func (c *CLI) runPin(ctx context.Context, target, dateArg string, opts pinOpts) error {
	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}

	date, err := dates.Parse(dateArg)
	if err != nil {
		return err
	}

	var store cache.Cache
	if opts.useCache {
		s, err := c.newStore(ctx)
		if err != nil {
			c.Logger.Warn("release store unavailable, continuing without it", "err", err)
		} else {
			store = s
			defer store.Close()
		}
	}

	client := c.newClient(store, opts.refresh)
	defer client.Close()
	resolver := resolve.NewResolver(client, resolve.Options{Logger: c.Logger})

	if isManifest(target) {
		return c.pinManifest(ctx, resolver, target, dateArg, date, opts)
	}
	return c.pinPackage(ctx, resolver, target, dateArg, date, opts)
}

func (c *CLI) pinPackage(ctx context.Context, r *resolve.Resolver, name, dateArg string, date dates.Date, opts pinOpts) error {
	name = strings.TrimSpace(name)

	res, err := func() (resolve.Result, error) {
		if err := errors.ValidatePythonPackageName(name); err != nil {
			return resolve.Result{}, err
		}
		if c.showProgress(opts) {
			s := newSpinner(ctx, c.Stderr, fmt.Sprintf("Fetching info for %s...", name))
			s.Start()
			defer s.Stop()
		}
		return r.Resolve(ctx, name, date)
	}()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Local(err) {
			return err
		}
		printError(c.Stdout, "No version found for %s on %s: %s", name, dateArg, errors.UserMessage(err))
		return nil
	}

	out := pinResult{Package: name, Version: res.Version, Date: date.String()}
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(c.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case formatYAML:
		enc := yaml.NewEncoder(c.Stdout)
		defer enc.Close()
		return enc.Encode(out)
	default:
		printSuccess(c.Stdout, "Version of %s on %s: %s", name, dateArg, StyleHighlight.Render(name+"=="+res.Version))
		printDetail(c.Stdout, "uploaded %s", res.UploadedAt.Format("2006-01-02 15:04:05 MST"))
		return nil
	}
}

func (c *CLI) pinManifest(ctx context.Context, r *resolve.Resolver, path, dateArg string, date dates.Date, opts pinOpts) error {
	lines, err := manifest.ReadLines(path)
	if err != nil {
		return err
	}

	var bar *progressBar
	if c.showProgress(opts) {
		total := 0
		for _, l := range lines {
			if !manifest.Classify(l).PassThrough() {
				total++
			}
		}
		bar = newProgressBar(ctx, c.Stderr, total)
	}

	prog := newProgress(c.Logger)
	w := manifest.NewRewriter(r, manifest.Options{
		OnDiagnostic: func(d manifest.Diagnostic) {
			printError(c.Stdout, "No version found for %s on %s: %s", d.Package, dateArg, d.Error())
		},
		OnProgress: func(done, total int, name string) {
			if bar != nil {
				bar.Update(done, total, name)
			}
		},
		Logger: c.Logger,
	})

	out, err := w.Rewrite(ctx, lines, date)
	if bar != nil {
		bar.Stop()
	}
	if err != nil {
		return err
	}
	rc := r.Cache()
	c.Logger.Debug("result cache", "entries", rc.Len(), "hits", rc.Hits(), "misses", rc.Misses())

	dest := opts.output
	if dest == "" {
		dest = defaultOutputPath(dateArg)
	}
	if err := manifest.WriteFile(dest, out); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Pinned %d of %d requirements", out.Pinned, out.Pinned+len(out.Diagnostics)))
	printSuccess(c.Stdout, "Updated requirements file saved to: %s", dest)
	if n := len(out.Diagnostics); n > 0 {
		printWarning(c.Stdout, "%d requirement(s) dropped", n)
	}
	printFile(c.Stdout, dest)
	return nil
}

// isManifest reports whether target names an existing regular file.
func isManifest(target string) bool {
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// defaultOutputPath names the rewritten manifest after the date exactly as
// the user wrote it, with path separators and spaces replaced.
func defaultOutputPath(dateArg string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", " ", "-")
	return "requirements_" + r.Replace(strings.TrimSpace(dateArg)) + ".txt"
}

// showProgress reports whether animated progress should be drawn on stderr.
func (c *CLI) showProgress(opts pinOpts) bool {
	if opts.noProgress {
		return false
	}
	f, ok := c.Stderr.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
