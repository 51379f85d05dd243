// Package cmd: fetch command.
// It orchestrates one issue: compute the issue date, assemble the page
// tree in a scratch workspace, then convert or export it.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/gaurav-prasanna/lmdpipe/core"
	"github.com/gaurav-prasanna/lmdpipe/core/assemble"
	"github.com/gaurav-prasanna/lmdpipe/core/convert"
	"github.com/gaurav-prasanna/lmdpipe/core/issue"
	"github.com/gaurav-prasanna/lmdpipe/core/normalize"
	"github.com/gaurav-prasanna/lmdpipe/core/output"
	"github.com/gaurav-prasanna/lmdpipe/core/render"
	"github.com/gaurav-prasanna/lmdpipe/core/workspace"
)

// Output formats.
const (
	formatEPUB     = "epub"
	formatXHTML    = "xhtml"
	formatMarkdown = "markdown"
	formatPDF      = "pdf"
	formatJSON     = "json"
)

// Flag variables.
var (
	flagYear      int
	flagMonth     int
	flagLocal     bool
	flagOutputDir string
	flagFormat    string
	flagLatest    bool
)

// now is replaced in tests.
var now = time.Now

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch an issue and build an e-book from it",
	Long: `Fetch computes the publication date of the requested issue, downloads its
table of contents and every article, and converts the result.

Without --year and --month the issue of the current month is fetched. An issue
that has not been published yet is reported with its expected date; --latest
falls back to the most recent published issue instead.

Examples:
  lmdpipe fetch
  lmdpipe fetch -y 2016 -m 3
  lmdpipe fetch --latest --format markdown -o ./out
  lmdpipe fetch -l --format xhtml`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntVarP(&flagYear, "year", "y", 0, "Four digit year (default: current year)")
	fetchCmd.Flags().IntVarP(&flagMonth, "month", "m", 0, "Month number 1-12 (default: current month)")
	fetchCmd.Flags().BoolVarP(&flagLocal, "local", "l", false, "Read pages from the local mirror")
	fetchCmd.Flags().StringVarP(&flagOutputDir, "output_dir", "o", "", "Output directory (default: output_dir from config, else current directory)")
	fetchCmd.Flags().StringVar(&flagFormat, "format", formatEPUB, "Output format: epub, xhtml, markdown, pdf, json")
	fetchCmd.Flags().BoolVar(&flagLatest, "latest", false, "Fetch the latest published issue if the requested one is not out yet")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	if err := validateFetchFlags(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	locale := issue.ParseLocale(cfg.Locale)

	today := now()
	date := issue.IssueDate(flagYear, time.Month(flagMonth), today)
	if issue.IsFuture(date, today) {
		fmt.Fprintf(out, "Expected publication date: %s\n", issue.FormatDate(date, issue.LayoutShort, locale))
		if !flagLatest {
			return nil
		}
		date = issue.CurrentIssueDate(today)
		fmt.Fprintf(out, "Fetching latest issue of %s instead\n", issue.FormatDate(date, issue.LayoutLong, locale))
	}

	outDir := flagOutputDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	tpl, err := templates()
	if err != nil {
		return err
	}

	ws, err := workspace.New(cfg.WorkDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("workspace cleanup failed", "dir", ws.Dir, "error", err)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	asm := assemble.New(tpl, logger)
	res, err := asm.Assemble(ctx, ws.Dir, issue.PathDate(date), source(flagLocal))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Assembled %d pages (%s)\n", len(res.Pages), humanize.Bytes(uint64(res.Bytes)))

	return deliver(ctx, out, ws, res, outDir, locale)
}

// deliver turns an assembled tree into the requested output format.
func deliver(ctx context.Context, out io.Writer, ws *workspace.Workspace, res *assemble.Result, outDir string, locale language.Tag) error {
	date := res.Issue.Date
	switch flagFormat {
	case formatEPUB:
		if outDir == "" {
			outDir = "."
		}
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		job := convert.NewJob(cfg.EbookConvert, ws.Path(assemble.IndexFile), outDir, date)
		if err := job.Run(ctx, out); err != nil {
			return err
		}
		printWritten(out, job.Target)
		return nil

	case formatXHTML:
		w, err := output.New(filepath.Join(outDir, "lmd"+issue.FileDate(date)))
		if err != nil {
			return err
		}
		if err := w.WriteFS(".", os.DirFS(ws.Dir)); err != nil {
			return fmt.Errorf("copying issue tree: %w", err)
		}
		fmt.Fprintf(out, "✓ Written: %s (%s)\n", w.OutputDir, humanize.Bytes(uint64(w.BytesWritten())))
		return nil
	}

	exp, err := exporter(locale)
	if err != nil {
		return err
	}
	data, err := exp.Export(res.Issue)
	if err != nil {
		return fmt.Errorf("export %s: %w", flagFormat, err)
	}
	w, err := output.New(outDir)
	if err != nil {
		return err
	}
	path, err := w.Write(convert.TargetName(date, exp.Extension()), data)
	if err != nil {
		return err
	}
	printWritten(out, path)
	return nil
}

func printWritten(out io.Writer, path string) {
	size := ""
	if info, err := os.Stat(path); err == nil {
		size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
	}
	fmt.Fprintf(out, "✓ Written: %s%s\n", path, size)
}

// validateFetchFlags checks the date and format flags.
func validateFetchFlags() error {
	if flagMonth < 0 || flagMonth > 12 {
		return fmt.Errorf("month must be between 1 and 12 (got %d)", flagMonth)
	}
	if flagYear < 0 {
		return fmt.Errorf("year must be positive (got %d)", flagYear)
	}
	switch flagFormat {
	case formatEPUB, formatXHTML, formatMarkdown, formatPDF, formatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use epub, xhtml, markdown, pdf or json", flagFormat)
	}
}

// exporter creates the whole-issue exporter for the selected format.
func exporter(locale language.Tag) (core.Exporter, error) {
	switch flagFormat {
	case formatMarkdown:
		return render.NewMarkdownRenderer(normalize.New(), locale), nil
	case formatJSON:
		return render.NewJSONRenderer(), nil
	case formatPDF:
		return render.NewPDFRenderer(locale), nil
	default:
		return nil, fmt.Errorf("no exporter for format %q", flagFormat)
	}
}
