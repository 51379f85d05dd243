// Package convert hands an assembled issue tree to calibre's
// ebook-convert to produce the distributable e-book.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/gaurav-prasanna/lmdpipe/core/issue"
)

// DefaultBinary is the conversion tool looked up on PATH.
const DefaultBinary = "ebook-convert"

// Job describes one conversion.
type Job struct {
	Binary string
	Source string // index page of the assembled tree
	Target string
	Cover  string
}

// NewJob builds the conversion of the tree at src for the issue published
// on date, writing lmd<YYYYMMDD>.epub into outDir.
func NewJob(binary, src, outDir string, date time.Time) Job {
	if binary == "" {
		binary = DefaultBinary
	}
	return Job{
		Binary: binary,
		Source: src,
		Target: filepath.Join(outDir, TargetName(date, ".epub")),
		Cover:  issue.CoverURL(date),
	}
}

// TargetName returns the output file name of the issue published on date.
func TargetName(date time.Time, ext string) string {
	return "lmd" + issue.FileDate(date) + ext
}

// Args returns the command line passed to the conversion tool.
func (j Job) Args() []string {
	return []string{
		j.Source,
		j.Target,
		"--cover=" + j.Cover,
		"--chapter-mark=none",
		"--dont-split-on-page-breaks",
		"--page-breaks-before", "/",
	}
}

// Run executes the job, streaming the tool's combined output to w line by line.
func (j Job) Run(ctx context.Context, w io.Writer) error {
	cmd := exec.CommandContext(ctx, j.Binary, j.Args()...)
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return fmt.Errorf("starting %s: %w", j.Binary, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(pr)
		for scanner.Scan() {
			fmt.Fprintln(w, scanner.Text())
		}
		// Drain so the tool never blocks on a full pipe.
		_, _ = io.Copy(io.Discard, pr)
	}()

	err := cmd.Wait()
	pw.Close()
	<-done
	if err != nil {
		return fmt.Errorf("running %s: %w", j.Binary, err)
	}
	return nil
}
