package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gruis/nsetrack/tracker"
)

// FileWriteError wraps any failure creating or writing a summary file
var FileWriteError = errors.New("unable to write summary file")

const (
	Header      = "Summary of NSE Indices:"
	NoDataYet   = "No data is available due to possible error."
	filePattern = "nse_indices_summary_%s.txt"
	fileStamp   = "20060102_150405"
)

// Reporter renders the tracker's latest result. Console and file output share
// the same lines.
type Reporter struct {
	Tracker   *tracker.Tracker
	OutputDir string
	Now       func() time.Time
	Logger    *log.Logger
}

func New(r Reporter) *Reporter {
	if r.OutputDir == "" {
		r.OutputDir = "."
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.Logger == nil {
		r.Logger = r.Tracker.Logger
	}
	return &r
}

// Lines renders one line per index in table order. An index missing from the
// cached result gets a fresh fallback lookup before it is reported missing.
func (r *Reporter) Lines(ctx context.Context) []string {
	res, _ := r.Tracker.Current()
	lines := make([]string, 0, len(r.Tracker.Indices))
	for _, idx := range r.Tracker.Indices {
		rec := res.Record(idx)
		if rec == nil {
			rec, _ = r.Tracker.FallbackQuote(ctx, idx.Name)
		}
		if rec == nil {
			lines = append(lines, fmt.Sprintf("No data available for %s.", idx.Name))
			continue
		}
		lines = append(lines, rec.Line(idx.Name))
	}
	return lines
}

// Summary writes the console summary to w
func (r *Reporter) Summary(ctx context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, ok := r.Tracker.Current(); !ok {
		fmt.Fprintln(bw, NoDataYet)
	}
	fmt.Fprintln(bw, Header)
	for _, line := range r.Lines(ctx) {
		fmt.Fprintln(bw, line)
	}
	return bw.Flush()
}

// DefaultFilename is the timestamped name used when none is given
func (r *Reporter) DefaultFilename() string {
	return fmt.Sprintf(filePattern, r.Now().Format(fileStamp))
}

// Save writes the summary lines to filename, overwriting it. An empty
// filename writes a timestamped file in OutputDir. The written path is
// returned.
func (r *Reporter) Save(ctx context.Context, filename string) (string, error) {
	path := filename
	if path == "" {
		path = filepath.Join(r.OutputDir, r.DefaultFilename())
	}
	logger := r.Logger.WithField("file", path)

	if err := writeLines(path, r.Lines(ctx)); err != nil {
		err = fmt.Errorf("%w: %s: %w", FileWriteError, path, err)
		logger.WithError(err).Errorf("Error saving summary to %s", path)
		return "", err
	}

	logger.Infof("Summary saved to %s", path)
	return path, nil
}

func writeLines(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err = fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return w.Flush()
}
