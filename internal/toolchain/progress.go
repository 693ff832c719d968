package toolchain

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"trackprep/internal/logging"
)

type progressReporter interface {
	io.Writer
	Finish()
}

func (m *Manager) newProgress(total int64) progressReporter {
	if isTerminal(m.progressOut) {
		out := m.progressOut
		bar := progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription("Downloading FFmpeg"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(out) }),
		)
		return barProgress{bar: bar}
	}
	return &logProgress{
		logger:  m.logger,
		total:   total,
		sampler: logging.NewProgressSampler(10),
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type barProgress struct {
	bar *progressbar.ProgressBar
}

func (p barProgress) Write(b []byte) (int, error) {
	return p.bar.Write(b)
}

func (p barProgress) Finish() {
	_ = p.bar.Finish()
}

// logProgress reports download progress through the logger when no terminal
// is attached, sampled to one line per 10%.
type logProgress struct {
	logger  *slog.Logger
	total   int64
	written int64
	sampler *logging.ProgressSampler
}

func (p *logProgress) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.total <= 0 {
		return len(b), nil
	}
	percent := float64(p.written) / float64(p.total) * 100
	if p.sampler.ShouldLog(percent) {
		p.logger.Info("downloading ffmpeg",
			logging.String("progress", fmt.Sprintf("%s of %s", humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))),
			logging.Int("percent", int(percent)),
		)
	}
	return len(b), nil
}

func (p *logProgress) Finish() {}
