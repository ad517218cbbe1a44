package trigvk

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

// Loggers groups the info, warning and error streams used across the context.
type Loggers struct {
	Info  *log.Logger
	Warn  *log.Logger
	Error *log.Logger

	files []*os.File
}

// NewLoggers writes to info_log.txt, warn_log.txt and error_log.txt inside dir,
// or to stderr when dir is empty.
func NewLoggers(dir string) (*Loggers, error) {
	if dir == "" {
		return newLoggers(os.Stderr, os.Stderr, os.Stderr), nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}

	var files []*os.File
	open := func(name string) (*os.File, error) {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", name)
		}
		files = append(files, f)
		return f, nil
	}
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	info, err := open("info_log.txt")
	if err != nil {
		return nil, err
	}
	warn, err := open("warn_log.txt")
	if err != nil {
		closeAll()
		return nil, err
	}
	errf, err := open("error_log.txt")
	if err != nil {
		closeAll()
		return nil, err
	}

	l := newLoggers(info, warn, errf)
	l.files = files
	return l, nil
}

// DiscardLoggers drops everything. Used by tests.
func DiscardLoggers() *Loggers {
	return newLoggers(io.Discard, io.Discard, io.Discard)
}

func newLoggers(info, warn, errw io.Writer) *Loggers {
	return &Loggers{
		Info:  log.New(info, "INFO: ", logFlags),
		Warn:  log.New(warn, "WARNING: ", logFlags),
		Error: log.New(errw, "ERROR: ", logFlags),
	}
}

// Close closes any log files opened by NewLoggers.
func (l *Loggers) Close() error {
	var first error
	for _, f := range l.files {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	l.files = nil
	return first
}
