package palette

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Loader loads a color table once and hands out the same Palette for the
// rest of the process. There is no invalidation.
type Loader struct {
	path   string
	logger *log.Logger

	once    sync.Once
	palette *Palette
	err     error
}

// NewLoader returns a Loader for path. A nil logger discards warnings.
func NewLoader(path string, logger *log.Logger) *Loader {
	return &Loader{path: path, logger: logger}
}

// Path returns the color table location.
func (l *Loader) Path() string { return l.path }

// Get loads the table on first call and returns the cached result afterwards.
func (l *Loader) Get() (*Palette, error) {
	l.once.Do(func() {
		l.palette, l.err = Load(l.path)
		if l.err != nil || l.logger == nil {
			return
		}
		for _, name := range l.palette.Duplicates() {
			l.logger.Warn("duplicate theme name, later row wins", "theme", name, "file", l.path)
		}
		l.logger.Debug("palette loaded", "themes", l.palette.Len(), "file", l.path)
	})
	return l.palette, l.err
}
