package schema

import (
	"fmt"
	"sync"
)

type captureLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
	infos []string
}

func (c *captureLogger) Debugf(string, ...any)         {}
func (c *captureLogger) Debugw(string, map[string]any) {}
func (c *captureLogger) Infof(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infos = append(c.infos, fmt.Sprintf(format, args...))
}
func (c *captureLogger) Warnf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warns = append(c.warns, fmt.Sprintf(format, args...))
}
func (c *captureLogger) Errorf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}
