package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"
)

// moduleCache memoizes parsed module sources keyed by content hash, so a
// file imported from several places is parsed once per interpreter.
type moduleCache struct {
	entries sync.Map // map[string]*moduleEntry
}

// moduleEntry tracks the parse state for one source.
type moduleEntry struct {
	once sync.Once
	prog *Program
	err  error
}

func sourceKey(source string) string {
	return strconv.FormatUint(xxh3.Hash([]byte(source)), 36)
}

// parse returns the Program for source, parsing it on first use.
func (c *moduleCache) parse(
	ctx context.Context,
	cfg config,
	source string,
) (*Program, error) {
	key := sourceKey(source)

	v, loaded := c.entries.LoadOrStore(key, new(moduleEntry))
	entry := v.(*moduleEntry)

	entry.once.Do(func() {
		entry.prog, entry.err = parse(ctx, source, cfg.logger)
	})

	cfg.logger.TraceContext(ctx, "module cache",
		slog.String("key", key),
		slog.Bool("hit", loaded),
	)

	return entry.prog, entry.err
}
