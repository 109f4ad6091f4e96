package squire

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

const (
	defaultReadChunkSize = 4096
	defaultLineChunkSize = 128
)

// Config controls where scrolls are opened and how they are read.
type Config struct {
	// Root is the directory relative paths resolve against. Ignored when FS
	// is set.
	Root string
	// FS is the filesystem scrolls are opened on. Defaults to the host
	// filesystem rooted at Root, in which case absolute paths are opened
	// where they point. A custom FS receives every path, absolute or not.
	FS            billy.Filesystem
	Logger        *slog.Logger
	ReadChunkSize int
	LineChunkSize int
}

// Engine owns the kingdoms visible to scripts and the filesystem their
// scrolls live on.
type Engine struct {
	config   Config
	fs       billy.Filesystem
	host     billy.Filesystem
	logger   *slog.Logger
	kingdoms map[string]*Kingdom
}

// NewEngine constructs an Engine with sane defaults and registers the IO
// kingdom.
func NewEngine(cfg Config) (*Engine, error) {
	var host billy.Filesystem
	if cfg.ReadChunkSize <= 0 {
		cfg.ReadChunkSize = defaultReadChunkSize
	}
	if cfg.LineChunkSize <= 0 {
		cfg.LineChunkSize = defaultLineChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.FS == nil {
		root := cfg.Root
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("squire: resolve working directory: %w", err)
			}
			root = wd
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("squire: resolve root %q: %w", root, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("squire: access root %q: %w", abs, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("squire: root %q is not a directory", abs)
		}
		cfg.Root = abs
		cfg.FS = osfs.New(abs)
		host = osfs.New(string(filepath.Separator))
	}

	engine := &Engine{
		config:   cfg,
		fs:       cfg.FS,
		host:     host,
		logger:   cfg.Logger,
		kingdoms: make(map[string]*Kingdom),
	}
	if err := engine.RegisterKingdom(newIOKingdom()); err != nil {
		return nil, err
	}
	return engine, nil
}

// RegisterKingdom exposes a namespace to scripts under its name.
func (e *Engine) RegisterKingdom(k *Kingdom) error {
	if k == nil || k.Name == "" {
		return fmt.Errorf("squire: kingdom name must be non-empty")
	}
	if _, exists := e.kingdoms[k.Name]; exists {
		return fmt.Errorf("squire: kingdom %s already registered", k.Name)
	}
	e.kingdoms[k.Name] = k
	return nil
}

func (e *Engine) Kingdom(name string) (*Kingdom, bool) {
	k, ok := e.kingdoms[name]
	return k, ok
}

// Kingdoms returns the registered kingdom names in sorted order.
func (e *Engine) Kingdoms() []string {
	names := make([]string, 0, len(e.kingdoms))
	for name := range e.kingdoms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) Root() string {
	return e.fs.Root()
}

// Invoke calls a journey with the given arguments. Handles opened by the
// call belong to the caller, who must Close or Deallocate them.
func (e *Engine) Invoke(ctx context.Context, journey *Journey, args Args) (Value, error) {
	return e.invoke(ctx, nil, journey, args)
}
