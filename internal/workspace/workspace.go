package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"glyphsmith/internal/logging"
	"glyphsmith/internal/services"
)

const (
	// DirPrefix names every job directory.
	DirPrefix = "glyphsmith-job-"
	// LockFileName is the advisory lock guarding the temp root.
	LockFileName = ".glyphsmith.lock"

	defaultRetryDelay = 200 * time.Millisecond
)

// Manager creates and cleans job directories under one root.
type Manager struct {
	root       string
	logger     *slog.Logger
	retryDelay time.Duration
}

// Option customizes a Manager.
type Option func(*Manager)

// WithRetryDelay sets how often Create polls a held lock.
func WithRetryDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.retryDelay = d
		}
	}
}

// NewManager returns a manager rooted at root.
func NewManager(root string, logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		root:       strings.TrimSpace(root),
		logger:     logging.NewComponentLogger(logger, "workspace"),
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the directory job directories are created under.
func (m *Manager) Root() string {
	return m.root
}

// Dir is one job's working directory.
type Dir struct {
	ID   string
	Path string

	lock   *flock.Flock
	logger *slog.Logger
	once   sync.Once
	err    error
}

// Create waits for the root lock, removes orphaned job directories, and
// creates a fresh one. It blocks until the lock is free or ctx ends.
func (m *Manager) Create(ctx context.Context) (*Dir, error) {
	lock, err := m.acquire(ctx)
	if err != nil {
		return nil, err
	}

	m.removeOrphans(ctx)

	id := uuid.NewString()
	path := filepath.Join(m.root, DirPrefix+id)
	if err := os.Mkdir(path, 0o700); err != nil {
		_ = lock.Unlock()
		return nil, services.Wrap(services.ErrConfiguration, "workspace", "Create working directory",
			"check temp_root permissions", err)
	}

	m.logger.Debug("working directory created",
		logging.Path("path", path),
		logging.Event("workspace_created"),
	)
	return &Dir{ID: id, Path: path, lock: lock, logger: m.logger}, nil
}

// Remove deletes the directory tree and releases the root lock. Calling it
// more than once returns the first result.
func (d *Dir) Remove() error {
	if d == nil {
		return nil
	}
	d.once.Do(func() {
		if err := os.RemoveAll(d.Path); err != nil {
			d.err = services.Wrap(services.ErrCleanup, "workspace", "Remove working directory", d.Path, err)
		}
		if d.lock != nil {
			if err := d.lock.Unlock(); err != nil && d.err == nil {
				d.err = services.Wrap(services.ErrCleanup, "workspace", "Release lock", "", err)
			}
		}
		if d.err != nil {
			d.logger.Debug("working directory cleanup failed",
				logging.Path("path", d.Path),
				logging.Error(d.err),
				logging.Event("workspace_cleanup_failed"),
			)
			return
		}
		d.logger.Debug("working directory removed",
			logging.Path("path", d.Path),
			logging.Event("workspace_removed"),
		)
	})
	return d.err
}

// CleanResult contains the outcome of a cleanup pass.
type CleanResult struct {
	Removed []DirInfo
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// Clean removes every job directory under the root. It waits for the lock
// like Create does, so it never removes the directory of a running job.
func (m *Manager) Clean(ctx context.Context) (CleanResult, error) {
	if _, err := os.Stat(m.root); os.IsNotExist(err) {
		return CleanResult{}, nil
	}
	lock, err := m.acquire(ctx)
	if err != nil {
		return CleanResult{}, err
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return m.removeOrphans(ctx), nil
}

func (m *Manager) acquire(ctx context.Context) (*flock.Flock, error) {
	if m.root == "" {
		return nil, services.Wrap(services.ErrConfiguration, "workspace", "Acquire lock", "temp_root is not set", nil)
	}
	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workspace", "Create temp root",
			"check temp_root permissions", err)
	}

	lockPath := filepath.Join(m.root, LockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "workspace", "Acquire lock", lockPath, err)
	}
	if ok {
		return lock, nil
	}

	m.logger.Info("waiting for another glyphsmith job to finish",
		logging.String("lock", lockPath),
		logging.Event("workspace_lock_wait"),
	)
	ok, err = lock.TryLockContext(ctx, m.retryDelay)
	if err != nil {
		return nil, fmt.Errorf("wait for workspace lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("wait for workspace lock: %s still held", lockPath)
	}
	return lock, nil
}

// removeOrphans must be called with the root lock held.
func (m *Manager) removeOrphans(ctx context.Context) CleanResult {
	result := CleanResult{}
	dirs, err := m.List()
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: m.root, Error: err})
		return result
	}

	for _, dir := range dirs {
		if ctx.Err() != nil {
			break
		}
		if err := os.RemoveAll(dir.Path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir.Path, Error: err})
			logging.WarnWithContext(m.logger, "failed to remove orphaned working directory", "workspace_cleanup_failed",
				logging.Path("path", dir.Path),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check temp_root permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, dir)
		m.logger.Info("removed orphaned working directory",
			logging.Path("path", dir.Path),
			logging.Duration("age", time.Since(dir.ModTime)),
			logging.Event("workspace_orphan_removed"),
		)
	}
	return result
}

// DirInfo contains metadata about a job directory.
type DirInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// List returns the job directories currently under the root.
func (m *Manager) List() ([]DirInfo, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []DirInfo
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), DirPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		dirPath := filepath.Join(m.root, entry.Name())
		size, _ := dirSize(dirPath)
		dirs = append(dirs, DirInfo{
			Name:    entry.Name(),
			Path:    dirPath,
			ModTime: info.ModTime(),
			Size:    size,
		})
	}
	return dirs, nil
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
