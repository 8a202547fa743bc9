// Package catalogue bundles the food-truck lessons and loads lesson sets from
// any fs.FS.
package catalogue

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"facette.io/natsort"
	"github.com/alitto/pond/v2"
	"github.com/amp-labs/lesson-engine/envutil"
	"github.com/amp-labs/lesson-engine/lesson"
	"github.com/amp-labs/lesson-engine/logger"
)

const defaultWorkerCount = 4

//go:embed lessons/*.yaml
var embedded embed.FS

var (
	// ErrNoLessons indicates a filesystem without any lesson files.
	ErrNoLessons = errors.New("no lesson files found")
	// ErrDuplicateLesson indicates two files declaring the same lesson ID.
	ErrDuplicateLesson = errors.New("duplicate lesson id")
)

// Catalogue is a validated, read-only set of lessons keyed by ID.
type Catalogue struct {
	lessons map[string]*lesson.Lesson
	ids     []string
}

var _ lesson.Loader = (*Catalogue)(nil)

// Option configures Load.
type Option func(*options)

type options struct {
	workers int
	dir     string
}

// WithWorkers sets how many files are parsed at once. It overrides the
// LESSON_WORKERS environment variable.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithDir reads lesson files from a subdirectory of the filesystem.
func WithDir(dir string) Option {
	return func(o *options) {
		o.dir = dir
	}
}

// Default loads the lessons bundled with the binary.
func Default(ctx context.Context) (*Catalogue, error) {
	return Load(ctx, embedded, WithDir("lessons"))
}

// Load parses and validates every .yaml or .yml file in fsys. Files are parsed
// concurrently; every failure is reported, joined, with its file name.
func Load(ctx context.Context, fsys fs.FS, opts ...Option) (*Catalogue, error) {
	o := options{
		workers: envutil.Int("LESSON_WORKERS",
			envutil.Default(defaultWorkerCount)).ValueOrElse(defaultWorkerCount),
		dir: ".",
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.workers <= 0 {
		o.workers = defaultWorkerCount
	}

	files, err := lessonFiles(fsys, o.dir)
	if err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoLessons, o.dir)
	}

	logger.Get(ctx).DebugContext(ctx, "Loading lesson catalogue", "files", len(files), "workers", o.workers)

	parsed, err := parseAll(ctx, fsys, files, o.workers)
	if err != nil {
		return nil, err
	}

	cat := &Catalogue{lessons: make(map[string]*lesson.Lesson, len(parsed))}

	var problems []error

	for i, l := range parsed {
		if _, dup := cat.lessons[l.ID]; dup {
			problems = append(problems, fmt.Errorf("%s: %w %q", files[i], ErrDuplicateLesson, l.ID))

			continue
		}

		cat.lessons[l.ID] = l
		cat.ids = append(cat.ids, l.ID)
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	natsort.Sort(cat.ids)

	logger.Get(ctx).DebugContext(ctx, "Loaded lesson catalogue", "lessons", cat.ids)

	return cat, nil
}

func lessonFiles(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read lesson directory %q: %w", dir, err)
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ext := strings.ToLower(path.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, path.Join(dir, e.Name()))
		}
	}

	return files, nil
}

// parseAll loads files on a bounded pool. The result is in file order.
func parseAll(ctx context.Context, fsys fs.FS, files []string, workers int) ([]*lesson.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pool := pond.NewPool(workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	parsed := make([]*lesson.Lesson, len(files))
	failures := make([]error, len(files))

	group := pool.NewGroup()

	for i, file := range files {
		group.Submit(func() {
			if err := ctx.Err(); err != nil {
				failures[i] = err

				return
			}

			l, err := lesson.LoadFromFS(fsys, file)
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", file, err)

				return
			}

			parsed[i] = l
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("lesson parsing interrupted: %w", err)
	}

	if err := errors.Join(failures...); err != nil {
		return nil, err
	}

	return parsed, nil
}

// IDs returns the lesson IDs in natural order.
func (c *Catalogue) IDs() []string {
	return slices.Clone(c.ids)
}

// Len returns the number of lessons.
func (c *Catalogue) Len() int {
	return len(c.ids)
}

// Get returns the lesson with the given ID.
func (c *Catalogue) Get(id string) (*lesson.Lesson, bool) {
	l, ok := c.lessons[id]

	return l, ok
}

// Lessons returns every lesson in ID order.
func (c *Catalogue) Lessons() []*lesson.Lesson {
	out := make([]*lesson.Lesson, len(c.ids))
	for i, id := range c.ids {
		out[i] = c.lessons[id]
	}

	return out
}

// LoadByName implements lesson.Loader.
func (c *Catalogue) LoadByName(name string) (*lesson.Lesson, error) {
	l, ok := c.lessons[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", lesson.ErrLessonNotFound, name)
	}

	return l, nil
}

// ListAvailable implements lesson.Loader.
func (c *Catalogue) ListAvailable() []string {
	return c.IDs()
}
