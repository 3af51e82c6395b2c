// Package templates manages the template tree that configs include by name.
//
// Each template is a directory under the templates root. It may contain a
// config.json with the usual document keys, a files/ tree staged into the
// image, and custom-*.sh scripts run by the image builder.
package templates

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/firefly-engineering/openwrt-builder/internal/config"
	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

const (
	// FilesDir is the overlay tree inside a template directory.
	FilesDir = "files"

	customScriptPattern = "custom-*.sh"
	shellScriptPattern  = "*.sh"
)

var (
	customScriptGlob = glob.MustCompile(customScriptPattern)
	shellScriptGlob  = glob.MustCompile(shellScriptPattern)
)

// Template describes one template directory.
type Template struct {
	Name string
	Dir  string

	// Config is the template's own resolved config, nil without a config.json.
	Config *config.Config
}

// HasConfig reports whether the template has a config.json.
func (t *Template) HasConfig() bool {
	return t.Config != nil
}

// Store reads templates from a root directory.
type Store struct {
	root          string
	fs            system.FileSystem
	exec          system.CommandExecutor
	allowComments bool
}

// Option configures a Store.
type Option func(*Store)

// WithFileSystem sets the filesystem templates are read from.
func WithFileSystem(fs system.FileSystem) Option {
	return func(s *Store) { s.fs = fs }
}

// WithExecutor sets the executor used by Stage.
func WithExecutor(exec system.CommandExecutor) Option {
	return func(s *Store) { s.exec = exec }
}

// WithComments accepts JSONC template documents.
func WithComments(allow bool) Option {
	return func(s *Store) { s.allowComments = allow }
}

// NewStore creates a Store for the templates under root.
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		root: root,
		fs:   system.DefaultFS(),
		exec: system.DefaultExecutor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the templates root directory.
func (s *Store) Root() string {
	return s.root
}

// List returns the templates directly under the root, sorted by name.
// A non-empty pattern keeps only names matching the glob.
func (s *Store) List(pattern string) ([]*Template, error) {
	var match glob.Glob
	if pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.ValidationError(fmt.Sprintf("invalid pattern %q: %v", pattern, err))
		}
		match = g
	}

	if !s.fs.IsDir(s.root) {
		logging.Debug("templates root missing", "root", s.root)
		return []*Template{}, nil
	}

	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to read templates", err)
	}

	templates := make([]*Template, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if match != nil && !match.Match(entry.Name()) {
			continue
		}
		tmpl, err := s.load(entry.Name())
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	slices.SortFunc(templates, func(a, b *Template) int {
		return strings.Compare(a.Name, b.Name)
	})
	return templates, nil
}

// Get returns the named template. A template without a directory is a
// TemplateNotFound error.
func (s *Store) Get(name string) (*Template, error) {
	dir, err := config.TemplateDir(s.root, name)
	if err != nil {
		return nil, errors.Wrap(errors.ExitTemplateNotFound, "invalid template name", err)
	}
	if !s.fs.IsDir(dir) {
		return nil, errors.TemplateNotFound(name)
	}
	return s.load(name)
}

func (s *Store) load(name string) (*Template, error) {
	dir, err := config.TemplateDir(s.root, name)
	if err != nil {
		return nil, errors.Wrap(errors.ExitTemplateNotFound, "invalid template name", err)
	}

	cfg, err := config.LoadTemplate(name,
		config.WithTemplatesDir(s.root),
		config.WithFileSystem(s.fs),
		config.WithComments(s.allowComments),
	)
	if err != nil {
		return nil, err
	}
	return &Template{Name: name, Dir: dir, Config: cfg}, nil
}

// Stage copies the template's files/ tree and custom-*.sh scripts into dst
// and marks every shell script among them executable.
func (s *Store) Stage(ctx context.Context, name, dst string) error {
	if dst == "" {
		return errors.Precondition("destination path is required")
	}
	tmpl, err := s.Get(name)
	if err != nil {
		return err
	}

	target := strings.TrimSuffix(dst, "/")
	var executables []string

	filesDir := filepath.Join(tmpl.Dir, FilesDir)
	if s.fs.IsDir(filesDir) {
		scripts, err := s.findScripts(filesDir, "")
		if err != nil {
			return err
		}
		if err := s.run(ctx, "cp", "-r", filesDir, target+"/"); err != nil {
			return err
		}
		for _, rel := range scripts {
			executables = append(executables, path.Join(target, FilesDir, rel))
		}
	}

	entries, err := s.fs.ReadDir(tmpl.Dir)
	if err != nil {
		return errors.Wrap(errors.ExitGeneralError, "failed to read template", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !customScriptGlob.Match(entry.Name()) {
			continue
		}
		if err := s.run(ctx, "cp", filepath.Join(tmpl.Dir, entry.Name()), target+"/"); err != nil {
			return err
		}
		executables = append(executables, path.Join(target, entry.Name()))
	}

	if len(executables) == 0 {
		logging.Debug("template has no scripts to mark executable", "template", name)
		return nil
	}
	return s.run(ctx, "chmod", append([]string{"+x"}, executables...)...)
}

// findScripts walks dir and returns the *.sh files below it, relative to dir.
func (s *Store) findScripts(dir, rel string) ([]string, error) {
	entries, err := s.fs.ReadDir(filepath.Join(dir, rel))
	if err != nil {
		return nil, errors.Wrap(errors.ExitGeneralError, "failed to read template files", err)
	}

	var scripts []string
	for _, entry := range entries {
		p := path.Join(rel, entry.Name())
		if entry.IsDir() {
			sub, err := s.findScripts(dir, p)
			if err != nil {
				return nil, err
			}
			scripts = append(scripts, sub...)
			continue
		}
		if shellScriptGlob.Match(entry.Name()) {
			scripts = append(scripts, p)
		}
	}
	return scripts, nil
}

func (s *Store) run(ctx context.Context, name string, args ...string) error {
	if _, err := s.exec.Execute(ctx, name, args...); err != nil {
		return errors.CommandFailed(name, err)
	}
	return nil
}
