package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/firefly-engineering/openwrt-builder/internal/errors"
	"github.com/firefly-engineering/openwrt-builder/internal/listmerge"
	"github.com/firefly-engineering/openwrt-builder/internal/logging"
	"github.com/firefly-engineering/openwrt-builder/internal/system"
)

// document is the on-disk shape of a config file. Pointer scalars tell an
// absent key apart from an empty one.
type document struct {
	Name             *string  `json:"name"`
	Version          *string  `json:"version"`
	Arch             *string  `json:"arch"`
	Board            *string  `json:"board"`
	EnvFile          *string  `json:"env-file"`
	Includes         []string `json:"includes"`
	Packages         []string `json:"packages"`
	Files            []string `json:"files"`
	DisabledServices []string `json:"disabled_services"`
}

// LoadOption configures Load.
type LoadOption func(*loader)

// WithTemplatesDir sets the root that includes are resolved against.
func WithTemplatesDir(dir string) LoadOption {
	return func(l *loader) {
		l.templatesDir = dir
	}
}

// WithComments accepts JSONC documents: comments and trailing commas are
// stripped before parsing. Documents are plain JSON otherwise.
func WithComments(allow bool) LoadOption {
	return func(l *loader) {
		l.allowComments = allow
	}
}

// WithFileSystem sets the filesystem used to read config documents.
func WithFileSystem(fs system.FileSystem) LoadOption {
	return func(l *loader) {
		l.fs = fs
	}
}

type loader struct {
	fs            system.FileSystem
	templatesDir  string
	allowComments bool
	// chain holds the template directories being loaded, outermost first.
	chain []string
}

// Load builds a Config from the document at path.
//
// A blank path, or one that is not an existing file, yields Default().
// Scalars in the document replace the defaults. List channels are merged
// onto the defaults, then every template named in "includes" is loaded from
// the templates directory and the combined templates are merged in with
// their lists taking priority over the document's own.
//
// A document that cannot be parsed returns an error with exit code
// errors.ExitConfigParse. Missing templates are skipped.
func Load(path string, opts ...LoadOption) (*Config, error) {
	return newLoader(opts).load(path)
}

// LoadTemplate loads the named template from the templates directory the
// way an include sees it, with file entries rewritten relative to the
// template. It returns nil, nil when the template has no config document.
func LoadTemplate(name string, opts ...LoadOption) (*Config, error) {
	return newLoader(opts).loadTemplate(name)
}

func newLoader(opts []LoadOption) *loader {
	l := &loader{
		fs:           system.DefaultFS(),
		templatesDir: DefaultTemplatesDir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *loader) load(path string) (*Config, error) {
	cfg := Default()

	if path == "" || !l.isFile(path) {
		logging.Debug("config not found, using defaults", "path", path)
		return cfg, nil
	}

	doc, err := l.readDocument(path)
	if err != nil {
		return nil, err
	}

	if doc.Name != nil {
		cfg.name = *doc.Name
	}
	if doc.Version != nil {
		cfg.version = *doc.Version
	}
	if doc.Arch != nil {
		cfg.arch = *doc.Arch
	}
	if doc.Board != nil {
		cfg.board = *doc.Board
	}
	if doc.EnvFile != nil {
		cfg.envFile = *doc.EnvFile
	}

	if doc.Packages != nil {
		cfg.packages = listmerge.MergeNegatable(cfg.packages, doc.Packages)
	}
	if doc.Files != nil {
		cfg.files = listmerge.Merge(cfg.files, doc.Files)
	}
	if doc.DisabledServices != nil {
		cfg.disabledServices = listmerge.Merge(cfg.disabledServices, doc.DisabledServices)
	}

	if len(doc.Includes) == 0 {
		return cfg, nil
	}

	templates := Default()
	for _, name := range doc.Includes {
		tmpl, err := l.loadTemplate(name)
		if err != nil {
			return nil, err
		}
		if tmpl == nil {
			continue
		}
		templates.MergeInto(tmpl, false)
		logging.Debug("merged template", "template", name, "packages", templates.packages)
	}

	cfg.MergeInto(templates, true)
	logging.Debug("resolved config", "path", path, "packages", cfg.packages)

	return cfg, nil
}

// loadTemplate loads the named template with its files rewritten relative
// to the template directory. It returns nil when the template or its config
// document does not exist.
func (l *loader) loadTemplate(name string) (*Config, error) {
	dir, err := TemplateDir(l.templatesDir, name)
	if err != nil {
		return nil, errors.Wrap(errors.ExitConfigParse, "invalid include", err)
	}

	if slices.Contains(l.chain, dir) {
		return nil, errors.New(errors.ExitConfigParse,
			fmt.Sprintf("include cycle: template %q includes itself", name))
	}

	configPath := filepath.Join(dir, TemplateConfigName)
	if !l.fs.Exists(configPath) {
		logging.Debug("template has no config, skipping", "template", name, "path", configPath)
		return nil, nil
	}

	l.chain = append(l.chain, dir)
	tmpl, err := l.load(configPath)
	l.chain = l.chain[:len(l.chain)-1]
	if err != nil {
		return nil, err
	}

	tmpl.files = rewriteFiles(tmpl.files, l.templatesDir, dir)
	return tmpl, nil
}

func (l *loader) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (l *loader) readDocument(path string) (*document, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	if err := ValidateDocument(data, l.allowComments); err != nil {
		return nil, errors.ConfigParse(path, err)
	}

	var doc document
	if err := json.Unmarshal(documentJSON(data, l.allowComments), &doc); err != nil {
		return nil, errors.ConfigParse(path, err)
	}
	return &doc, nil
}

// rewriteFiles makes template file entries relative to the template's own
// directory. Entries already under the templates root, and absolute paths,
// are kept. A trailing separator on an entry survives the rewrite.
func rewriteFiles(files []string, root, templateDir string) []string {
	rootPrefix := filepath.Clean(root)

	rewritten := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasPrefix(f, rootPrefix) || filepath.IsAbs(f) {
			rewritten = append(rewritten, f)
			continue
		}

		p := filepath.Join(templateDir, f)
		if strings.HasSuffix(f, string(filepath.Separator)) && !strings.HasSuffix(p, string(filepath.Separator)) {
			p += string(filepath.Separator)
		}
		rewritten = append(rewritten, p)
	}
	return rewritten
}
