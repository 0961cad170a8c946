package link

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dodot-firefox/pkg/errors"
	"github.com/arthur-debert/dodot-firefox/pkg/logging"
	"github.com/arthur-debert/dodot-firefox/pkg/paths"
	"github.com/arthur-debert/dodot-firefox/pkg/plugin"
	"github.com/arthur-debert/dodot-firefox/pkg/types"
	"github.com/rs/zerolog"
)

// Directive is the directive name handled by this package.
const Directive = "link"

func init() {
	plugin.MustRegister(Directive, New)
}

// Plugin creates symlinks.
type Plugin struct {
	ctx      *plugin.Context
	fs       types.FS
	expander paths.Expander
	logger   zerolog.Logger
}

// New returns the link plugin for ctx.
func New(ctx *plugin.Context) plugin.Plugin {
	return NewWithExpander(ctx, paths.DefaultExpander())
}

// NewWithExpander returns the link plugin with an explicit path expander.
func NewWithExpander(ctx *plugin.Context, expander paths.Expander) *Plugin {
	return &Plugin{
		ctx:      ctx,
		fs:       ctx.Filesystem(),
		expander: expander,
		logger:   logging.GetLogger("link"),
	}
}

func (p *Plugin) CanHandle(directive string) bool {
	return directive == Directive
}

// Handle links every destination in data. It reports false if any link is
// not in place afterwards; per-link failures are logged, not returned.
func (p *Plugin) Handle(directive string, data plugin.Data) (bool, error) {
	if !p.CanHandle(directive) {
		return false, errors.Newf(errors.ErrInvalidInput,
			"the link plugin does not handle the '%s' directive", directive)
	}

	destinations := make([]string, 0, len(data))
	for destination := range data {
		destinations = append(destinations, destination)
	}
	sort.Strings(destinations)

	success := true
	for _, destination := range destinations {
		if err := p.link(destination, data[destination]); err != nil {
			p.logger.Error().Err(err).Str("destination", destination).Msg("Link failed")
			success = false
		}
	}

	if success {
		p.logger.Info().Int("links", len(destinations)).Msg("All links have been set up")
	} else {
		p.logger.Error().Msg("Some links were not successfully set up")
	}
	return success, nil
}

type action int

const (
	actionNone action = iota
	actionCreate
	actionReplace
)

func (p *Plugin) link(rawDestination string, value any) error {
	src, unused, err := DecodeSource(value, p.ctx.DefaultsFor(Directive))
	if err != nil {
		return err
	}
	if len(unused) > 0 {
		p.logger.Debug().Strs("options", unused).Str("destination", rawDestination).Msg("Ignoring unknown link options")
	}

	destination := p.expander.Expand(rawDestination)
	if src.Path == "" {
		src.Path = strings.TrimLeft(filepath.Base(destination), ".")
	}
	source := p.expander.Expand(src.Path)
	if !filepath.IsAbs(source) && p.ctx.BaseDirectory != "" {
		source = filepath.Join(p.ctx.BaseDirectory, source)
	}

	if _, err := p.fs.Stat(source); err != nil && !src.IgnoreMissing {
		return errors.Wrapf(err, errors.ErrNotFound, "nonexistent source %s -> %s", destination, source)
	}

	target := source
	if src.Relative {
		rel, err := filepath.Rel(filepath.Dir(destination), source)
		if err != nil {
			return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot make %s relative to %s", source, destination)
		}
		target = rel
	}

	act, err := p.plan(destination, target, src)
	if err != nil {
		return err
	}
	if act == actionNone {
		p.logger.Debug().Str("destination", destination).Str("source", target).Msg("Link exists")
		return nil
	}

	parent := filepath.Dir(destination)
	_, parentErr := p.fs.Stat(parent)
	if parentErr != nil && !src.Create {
		return errors.Wrapf(parentErr, errors.ErrDirCreate, "parent directory %s does not exist", parent)
	}

	if p.ctx.DryRun {
		p.logger.Info().Str("destination", destination).Str("source", target).Msg("Would create link")
		return nil
	}

	if act == actionReplace {
		if err := p.fs.RemoveAll(destination); err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", destination)
		}
	}

	if parentErr != nil {
		if err := p.fs.MkdirAll(parent, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", parent)
		}
		p.logger.Debug().Str("directory", parent).Msg("Created directory")
	}

	if err := p.fs.Symlink(target, destination); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s -> %s", destination, target)
	}

	p.logger.Info().Str("destination", destination).Str("source", target).Msg("Creating link")
	return nil
}

// plan decides what to do with whatever already sits at destination.
func (p *Plugin) plan(destination, target string, src Source) (action, error) {
	info, err := p.fs.Lstat(destination)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return actionCreate, nil
	case err != nil:
		return actionNone, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", destination)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		current, err := p.fs.Readlink(destination)
		if err != nil {
			return actionNone, errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", destination)
		}
		if filepath.Clean(current) == filepath.Clean(target) {
			return actionNone, nil
		}
		if src.Relink || src.Force {
			return actionReplace, nil
		}
		return actionNone, errors.Newf(errors.ErrSymlinkExists, "incorrect link %s -> %s", destination, current)
	}

	if src.Force {
		return actionReplace, nil
	}
	return actionNone, errors.Newf(errors.ErrSymlinkExists,
		"%s already exists but is a regular file or directory", destination)
}
