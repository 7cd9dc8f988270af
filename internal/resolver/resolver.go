// Package resolver turns a user supplied repository reference (a local path,
// the name of a cached repository, or a URL) into an open repository.
//
// References are tried in a fixed order, cheapest first:
//
//	http(s) URL:    open <cache>/<last URL segment>, else clone the URL there
//	anything else:  open the path as given, else open <cache>/<reference>
//
// Only the last attempt of a chain can fail the resolution. Earlier failures
// just move on to the next attempt.
package resolver

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/acdenisSK/release-maker/internal/git"
)

// Locator maps repository names and URLs to cache paths. *cache.Cache
// satisfies it.
type Locator interface {
	RepositoryPath(name string) string
	RepositoryPathURL(url string) (string, error)
}

// Option configures Resolve.
type Option func(*options)

type options struct {
	logger logrus.FieldLogger
}

// WithLogger sets the logger that records each attempt.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// step is one attempt of the chain. Steps that hit the network are announced
// at info level.
type step struct {
	name     string
	announce bool
	target   func() string
	attempt  func(ctx context.Context, target string) (git.Repository, error)
}

// IsRemote reports whether reference is treated as a URL to clone.
func IsRemote(reference string) bool {
	return strings.HasPrefix(reference, "http://") || strings.HasPrefix(reference, "https://")
}

// Resolve opens the repository designated by reference using engine, falling
// back to the cache and, for URLs, to a fresh clone into the cache.
//
// The error of the final attempt is returned unchanged. For URLs, an error
// deriving the cache path is returned before any attempt is made.
func Resolve(ctx context.Context, engine git.Engine, locator Locator, reference string, opts ...Option) (git.Repository, error) {
	o := &options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(o)
	}

	steps, err := chain(engine, locator, reference)
	if err != nil {
		return nil, err
	}

	log := o.logger.WithFields(logrus.Fields{
		"reference": reference,
		"engine":    engine.Name(),
	})

	var lastErr error
	for _, s := range steps {
		if lastErr != nil {
			log.WithError(lastErr).Debugf("falling back to %s", s.name)
		}

		target := s.target()
		entry := log.WithField("target", target)
		if s.announce {
			entry.Infof("%s %s", s.name, reference)
		} else {
			entry.Debugf("trying %s", s.name)
		}

		repo, err := s.attempt(ctx, target)
		if err == nil {
			return repo, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

// chain builds the ordered attempts for reference. Cache paths of local
// references are only derived when their step is reached.
func chain(engine git.Engine, locator Locator, reference string) ([]step, error) {
	open := func(ctx context.Context, target string) (git.Repository, error) {
		return engine.Open(ctx, target)
	}

	if IsRemote(reference) {
		cachePath, err := locator.RepositoryPathURL(reference)
		if err != nil {
			return nil, err
		}
		cached := func() string { return cachePath }

		return []step{
			{name: "cached clone", target: cached, attempt: open},
			{
				name:     "cloning",
				announce: true,
				target:   cached,
				attempt: func(ctx context.Context, target string) (git.Repository, error) {
					return engine.Clone(ctx, reference, target)
				},
			},
		}, nil
	}

	return []step{
		{name: "local path", target: func() string { return reference }, attempt: open},
		{name: "cached repository", target: func() string { return locator.RepositoryPath(reference) }, attempt: open},
	}, nil
}
