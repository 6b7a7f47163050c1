package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lehigh-university-libraries/proofreader/internal/catalog"
	"github.com/lehigh-university-libraries/proofreader/internal/lang"
	"github.com/lehigh-university-libraries/proofreader/internal/proofread"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
	"github.com/lehigh-university-libraries/proofreader/internal/storage"
)

var errNoScanSource = errors.New("no scan source configured: set catalog or api_url")

// app is the wiring built from the configuration for one command run.
type app struct {
	resolver  *resource.Resolver
	indexes   proofread.IndexLookup
	languages *lang.Registry
}

func (o *rootOptions) newApp() (*app, error) {
	var (
		repo    resource.Repository
		indexes proofread.IndexLookup
	)
	switch {
	case o.cfg.CatalogPath != "":
		c, err := catalog.Open(o.cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		slog.Debug("Loaded scan catalog", "path", o.cfg.CatalogPath, "records", c.Len())
		repo, indexes = c, c
	case o.cfg.APIURL != "":
		repo = catalog.NewClient(o.cfg.APIURL)
	default:
		return nil, errNoScanSource
	}

	languages, err := o.cfg.Languages()
	if err != nil {
		return nil, err
	}

	return &app{
		resolver:  resource.NewResolver(repo, o.cfg.ResolverOptions()...),
		indexes:   indexes,
		languages: languages,
	}, nil
}

// language returns code, or the configured default when code is empty.
func (a *app) language(o *rootOptions, code string) (lang.Language, error) {
	if code == "" {
		code = o.cfg.DefaultLanguage
	}
	return a.languages.Lookup(code)
}

func (o *rootOptions) openStore() (storage.PageStore, error) {
	return storage.Open(o.cfg.Store, o.cfg.StateDir, slog.Default())
}

func (o *rootOptions) newViewer(a *app, store storage.PageStore) *proofread.Viewer {
	return proofread.NewViewer(a.resolver, a.indexes, store, o.cfg.Machine(),
		proofread.WithCategories(o.cfg.Categories()),
		proofread.WithDefaultWidth(o.cfg.DefaultImageWidth),
	)
}
