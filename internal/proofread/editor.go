package proofread

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/proofreader/internal/models"
	"github.com/lehigh-university-libraries/proofreader/internal/quality"
	"github.com/lehigh-university-libraries/proofreader/internal/resource"
	"github.com/lehigh-university-libraries/proofreader/internal/storage"
)

var (
	// ErrInvalidContent is returned for an edit whose content cannot be saved.
	ErrInvalidContent = errors.New("invalid page content")
	// ErrEditConflict is returned when the page changed since the edit started.
	ErrEditConflict = errors.New("edit conflict")
)

// Editor is the save gate for page edits
type Editor struct {
	resolver *resource.Resolver
	store    storage.PageStore
	machine  *quality.Machine

	now         func() time.Time
	newRevision func() string
}

func NewEditor(resolver *resource.Resolver, store storage.PageStore, machine *quality.Machine) *Editor {
	return &Editor{
		resolver:    resolver,
		store:       store,
		machine:     machine,
		now:         time.Now,
		newRevision: uuid.NewString,
	}
}

// Submit validates an edit and stores the new page content together with
// its quality state. Nothing is written when any check fails.
func (e *Editor) Submit(ctx context.Context, edit models.Edit) (*models.PageRecord, error) {
	res, err := resolvePage(ctx, e.resolver, edit.Title)
	if err != nil {
		return nil, err
	}
	title := pageTitle(res)

	current, err := e.store.Get(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to load page %q: %w", title, err)
	}
	old, currentRevision := quality.Initial(), ""
	if current != nil {
		old, currentRevision = current.Quality, current.RevisionID
	}

	if edit.BaseRevision != currentRevision {
		return nil, fmt.Errorf("%w: %s was edited since revision %q", ErrEditConflict, title, edit.BaseRevision)
	}

	if !edit.Level.Valid() {
		return nil, fmt.Errorf("%w: %w: %d", ErrInvalidContent, quality.ErrInvalidLevel, int(edit.Level))
	}

	state, err := e.machine.Apply(old, edit.Level, edit.User)
	if err != nil {
		return nil, err
	}

	record := &models.PageRecord{
		Title:      title,
		Header:     edit.Header,
		Body:       edit.Body,
		Footer:     edit.Footer,
		Quality:    state,
		RevisionID: e.newRevision(),
		UpdatedAt:  e.now().UTC(),
	}
	if err := e.store.Commit(ctx, record, currentRevision); err != nil {
		if errors.Is(err, storage.ErrRevisionMismatch) {
			return nil, fmt.Errorf("%w: %s", ErrEditConflict, title)
		}
		return nil, fmt.Errorf("failed to save page %q: %w", title, err)
	}

	slog.Info("Page saved", "title", title, "level", state.Level.String(), "user", edit.User.Name, "revision", record.RevisionID)
	return record, nil
}

// resolvePage resolves title to a single page of an existing scan.
func resolvePage(ctx context.Context, resolver *resource.Resolver, title string) (resource.Resolution, error) {
	res, err := resolver.ResolveForPage(ctx, title)
	if err != nil {
		return res, err
	}
	if res.NeedsExplicitPage() {
		return res, fmt.Errorf("%w: %q names a multi-page scan without a page", resource.ErrPageNumberNotFound, title)
	}
	if !res.InRange() {
		return res, fmt.Errorf("%w: page %d is beyond the %d pages of %s", resource.ErrPageNumberNotFound, res.Ordinal, res.Resource.Pages(), res.Resource.Name)
	}
	return res, nil
}

// pageTitle is the storage key of a resolved page: "<scan>/<ordinal>", or
// the scan name for single images.
func pageTitle(res resource.Resolution) string {
	if !res.Resource.MultiPage || !res.HasOrdinal() {
		return res.Resource.Name
	}
	return res.Resource.Name + "/" + strconv.Itoa(res.Ordinal)
}
