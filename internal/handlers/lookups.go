package handlers

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gotera/internal/models"
	"gotera/internal/repository"
	"gotera/internal/service"
)

// lookupOptions are the select box choices shared by the member pages.
type lookupOptions struct {
	Statuses    []models.Option
	Families    []models.Option
	Professions []models.Option
	Locations   []models.Option
	Ministries  []models.Option
}

// lookupSource loads the select box choices.
type lookupSource struct {
	lookups     *repository.LookupRepository
	families    *repository.FamilyRepository
	ministries  *repository.MinistryRepository
	professions *repository.NamedRepository[models.Profession]
	locations   *repository.NamedRepository[models.Location]
}

func newLookupSource(lookups *repository.LookupRepository, families *repository.FamilyRepository, ministries *repository.MinistryRepository,
	professions *repository.NamedRepository[models.Profession], locations *repository.NamedRepository[models.Location]) *lookupSource {
	return &lookupSource{
		lookups:     lookups,
		families:    families,
		ministries:  ministries,
		professions: professions,
		locations:   locations,
	}
}

// load fetches every list concurrently. A failed list is logged and left
// empty so the form still renders.
func (s *lookupSource) load(ctx context.Context) lookupOptions {
	var (
		opts lookupOptions
		g    errgroup.Group
	)
	g.Go(func() error {
		if st := fetch(ctx, "statuses", s.lookups.Statuses); st.Data != nil {
			opts.Statuses = service.StatusOptions(*st.Data)
		}
		return nil
	})
	g.Go(func() error {
		if st := fetch(ctx, "families", s.families.List); st.Data != nil {
			opts.Families = service.FamilyOptions(*st.Data)
		}
		return nil
	})
	g.Go(func() error {
		if st := fetch(ctx, "ministries", s.ministries.List); st.Data != nil {
			opts.Ministries = service.MinistryOptions(*st.Data)
		}
		return nil
	})
	g.Go(func() error {
		if st := fetch(ctx, "professions", s.professions.List); st.Data != nil {
			opts.Professions = service.ProfessionOptions(*st.Data)
		}
		return nil
	})
	g.Go(func() error {
		if st := fetch(ctx, "locations", s.locations.List); st.Data != nil {
			opts.Locations = service.LocationOptions(*st.Data)
		}
		return nil
	})
	_ = g.Wait()
	return opts
}
