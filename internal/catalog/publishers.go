package catalog

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/rpgshelf/shelf/internal/theme"
)

// PublisherColumns are the publishers grid headers.
var PublisherColumns = []string{"ID", "Name", "Website", "Country"}

// PublisherRow is one line of the publishers grid.
type PublisherRow struct {
	ID      int64
	Name    string
	Website string
	Country string
}

// Cells returns the row in PublisherColumns order.
func (r PublisherRow) Cells() []string {
	return []string{strconv.FormatInt(r.ID, 10), r.Name, r.Website, r.Country}
}

// Tone is always ToneNone; publishers are not colored.
func (r PublisherRow) Tone() theme.Tone { return theme.ToneNone }

var publisherSortKeys = map[string]sortKey[PublisherRow]{
	"id":      byNum(func(r PublisherRow) float64 { return float64(r.ID) }),
	"name":    byText(func(r PublisherRow) string { return r.Name }),
	"website": byText(func(r PublisherRow) string { return r.Website }),
	"country": byText(func(r PublisherRow) string { return r.Country }),
}

func matchPublisher(r PublisherRow, f Filters) bool {
	return exactMatch(r.Country, f.Value(FilterCountry)) &&
		triMatch(r.Website, f.Value(FilterWebsite))
}

// PublisherRows fills the publishers grid.
func (s *Service) PublisherRows(ctx context.Context, v View) ([]PublisherRow, error) {
	pubs, err := s.catalog.Publishers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing publishers: %w", err)
	}
	rows := make([]PublisherRow, 0, len(pubs))
	for _, p := range pubs {
		rows = append(rows, PublisherRow{ID: p.ID, Name: p.Name, Website: p.Website, Country: p.Country})
	}
	rows = applyFilters(rows, v.Filters, matchPublisher)
	if err := sortRows(rows, v.Sort, publisherSortKeys); err != nil {
		return nil, err
	}
	return rows, nil
}

// LoadPublisherForm loads publisher id into an edit form.
func (s *Service) LoadPublisherForm(ctx context.Context, id int64) (PublisherForm, error) {
	p, err := s.catalog.Publishers().Get(ctx, id)
	if err != nil {
		return PublisherForm{}, err
	}
	return PublisherFormFrom(p), nil
}

// SavePublisher creates a publisher when id is 0 and overwrites publisher
// id otherwise. Returns the id saved.
func (s *Service) SavePublisher(ctx context.Context, id int64, f PublisherForm) (int64, error) {
	p, err := f.Publisher()
	if err != nil {
		return 0, err
	}
	store := s.catalog.Publishers()
	if id == 0 {
		if id, err = store.Create(ctx, p); err != nil {
			return 0, err
		}
		s.logger.Info("publisher added", zap.Int64("id", id), zap.String("name", p.Name))
		return id, nil
	}
	p.ID = id
	if err := store.Update(ctx, p); err != nil {
		return 0, err
	}
	s.logger.Info("publisher updated", zap.Int64("id", id))
	return id, nil
}

// DeletePublisher removes a publisher. Systems that name it keep the id
// and display it blank.
func (s *Service) DeletePublisher(ctx context.Context, id int64) error {
	if err := s.catalog.Publishers().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("publisher deleted", zap.Int64("id", id))
	return nil
}
