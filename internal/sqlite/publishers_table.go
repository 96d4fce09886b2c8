package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpgshelf/shelf/pkg/types"
)

var _ types.PublisherStore = (*publishersTable)(nil)

const publisherColumns = "id, name, website, country"

type publishersTable struct {
	backend *Backend
}

func (pt *publishersTable) db() (*sql.DB, error) {
	return pt.backend.conn(types.PublishersStore)
}

// Get retrieves a publisher by id.
func (pt *publishersTable) Get(ctx context.Context, id int64) (*types.Publisher, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := pt.db()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, "SELECT "+publisherColumns+" FROM publishers WHERE id = ?", id)
	p, err := hydratePublisher(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting publisher %d: %w", id, err)
	}
	return p, nil
}

// NameByID returns the publisher's name.
func (pt *publishersTable) NameByID(ctx context.Context, id int64) (string, error) {
	db, err := pt.db()
	if err != nil {
		return "", err
	}
	return nameByID(ctx, db, "publishers", "name", id)
}

// List returns all publishers ordered by id.
func (pt *publishersTable) List(ctx context.Context) ([]*types.Publisher, error) {
	db, err := pt.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT "+publisherColumns+" FROM publishers ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("fetching publishers: %w", err)
	}
	defer rows.Close()

	results := []*types.Publisher{}
	for rows.Next() {
		p, err := hydratePublisher(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating publisher: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating publishers: %w", err)
	}
	return results, nil
}

// Create inserts a publisher, allocating the lowest free id when p.ID is zero.
func (pt *publishersTable) Create(ctx context.Context, p *types.Publisher) (int64, error) {
	if p == nil {
		return 0, types.ErrInvalidData
	}
	if p.Name == "" {
		return 0, types.Invalid("name", types.ErrNameRequired)
	}
	db, err := pt.db()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := allocateID(ctx, tx, "publishers", p.ID)
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO publishers ("+publisherColumns+") VALUES (?, ?, ?, ?)",
		id, p.Name, nullString(p.Website), nullString(p.Country),
	); err != nil {
		return 0, fmt.Errorf("inserting publisher: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing publisher: %w", err)
	}

	p.ID = id
	return id, nil
}

// Update overwrites every column of an existing publisher.
func (pt *publishersTable) Update(ctx context.Context, p *types.Publisher) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.ID <= 0 {
		return types.ErrInvalidID
	}
	if p.Name == "" {
		return types.Invalid("name", types.ErrNameRequired)
	}
	db, err := pt.db()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		"UPDATE publishers SET name = ?, website = ?, country = ? WHERE id = ?",
		p.Name, nullString(p.Website), nullString(p.Country), p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating publisher %d: %w", p.ID, err)
	}
	return requireAffected(res)
}

// Delete removes a publisher. Systems that reference it keep the dangling id.
func (pt *publishersTable) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := pt.db()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM publishers WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting publisher %d: %w", id, err)
	}
	return requireAffected(res)
}

// NextID returns the id the next Create would allocate.
func (pt *publishersTable) NextID(ctx context.Context) (int64, error) {
	db, err := pt.db()
	if err != nil {
		return 0, err
	}
	return nextID(ctx, db, "publishers")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// hydratePublisher converts a row into a *types.Publisher.
func hydratePublisher(row scanner) (*types.Publisher, error) {
	var (
		p       types.Publisher
		website sql.NullString
		country sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &website, &country); err != nil {
		return nil, err
	}
	p.Website = website.String
	p.Country = country.String
	return &p, nil
}

// requireAffected maps a zero-row update or delete to ErrNotFound.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
