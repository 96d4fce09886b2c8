package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpgshelf/shelf/pkg/types"
)

var _ types.SystemStore = (*systemsTable)(nil)

const systemColumns = `id, name, kind, parent_id, supplement_types, publisher_id, physical, pdf, vtt,
 language, play_status, collection_status, purchase_price, purchase_currency, sale_price, sale_currency`

type systemsTable struct {
	backend *Backend
}

func (st *systemsTable) db() (*sql.DB, error) {
	return st.backend.conn(types.SystemsStore)
}

// Get retrieves a game system by id.
func (st *systemsTable) Get(ctx context.Context, id int64) (*types.GameSystem, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return nil, err
	}

	row := db.QueryRowContext(ctx, "SELECT "+systemColumns+" FROM systems WHERE id = ?", id)
	s, err := hydrateSystem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting system %d: %w", id, err)
	}
	return s, nil
}

// NameByID returns the system's name.
func (st *systemsTable) NameByID(ctx context.Context, id int64) (string, error) {
	db, err := st.db()
	if err != nil {
		return "", err
	}
	return nameByID(ctx, db, "systems", "name", id)
}

// List returns all systems ordered by id.
func (st *systemsTable) List(ctx context.Context) ([]*types.GameSystem, error) {
	return st.query(ctx, "SELECT "+systemColumns+" FROM systems ORDER BY id ASC")
}

// CoreRulebooks returns the core rulebooks ordered by name, for the parent
// and session system pickers.
func (st *systemsTable) CoreRulebooks(ctx context.Context) ([]*types.GameSystem, error) {
	return st.query(ctx,
		"SELECT "+systemColumns+" FROM systems WHERE kind = ? ORDER BY name COLLATE NOCASE ASC, id ASC",
		string(types.KindCoreRulebook),
	)
}

// Supplements returns the systems whose parent is parentID, ordered by name.
func (st *systemsTable) Supplements(ctx context.Context, parentID int64) ([]*types.GameSystem, error) {
	if parentID <= 0 {
		return nil, types.ErrInvalidID
	}
	return st.query(ctx,
		"SELECT "+systemColumns+" FROM systems WHERE parent_id = ? ORDER BY name COLLATE NOCASE ASC, id ASC",
		parentID,
	)
}

func (st *systemsTable) query(ctx context.Context, query string, args ...any) ([]*types.GameSystem, error) {
	db, err := st.db()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching systems: %w", err)
	}
	defer rows.Close()

	results := []*types.GameSystem{}
	for rows.Next() {
		s, err := hydrateSystem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating system: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating systems: %w", err)
	}
	return results, nil
}

// Create inserts a system, allocating the lowest free id when s.ID is zero.
func (st *systemsTable) Create(ctx context.Context, s *types.GameSystem) (int64, error) {
	if err := validateSystem(s); err != nil {
		return 0, err
	}
	db, err := st.db()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := allocateID(ctx, tx, "systems", s.ID)
	if err != nil {
		return 0, err
	}
	args := append([]any{id}, systemValues(s)...)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO systems ("+systemColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		args...,
	); err != nil {
		return 0, fmt.Errorf("inserting system: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing system: %w", err)
	}

	s.ID = id
	return id, nil
}

// Update overwrites every column of an existing system.
func (st *systemsTable) Update(ctx context.Context, s *types.GameSystem) error {
	if err := validateSystem(s); err != nil {
		return err
	}
	if s.ID <= 0 {
		return types.ErrInvalidID
	}
	if s.ParentID != nil && *s.ParentID == s.ID {
		return types.Invalid("parent", types.ErrInvalidID)
	}
	db, err := st.db()
	if err != nil {
		return err
	}

	args := append(systemValues(s), s.ID)
	res, err := db.ExecContext(ctx,
		`UPDATE systems SET name = ?, kind = ?, parent_id = ?, supplement_types = ?, publisher_id = ?,
		 physical = ?, pdf = ?, vtt = ?, language = ?, play_status = ?, collection_status = ?,
		 purchase_price = ?, purchase_currency = ?, sale_price = ?, sale_currency = ?
		 WHERE id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("updating system %d: %w", s.ID, err)
	}
	return requireAffected(res)
}

// Delete removes a single system row. Supplements pointing at it become
// orphans; use DeleteWithSupplements to remove them too.
func (st *systemsTable) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, "DELETE FROM systems WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting system %d: %w", id, err)
	}
	return requireAffected(res)
}

// DeleteWithSupplements removes a system and every row whose parent it is,
// in one transaction. Returns the number of supplements removed.
func (st *systemsTable) DeleteWithSupplements(ctx context.Context, id int64) (int, error) {
	if id <= 0 {
		return 0, types.ErrInvalidID
	}
	db, err := st.db()
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM systems WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting system %d: %w", id, err)
	}
	if err := requireAffected(res); err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM systems WHERE parent_id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting supplements of %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing system deletion: %w", err)
	}
	return int(n), nil
}

// NextID returns the id the next Create would allocate.
func (st *systemsTable) NextID(ctx context.Context) (int64, error) {
	db, err := st.db()
	if err != nil {
		return 0, err
	}
	return nextID(ctx, db, "systems")
}

func validateSystem(s *types.GameSystem) error {
	if s == nil {
		return types.ErrInvalidData
	}
	if s.Name == "" {
		return types.Invalid("name", types.ErrNameRequired)
	}
	if s.Kind == "" {
		s.Kind = types.KindCoreRulebook
	}
	if s.PlayStatus == "" {
		s.PlayStatus = types.NotPlayed
	}
	if s.CollectionStatus == "" {
		s.CollectionStatus = types.Owned
	}
	return nil
}

// systemValues returns the column values after id, in systemColumns order.
func systemValues(s *types.GameSystem) []any {
	return []any{
		s.Name,
		string(s.Kind),
		nullInt(s.ParentID),
		nullString(types.JoinSupplementTypes(s.SupplementTypes)),
		nullInt(s.PublisherID),
		boolInt(s.Physical),
		boolInt(s.PDF),
		nullString(types.JoinVTT(s.VTT)),
		nullString(s.Language),
		string(s.PlayStatus),
		string(s.CollectionStatus),
		nullFloat(s.PurchasePrice),
		nullString(s.PurchaseCurrency),
		nullFloat(s.SalePrice),
		nullString(s.SaleCurrency),
	}
}

// hydrateSystem converts a row into a *types.GameSystem.
func hydrateSystem(row scanner) (*types.GameSystem, error) {
	var (
		s                types.GameSystem
		kind             sql.NullString
		parentID         sql.NullInt64
		supplementTypes  sql.NullString
		publisherID      sql.NullInt64
		physical         sql.NullInt64
		pdf              sql.NullInt64
		vtt              sql.NullString
		language         sql.NullString
		playStatus       sql.NullString
		collectionStatus sql.NullString
		purchasePrice    sql.NullFloat64
		purchaseCurrency sql.NullString
		salePrice        sql.NullFloat64
		saleCurrency     sql.NullString
	)
	if err := row.Scan(
		&s.ID, &s.Name, &kind, &parentID, &supplementTypes, &publisherID,
		&physical, &pdf, &vtt, &language, &playStatus, &collectionStatus,
		&purchasePrice, &purchaseCurrency, &salePrice, &saleCurrency,
	); err != nil {
		return nil, err
	}

	s.Kind = types.SystemKind(kind.String)
	s.ParentID = intPtr(parentID)
	s.SupplementTypes = types.SplitSupplementTypes(supplementTypes.String)
	s.PublisherID = intPtr(publisherID)
	s.Physical = physical.Int64 != 0
	s.PDF = pdf.Int64 != 0
	s.VTT = types.SplitVTT(vtt.String)
	s.Language = language.String
	s.PlayStatus = types.PlayStatus(playStatus.String)
	if s.PlayStatus == "" {
		s.PlayStatus = types.NotPlayed
	}
	s.CollectionStatus = types.CollectionStatus(collectionStatus.String)
	if s.CollectionStatus == "" {
		s.CollectionStatus = types.Owned
	}
	s.PurchasePrice = floatPtr(purchasePrice)
	s.PurchaseCurrency = purchaseCurrency.String
	s.SalePrice = floatPtr(salePrice)
	s.SaleCurrency = saleCurrency.String
	return &s, nil
}
