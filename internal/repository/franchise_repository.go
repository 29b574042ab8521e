package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pizzastack/pizza-service/internal/model"
)

// FranchiseRepo owns the 'franchise' and 'store' tables. It is the one
// repository that also writes role-binding rows: creating a franchise
// attaches franchisee bindings to its admins, and deleting one removes
// them again.
type FranchiseRepo struct{ db *sql.DB }

func NewFranchiseRepo(db *sql.DB) *FranchiseRepo { return &FranchiseRepo{db: db} }

// Create resolves every admin email to an existing user before writing
// anything; the first unknown email aborts with ErrUnknownUser and zero
// writes. On success the franchise row is inserted, followed by one
// franchisee role-binding per admin scoped to the new id. The binding
// inserts after the franchise row are deliberately not transactional.
func (r *FranchiseRepo) Create(ctx context.Context, f model.Franchise) (*model.Franchise, error) {
	for i, admin := range f.Admins {
		var id uint64
		var name string
		err := r.db.QueryRowContext(ctx,
			"SELECT id, name FROM user WHERE email = ? LIMIT 1",
			admin.Email).Scan(&id, &name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownUser, admin.Email)
			}
			return nil, err
		}
		f.Admins[i].ID = id
		f.Admins[i].Name = name
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO franchise (name) VALUES (?)", f.Name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	f.ID = uint64(id)

	for _, admin := range f.Admins {
		if _, err := r.db.ExecContext(ctx,
			"INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)",
			admin.ID, model.RoleFranchisee, f.ID); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

// Delete removes a franchise, its stores and its franchisee
// role-bindings in one transaction. Any failure rolls back all three
// deletes and surfaces ErrDeleteFranchise.
func (r *FranchiseRepo) Delete(ctx context.Context, franchiseID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFranchise, err)
	}
	steps := []struct {
		query string
		args  []interface{}
	}{
		{"DELETE FROM store WHERE franchiseId = ?", []interface{}{franchiseID}},
		{"DELETE FROM userRole WHERE objectId = ? AND role = ?", []interface{}{franchiseID, model.RoleFranchisee}},
		{"DELETE FROM franchise WHERE id = ?", []interface{}{franchiseID}},
	}
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, s.query, s.args...); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("%w: %v", ErrDeleteFranchise, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFranchise, err)
	}
	return nil
}

// List returns one page of franchises plus a more-pages flag. The page
// is zero-based; one extra row is fetched to compute the flag. Each
// franchise is hydrated with its stores, and with its admins as well
// when detailed is set (the admin view). The nested fetches are
// intentionally per-franchise secondary queries; at this scale the N+1
// pattern is not a latency concern and keeping it inside the repository
// lets it be swapped for a join later without touching callers.
func (r *FranchiseRepo) List(ctx context.Context, page, limit int, nameFilter string, detailed bool) ([]model.Franchise, bool, error) {
	if page < 0 {
		page = 0
	}
	if nameFilter == "" {
		nameFilter = "%"
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name FROM franchise WHERE name LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		nameFilter, limit+1, page*limit)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []model.Franchise
	for rows.Next() {
		var f model.Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, false, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	more := len(out) > limit
	if more {
		out = out[:limit]
	}
	for i := range out {
		if err := r.hydrate(ctx, &out[i], detailed); err != nil {
			return nil, false, err
		}
	}
	return out, more, nil
}

// ListForUser returns every franchise the user administers, fully
// resolved with admins and stores.
func (r *FranchiseRepo) ListForUser(ctx context.Context, userID uint64) ([]model.Franchise, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT objectId FROM userRole WHERE role = ? AND userId = ?",
		model.RoleFranchisee, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]model.Franchise, 0, len(ids))
	for _, id := range ids {
		f, err := r.Get(ctx, id)
		if err != nil {
			if errors.Is(err, ErrFranchiseNotFound) {
				continue // stale binding, e.g. franchise deleted concurrently
			}
			return nil, err
		}
		out = append(out, *f)
	}
	return out, nil
}

// Get fetches one franchise with admins and stores resolved. Returns
// ErrFranchiseNotFound when the id matches no row.
func (r *FranchiseRepo) Get(ctx context.Context, franchiseID uint64) (*model.Franchise, error) {
	var f model.Franchise
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name FROM franchise WHERE id = ? LIMIT 1",
		franchiseID).Scan(&f.ID, &f.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFranchiseNotFound
		}
		return nil, err
	}
	if err := r.hydrate(ctx, &f, true); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateStore inserts a store under a franchise and returns it with
// the generated id.
func (r *FranchiseRepo) CreateStore(ctx context.Context, franchiseID uint64, s model.Store) (*model.Store, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO store (franchiseId, name) VALUES (?, ?)",
		franchiseID, s.Name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.ID = uint64(id)
	s.FranchiseID = franchiseID
	return &s, nil
}

// DeleteStore removes a store scoped by both franchise and store id so
// a store can never be deleted through a foreign franchise. Matching
// nothing is a no-op.
func (r *FranchiseRepo) DeleteStore(ctx context.Context, franchiseID, storeID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM store WHERE franchiseId = ? AND id = ?",
		franchiseID, storeID)
	return err
}

// hydrate fills a franchise's stores, and admins when detailed.
func (r *FranchiseRepo) hydrate(ctx context.Context, f *model.Franchise, detailed bool) error {
	if detailed {
		rows, err := r.db.QueryContext(ctx,
			"SELECT u.id, u.name, u.email FROM userRole ur JOIN user u ON u.id = ur.userId WHERE ur.objectId = ? AND ur.role = ?",
			f.ID, model.RoleFranchisee)
		if err != nil {
			return err
		}
		for rows.Next() {
			var a model.FranchiseAdmin
			if err := rows.Scan(&a.ID, &a.Name, &a.Email); err != nil {
				rows.Close()
				return err
			}
			f.Admins = append(f.Admins, a)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name FROM store WHERE franchiseId = ? ORDER BY id", f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return err
		}
		s.FranchiseID = f.ID
		f.Stores = append(f.Stores, s)
	}
	if f.Stores == nil {
		f.Stores = []model.Store{}
	}
	return rows.Err()
}
