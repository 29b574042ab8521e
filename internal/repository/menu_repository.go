package repository

import (
	"context"
	"database/sql"

	"github.com/pizzastack/pizza-service/internal/model"
)

// MenuRepo owns the 'menu' table.
type MenuRepo struct{ db *sql.DB }

func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

// GetMenu returns every menu item. The menu is small enough that a
// full scan without pagination is acceptable.
func (r *MenuRepo) GetMenu(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, description, image, price FROM menu")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Image, &m.Price); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AddItem inserts a menu item and returns it with the generated id.
// Titles are not unique; adding the same title twice yields two rows.
func (r *MenuRepo) AddItem(ctx context.Context, item model.MenuItem) (*model.MenuItem, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO menu (title, description, image, price) VALUES (?, ?, ?, ?)",
		item.Title, item.Description, item.Image, item.Price)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	item.ID = uint64(id)
	return &item, nil
}
