package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pizzastack/pizza-service/internal/model"
)

// OrderRepo owns the 'dinerOrder' and 'orderItem' tables. It reads the
// menu table only to validate item references; all other menu access
// goes through MenuRepo.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrdersForDiner returns one page of the user's orders with their
// items, ordered by insertion. The page is zero-based with a fixed
// per-page size supplied by the caller.
func (r *OrderRepo) OrdersForDiner(ctx context.Context, user *model.User, page, perPage int) (*model.OrderPage, error) {
	if page < 0 {
		page = 0
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, franchiseId, storeId, date FROM dinerOrder WHERE dinerId = ? ORDER BY id LIMIT ? OFFSET ?",
		user.ID, perPage, page*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		var date time.Time
		if err := rows.Scan(&o.ID, &o.FranchiseID, &o.StoreID, &date); err != nil {
			return nil, err
		}
		o.DinerID = user.ID
		o.Date = date.UTC().Format(time.RFC3339)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if orders[i].Items, err = r.itemsForOrder(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return &model.OrderPage{DinerID: user.ID, Orders: orders, Page: page}, nil
}

// AddDinerOrder records an order and its items. The order row is
// inserted first; each item then resolves its menuId against the menu
// table (ErrMenuItemNotFound when absent) before its orderItem row is
// written, preserving input order. The sequence is not transactional: a
// failing late item leaves the order and earlier items committed, an
// accepted property of the system.
func (r *OrderRepo) AddDinerOrder(ctx context.Context, user *model.User, order model.Order) (*model.Order, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO dinerOrder (dinerId, franchiseId, storeId, date) VALUES (?, ?, ?, ?)",
		user.ID, order.FranchiseID, order.StoreID, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	order.ID = uint64(id)
	order.DinerID = user.ID
	order.Date = now.Format(time.RFC3339)

	for i, item := range order.Items {
		menuID, err := r.resolveMenuID(ctx, item.MenuID)
		if err != nil {
			return nil, err
		}
		ires, err := r.db.ExecContext(ctx,
			"INSERT INTO orderItem (orderId, menuId, description, price) VALUES (?, ?, ?, ?)",
			order.ID, menuID, item.Description, item.Price)
		if err != nil {
			return nil, err
		}
		itemID, err := ires.LastInsertId()
		if err != nil {
			return nil, err
		}
		order.Items[i].ID = uint64(itemID)
	}
	return &order, nil
}

// itemsForOrder loads an order's items ordered by insertion.
func (r *OrderRepo) itemsForOrder(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, menuId, description, price FROM orderItem WHERE orderId = ? ORDER BY id", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.MenuID, &it.Description, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// resolveMenuID confirms a referenced menu item exists.
func (r *OrderRepo) resolveMenuID(ctx context.Context, menuID uint64) (uint64, error) {
	var id uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM menu WHERE id = ? LIMIT 1", menuID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", ErrMenuItemNotFound, menuID)
		}
		return 0, err
	}
	return id, nil
}
