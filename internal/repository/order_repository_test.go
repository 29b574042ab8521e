package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pizzastack/pizza-service/internal/model"
)

func TestAddDinerOrderInsertsItemsInInputOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	diner := &model.User{ID: 2, Name: "pizza diner", Email: "d@test.com"}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dinerOrder (dinerId, franchiseId, storeId, date) VALUES (?, ?, ?, ?)")).
		WithArgs(2, 1, 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(100, 1))

	// Expectations are ordered: each item resolves its menu id and is
	// inserted before the next item is touched, so the last insert
	// carries the last input item.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu WHERE id = ? LIMIT 1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orderItem (orderId, menuId, description, price) VALUES (?, ?, ?, ?)")).
		WithArgs(100, 5, "Veggie", 0.05).
		WillReturnResult(sqlmock.NewResult(201, 1))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu WHERE id = ? LIMIT 1")).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(6))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO orderItem (orderId, menuId, description, price) VALUES (?, ?, ?, ?)")).
		WithArgs(100, 6, "Pepperoni", 0.1).
		WillReturnResult(sqlmock.NewResult(202, 1))

	repo := NewOrderRepo(db)
	order, err := repo.AddDinerOrder(context.Background(), diner, model.Order{
		FranchiseID: 1,
		StoreID:     4,
		Items: []model.OrderItem{
			{MenuID: 5, Description: "Veggie", Price: 0.05},
			{MenuID: 6, Description: "Pepperoni", Price: 0.1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(100), order.ID)
	assert.Equal(t, uint64(2), order.DinerID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, uint64(201), order.Items[0].ID)
	assert.Equal(t, uint64(202), order.Items[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddDinerOrderUnknownMenuItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	diner := &model.User{ID: 2}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dinerOrder (dinerId, franchiseId, storeId, date) VALUES (?, ?, ?, ?)")).
		WithArgs(2, 1, 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(100, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM menu WHERE id = ? LIMIT 1")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewOrderRepo(db)
	_, err = repo.AddDinerOrder(context.Background(), diner, model.Order{
		FranchiseID: 1,
		StoreID:     4,
		Items:       []model.OrderItem{{MenuID: 99, Description: "Ghost", Price: 1}},
	})

	assert.ErrorIs(t, err, ErrMenuItemNotFound)
}

func TestOrdersForDiner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	diner := &model.User{ID: 2}
	date := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, franchiseId, storeId, date FROM dinerOrder WHERE dinerId = ? ORDER BY id LIMIT ? OFFSET ?")).
		WithArgs(2, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "franchiseId", "storeId", "date"}).
			AddRow(100, 1, 4, date).
			AddRow(101, 1, 4, date))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, menuId, description, price FROM orderItem WHERE orderId = ? ORDER BY id")).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "menuId", "description", "price"}).
			AddRow(201, 5, "Veggie", 0.05))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, menuId, description, price FROM orderItem WHERE orderId = ? ORDER BY id")).
		WithArgs(101).
		WillReturnRows(sqlmock.NewRows([]string{"id", "menuId", "description", "price"}))

	repo := NewOrderRepo(db)
	page, err := repo.OrdersForDiner(context.Background(), diner, 0, 10)
	require.NoError(t, err)

	assert.Equal(t, uint64(2), page.DinerID)
	assert.Equal(t, 0, page.Page)
	require.Len(t, page.Orders, 2)
	assert.Len(t, page.Orders[0].Items, 1)
	assert.Empty(t, page.Orders[1].Items)
	assert.Equal(t, "2026-08-01T12:00:00Z", page.Orders[0].Date)
}

func TestOrdersForDinerSecondPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, franchiseId, storeId, date FROM dinerOrder WHERE dinerId = ? ORDER BY id LIMIT ? OFFSET ?")).
		WithArgs(2, 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "franchiseId", "storeId", "date"}))

	repo := NewOrderRepo(db)
	page, err := repo.OrdersForDiner(context.Background(), &model.User{ID: 2}, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Orders)
}
