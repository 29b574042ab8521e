package model

// OrderItem is one line of a diner order. MenuID references a menu
// item and is validated against the menu table when the order is
// recorded. Description and Price are copied onto the line so the
// order stays readable after menu edits.
type OrderItem struct {
	ID          uint64  `json:"id,omitempty"`
	MenuID      uint64  `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Order mirrors the 'dinerOrder' table with its 'orderItem' lines.
// Orders are append only; there is no update or delete operation.
type Order struct {
	ID          uint64      `json:"id,omitempty"`
	DinerID     uint64      `json:"dinerId,omitempty"`
	FranchiseID uint64      `json:"franchiseId"`
	StoreID     uint64      `json:"storeId"`
	Date        string      `json:"date,omitempty"`
	Items       []OrderItem `json:"items"`
}

// OrderPage is the paginated read-back shape returned to a diner.
type OrderPage struct {
	DinerID uint64  `json:"dinerId"`
	Orders  []Order `json:"orders"`
	Page    int     `json:"page"`
}
