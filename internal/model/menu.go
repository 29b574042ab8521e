package model

// MenuItem mirrors the 'menu' table. Image stores a reference to the
// item picture, not the bytes. Price is a decimal amount in the store
// currency.
type MenuItem struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}
