// internal/domain/cart/entity.go
package cart

// Product is a catalog record as supplied by the product listing. Stock is
// carried for the listing's add-to-cart gate; the upstream API stays
// authoritative for inventory.
type Product struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"` // minor currency units
	ImageURL    string `json:"image_url,omitempty"`
	Stock       int    `json:"stock"`
}

// Line is one product entry in a cart. Quantity is always >= 1; a line
// reduced to zero is removed, never stored.
type Line struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	UnitPrice   int64  `json:"unit_price"`
	ImageURL    string `json:"image_url,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Subtotal returns unit price times quantity for this line
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart is an immutable snapshot of a session's cart: the ordered line
// sequence and the total derived from it. Total is never stored
// independently of the lines.
type Cart struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
	Total     int64  `json:"total"`
}

// LineCount returns the number of distinct lines
func (c Cart) LineCount() int {
	return len(c.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (c Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func computeTotal(lines []Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.Subtotal()
	}
	return total
}
