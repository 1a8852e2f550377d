package domain

// Product is a read-only snapshot of a catalog entry at the time an
// order line is added. The catalog itself lives in another bounded
// context; the order only keeps the pieces it copied into its items.
type Product struct {
	ID            ProductID
	Name          string
	Price         Money
	IsAvailable   bool
	StockQuantity int
}
