package store

import "github.com/karimelhadi/atelierbackend/models"

// SnapshotPricing freezes the product identity and price for a new
// inquiry. The unit price is the discount price when one is set,
// otherwise the regular price; an explicit total supplied by the caller
// always wins. The returned values are stored on the inquiry and are
// never touched by later catalog edits.
func SnapshotPricing(p *models.Product, quantity int, explicitTotal *float64) (productName string, totalPrice float64) {
	if quantity < 1 {
		quantity = 1
	}
	if explicitTotal != nil {
		return p.Name, *explicitTotal
	}
	return p.Name, p.UnitPrice() * float64(quantity)
}
