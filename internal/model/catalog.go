package model

import "time"

// Category groups menu items. Exactly one category carries the Default flag;
// it receives items orphaned by category deletion and can never be deleted
// itself.
type Category struct {
	ID        string    `json:"id" bson:"-"`
	Name      string    `json:"name" bson:"name"`
	Default   bool      `json:"default" bson:"default"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// MenuItem is a single item in the catalogue. CategoryID and CatererID are
// soft references; reassignment logic keeps them pointing at live records.
// The id keeps a bson tag because cart and order documents embed item
// snapshots; top-level documents are still keyed by the backend.
type MenuItem struct {
	ID          string    `json:"id" bson:"id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl"`
	CategoryID  string    `json:"categoryId" bson:"categoryId"`
	CatererID   string    `json:"catererId" bson:"catererId"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// CartItem pairs a snapshot of a menu item with a quantity. Orders embed
// these snapshots so historical orders survive later catalogue edits.
type CartItem struct {
	Item     MenuItem `json:"item" bson:"item"`
	Quantity int      `json:"quantity" bson:"quantity"`
}

// CartTotal sums price times quantity over the items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for _, ci := range items {
		total += ci.Item.Price * float64(ci.Quantity)
	}
	return total
}
