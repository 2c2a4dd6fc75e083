package domain

import "io"

// Known catalog categories.
const (
	CategoryClothing    = "Clothing"
	CategoryAccessories = "Accessories"
	CategoryFootwear    = "Footwear"
	CategoryEssentials  = "Essentials"
	CategoryBags        = "Bags"
)

// Categories lists the categories offered when creating or filtering products.
var Categories = []string{
	CategoryClothing,
	CategoryAccessories,
	CategoryFootwear,
	CategoryEssentials,
	CategoryBags,
}

// Sizes lists the sizes a product may be offered in.
var Sizes = []string{"S", "M", "L", "XL", "XXL"}

// Product is a catalog entry as served by the remote catalog. The wire names
// follow the remote service: `_id`, `size` and `image`.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"size,omitempty"`
	ImageRef    string   `json:"image,omitempty"`
}

// ProductDraft carries the fields of a product that does not exist yet. The
// remote service assigns the id and the stored image path.
type ProductDraft struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	Category    string   `json:"category" validate:"required,oneof=Clothing Accessories Footwear Essentials Bags"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Sizes       []string `json:"size" validate:"dive,oneof=S M L XL XXL"`
}

// ProductPatch is a partial update. Nil fields are left untouched; set fields
// obey the same rules as a ProductDraft.
type ProductPatch struct {
	Name     *string  `json:"name,omitempty" validate:"omitnil,required"`
	Price    *float64 `json:"price,omitempty" validate:"omitnil,gt=0"`
	Category *string  `json:"category,omitempty" validate:"omitnil,oneof=Clothing Accessories Footwear Essentials Bags"`
	Stock    *int     `json:"stock,omitempty" validate:"omitnil,gte=0"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil && p.Stock == nil
}

// Attachment is an optional binary payload (a product image) sent along with a
// create or update request.
type Attachment struct {
	Filename string
	Content  io.Reader
}
