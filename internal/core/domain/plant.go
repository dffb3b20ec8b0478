package domain

// PublicPlantLimit caps the public catalogue listing.
const PublicPlantLimit = 20

// Seller is the owning seller embedded in a plant record.
type Seller struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email" bson:"email"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

// Plant is an inventory item. Price is in currency units; Quantity is not
// floored at zero by the store.
type Plant struct {
	ID          string  `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string  `json:"name" bson:"name"`
	Description string  `json:"description,omitempty" bson:"description,omitempty"`
	Category    string  `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64 `json:"price" bson:"price"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	Seller      Seller  `json:"seller" bson:"seller"`
}

// QuantityDirection selects the sign of an inventory adjustment.
type QuantityDirection string

const (
	QuantityIncrease QuantityDirection = "increase"
	QuantityDecrease QuantityDirection = "decrease"
)

// Delta returns the signed $inc value for an adjustment of n units.
// Anything other than increase decrements.
func (d QuantityDirection) Delta(n int) int {
	if d == QuantityIncrease {
		return n
	}
	return -n
}
