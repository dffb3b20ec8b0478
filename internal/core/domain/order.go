package domain

const (
	OrderStatusPending   = "Pending"
	OrderStatusDelivered = "Delivered"
)

// Customer is the purchasing party embedded in an order.
type Customer struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email" bson:"email"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

// Order records a purchase. Status is free-form; only Delivered is special.
type Order struct {
	ID              string   `json:"_id,omitempty" bson:"_id,omitempty"`
	PlantID         string   `json:"plantId" bson:"plantId"`
	Quantity        int      `json:"quantity" bson:"quantity"`
	Price           float64  `json:"price" bson:"price"`
	Customer        Customer `json:"customer" bson:"customer"`
	Seller          string   `json:"seller" bson:"seller"`
	Address         string   `json:"address,omitempty" bson:"address,omitempty"`
	Status          string   `json:"status" bson:"status"`
	TransactionID   string   `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	PaymentVerified bool     `json:"paymentVerified,omitempty" bson:"paymentVerified,omitempty"`
}

// Cancellable reports whether the customer may still delete the order.
func (o *Order) Cancellable() bool {
	return o.Status != OrderStatusDelivered
}

// OrderView is an order joined with display fields of its plant.
type OrderView struct {
	Order    `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	Image    string `json:"image" bson:"image"`
	Category string `json:"category" bson:"category"`
}

// UpdateResult mirrors the matched/modified counters of a store write.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
