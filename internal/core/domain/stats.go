package domain

// ChartPoint aggregates the orders created on one day (YYYY-MM-DD).
type ChartPoint struct {
	Date     string  `json:"date" bson:"date"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
	Order    int     `json:"order" bson:"order"`
}

// OrderTotals holds revenue and order count over all orders.
type OrderTotals struct {
	TotalRevenue float64 `json:"totalRevenue" bson:"totalRevenue"`
	TotalOrder   int64   `json:"totalOrder" bson:"totalOrder"`
}

// AdminStats is the read-only dashboard summary.
type AdminStats struct {
	TotalUser   int64 `json:"totalUser"`
	TotalPlants int64 `json:"totalPlants"`
	OrderTotals
	ChartData []ChartPoint `json:"chartData"`
}
