package model

// Stats summarizes the whole inventory.
type Stats struct {
	TotalItems    int             `json:"total_items"`
	LowStockCount int             `json:"low_stock_count"`
	Activities    []ActivityCount `json:"activities"`
}

// ActivityCount is the number of items sharing one raw activity value.
type ActivityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
