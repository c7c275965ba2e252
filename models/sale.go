package models

type Sale struct {
	ID           int64   `json:"id"`
	CustomerName string  `json:"customer_name"`
	GSTIN        string  `json:"gstin"`
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	TotalPrice   float64 `json:"total_price"`
	BillFilename string  `json:"bill_filename,omitempty"`
}
