package domain

// Sale is the persisted record of a stock consumption. The ledger engine
// only reads it: return validation resolves the original warehouse from this
// row, never from a client-supplied value.
type Sale struct {
	SaleID        string        `json:"saleID"`
	StockID       string        `json:"stockID"`
	WarehouseType WarehouseType `json:"warehouseType"` // warehouse the stock was sold from
	QuantityKg    Money         `json:"quantityKg"`
	CartonType    CartonType    `json:"cartonType"`
	Cartons       string        `json:"cartons"` // decimal string
	TotalAmount   Money         `json:"totalAmount"`
	AuditFields
}
