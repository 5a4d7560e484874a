package domain

// WarehouseType identifies where a stock lot physically sits. There are
// exactly two tiers: FIRST receives raw intake, FINAL holds processed stock.
type WarehouseType string

const (
	WarehouseFirst WarehouseType = "FIRST"
	WarehouseFinal WarehouseType = "FINAL"
)

// Valid reports whether wt is one of the two known warehouse types.
func (wt WarehouseType) Valid() bool {
	return wt == WarehouseFirst || wt == WarehouseFinal
}

// StockStatus is the lifecycle state of a warehouse stock lot.
type StockStatus string

const (
	StockAwaitingDecision StockStatus = "AWAITING_DECISION"
	StockAwaitingFilter   StockStatus = "AWAITING_FILTER"
	StockReadyToShip      StockStatus = "READY_TO_SHIP"
	StockNonClean         StockStatus = "NON_CLEAN"
	StockReadyForSale     StockStatus = "READY_FOR_SALE"
	StockConsumed         StockStatus = "CONSUMED"
)

// CartonType is a fixed-weight shipping/sales packaging unit.
type CartonType string

const (
	CartonC20 CartonType = "C20" // 20 kg
	CartonC8  CartonType = "C8"  // 8 kg
)

// WarehouseStock is a persisted quantity of one commodity held at a single
// warehouse. Quantities are kilogram-tagged Money values; the invariant
// CleanKg + NonCleanKg == TotalKg holds at the kilogram precision at all
// times. Lots are never physically deleted: consumption drives TotalKg
// toward zero and status toward CONSUMED.
type WarehouseStock struct {
	StockID       string        `json:"stockID"`
	WarehouseType WarehouseType `json:"warehouseType"`
	Commodity     string        `json:"commodity"`
	TotalKg       Money         `json:"totalKg"`
	CleanKg       Money         `json:"cleanKg"`
	NonCleanKg    Money         `json:"nonCleanKg"`
	UnitCost      Money         `json:"unitCost"` // currency per kg
	CartonType    CartonType    `json:"cartonType"`
	CartonCount   string        `json:"cartonCount"` // decimal string, derived from TotalKg
	Status        StockStatus   `json:"status"`
	BatchID       *string       `json:"batchID,omitempty"`
	QualityGrade  *string       `json:"qualityGrade,omitempty"`
	AuditFields
}

// QuantityInvariantHolds reports whether clean + non-clean equals total at
// the persisted kilogram precision.
func (s WarehouseStock) QuantityInvariantHolds() bool {
	sum, err := s.CleanKg.Add(s.NonCleanKg)
	if err != nil {
		return false
	}
	return sum.Rounded().Equal(s.TotalKg.Rounded())
}

// SellableStatus returns the only status in which a lot at the given
// warehouse may be consumed: FIRST warehouses sell non-clean stock, FINAL
// warehouses sell ready-for-sale stock.
func SellableStatus(wt WarehouseType) (StockStatus, bool) {
	switch wt {
	case WarehouseFirst:
		return StockNonClean, true
	case WarehouseFinal:
		return StockReadyForSale, true
	default:
		return "", false
	}
}

// WarehouseBatch is a named, traceable grouping of stock sharing one supplier
// and one quality grade. Batches are deactivated, never deleted, so split and
// merge lineage stays reconstructible forever.
type WarehouseBatch struct {
	BatchID      string `json:"batchID"`
	BatchNumber  string `json:"batchNumber"`
	SupplierID   string `json:"supplierID"`
	QualityGrade string `json:"qualityGrade"`
	TotalKg      Money  `json:"totalKg"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
