package models

// FillRateRecord is one purchase-order line from the po_fill_rates table.
// Dates are pre-formatted as YYYY-MM-DD; empty string means the source row
// had no usable date.
type FillRateRecord struct {
	ID                  int64   `json:"id"`
	PONo                string  `json:"po_no"`
	Material            string  `json:"material"`
	MaterialDescription string  `json:"material_description"`
	PODate              string  `json:"po_date"`
	DeliveryDate        string  `json:"delivery_date"`
	UOM                 string  `json:"uom"`
	POQuantity          float64 `json:"po_quantity"`
	SalesQuantity       float64 `json:"sales_quantity"`
	FillRatePercent     float64 `json:"fill_rate_percent"`
	State               string  `json:"state"`
	PlantName           string  `json:"plant_name"`
	SalesDistrict       string  `json:"sales_district"`
	CustGroup           string  `json:"cust_group"`
	ProcessingDate      string  `json:"processing_date"`
}

type DashboardStats struct {
	TotalRecords     int     `json:"total_records"`
	LowFillRateCount int     `json:"low_fill_rate_count"`
	AverageFillRate  float64 `json:"average_fill_rate"`
	NeedsFeedback    int     `json:"needs_feedback"`
	UserEmail        string  `json:"user_email"`
}

type PlantCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type FilterOptions struct {
	States        []string                `json:"states"`
	PlantsByState map[string][]PlantCount `json:"plants_by_state"`
	Materials     []string                `json:"materials"`
}

// GapFilter narrows the low-fill-rate view. Empty fields are skipped.
// DateFrom/DateTo are YYYY-MM-DD and bound processing_date inclusively.
type GapFilter struct {
	State    string
	Plant    string
	Material string
	DateFrom string
	DateTo   string
}
