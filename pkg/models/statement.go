// Package models defines the shared data types for FraudLens:
// financial statement inputs, the Beneish ratio set, and analysis results.
package models

import "encoding/json"

// Field names for the 13 required financial line items, as emitted by the
// extraction layer and expected by the calculation engine. Values are in
// millions of the statement's currency; consistency across both years is
// assumed, not enforced.
const (
	FieldRevenue         = "revenue"
	FieldCOGS            = "cost_of_goods_sold"
	FieldSGA             = "selling_general_admin_expense"
	FieldDepreciation    = "depreciation"
	FieldNetIncome       = "net_income_continuing_operations"
	FieldReceivables     = "accounts_receivables"
	FieldCurrentAssets   = "current_assets"
	FieldPPE             = "property_plant_equipment"
	FieldSecurities      = "securities"
	FieldTotalAssets     = "total_assets"
	FieldCurrentLiab     = "current_liabilities"
	FieldLongTermDebt    = "total_long_term_debt"
	FieldCashFlowOps     = "cash_flow_operations"
)

// RequiredFields lists all 13 field names in their fixed enumeration order.
// Validation output and tabular exports follow this order.
var RequiredFields = []string{
	FieldRevenue,
	FieldCOGS,
	FieldSGA,
	FieldDepreciation,
	FieldNetIncome,
	FieldReceivables,
	FieldCurrentAssets,
	FieldPPE,
	FieldSecurities,
	FieldTotalAssets,
	FieldCurrentLiab,
	FieldLongTermDebt,
	FieldCashFlowOps,
}

// YearData holds one reporting period's financial line items.
// A nil pointer means the value is missing (absent from the source document
// or explicitly null); zero is a valid present value, distinct from missing.
type YearData struct {
	Revenue                *float64 `json:"revenue,omitempty"`
	CostOfGoodsSold        *float64 `json:"cost_of_goods_sold,omitempty"`
	SellingGeneralAdmin    *float64 `json:"selling_general_admin_expense,omitempty"`
	Depreciation           *float64 `json:"depreciation,omitempty"`
	NetIncome              *float64 `json:"net_income_continuing_operations,omitempty"`
	AccountsReceivables    *float64 `json:"accounts_receivables,omitempty"`
	CurrentAssets          *float64 `json:"current_assets,omitempty"`
	PropertyPlantEquipment *float64 `json:"property_plant_equipment,omitempty"`
	Securities             *float64 `json:"securities,omitempty"`
	TotalAssets            *float64 `json:"total_assets,omitempty"`
	CurrentLiabilities     *float64 `json:"current_liabilities,omitempty"`
	TotalLongTermDebt      *float64 `json:"total_long_term_debt,omitempty"`
	CashFlowOperations     *float64 `json:"cash_flow_operations,omitempty"`
}

// Get returns the pointer for a field name, or nil for unknown names.
func (y *YearData) Get(field string) *float64 {
	switch field {
	case FieldRevenue:
		return y.Revenue
	case FieldCOGS:
		return y.CostOfGoodsSold
	case FieldSGA:
		return y.SellingGeneralAdmin
	case FieldDepreciation:
		return y.Depreciation
	case FieldNetIncome:
		return y.NetIncome
	case FieldReceivables:
		return y.AccountsReceivables
	case FieldCurrentAssets:
		return y.CurrentAssets
	case FieldPPE:
		return y.PropertyPlantEquipment
	case FieldSecurities:
		return y.Securities
	case FieldTotalAssets:
		return y.TotalAssets
	case FieldCurrentLiab:
		return y.CurrentLiabilities
	case FieldLongTermDebt:
		return y.TotalLongTermDebt
	case FieldCashFlowOps:
		return y.CashFlowOperations
	default:
		return nil
	}
}

// Set assigns a field by name. Unknown names are ignored.
func (y *YearData) Set(field string, v float64) {
	p := &v
	switch field {
	case FieldRevenue:
		y.Revenue = p
	case FieldCOGS:
		y.CostOfGoodsSold = p
	case FieldSGA:
		y.SellingGeneralAdmin = p
	case FieldDepreciation:
		y.Depreciation = p
	case FieldNetIncome:
		y.NetIncome = p
	case FieldReceivables:
		y.AccountsReceivables = p
	case FieldCurrentAssets:
		y.CurrentAssets = p
	case FieldPPE:
		y.PropertyPlantEquipment = p
	case FieldSecurities:
		y.Securities = p
	case FieldTotalAssets:
		y.TotalAssets = p
	case FieldCurrentLiab:
		y.CurrentLiabilities = p
	case FieldLongTermDebt:
		y.TotalLongTermDebt = p
	case FieldCashFlowOps:
		y.CashFlowOperations = p
	}
}

// Value returns the field's value, or 0 when missing. Callers that care
// about the missing/zero distinction use Get.
func (y *YearData) Value(field string) float64 {
	if p := y.Get(field); p != nil {
		return *p
	}
	return 0
}

// YearFromMap builds a YearData from a name→value map, skipping unknown keys.
func YearFromMap(m map[string]float64) YearData {
	var y YearData
	for k, v := range m {
		y.Set(k, v)
	}
	return y
}

// StatementData is the extraction layer's output contract: a company name
// and two consecutive reporting periods (Year 1 = prior, Year 2 = current).
type StatementData struct {
	CompanyName string   `json:"company_name"`
	Year1       YearData `json:"year_1_data"`
	Year2       YearData `json:"year_2_data"`
}

// ParseStatement decodes a JSON statement document.
func ParseStatement(data []byte) (*StatementData, error) {
	var s StatementData
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
