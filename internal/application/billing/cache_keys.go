package billing

import "github.com/shopspring/decimal"

// CalculationCacheKey tax:<jurisdicción>:<subtotal>
func CalculationCacheKey(jurisdictionCode string, subtotal decimal.Decimal) string {
	return "tax:" + jurisdictionCode + ":" + subtotal.String()
}

// ExemptionCacheKey tax:exemption:<businessID>
func ExemptionCacheKey(businessID string) string {
	return "tax:exemption:" + businessID
}
