package domain

// FeeAdjustment is a commission adjustment applied to an order item.
type FeeAdjustment struct {
	Name         string  `json:"adjustment_name"`
	Type         string  `json:"adjustment_type"`
	CommissionID string  `json:"commission_id"`
	Value        float64 `json:"value"`
}
