package queue

type WalkInRequest struct {
	CustomerName string  `json:"customer_name"`
	ServiceName  string  `json:"service_name"`
	Price        float64 `json:"price"`
	Duration     int     `json:"duration"`
}

type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}
