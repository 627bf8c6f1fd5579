package booking

type ServiceLineRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type CreateAppointmentRequest struct {
	BarberID int64                `json:"barber_id" binding:"required"`
	Services []ServiceLineRequest `json:"services" binding:"required"`
	Date     string               `json:"date" binding:"required"` // 2006-01-02
	Time     string               `json:"time" binding:"required"` // display clock, e.g. "3:00 PM"
}
