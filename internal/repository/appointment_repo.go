package repository

import (
	"context"
	"encoding/json"
	"time"

	"barberq/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

type appointmentModel struct {
	ID                int64      `gorm:"column:id;primaryKey"`
	Code              string     `gorm:"column:code;uniqueIndex"`
	AppointmentNumber int64      `gorm:"column:appointment_number;uniqueIndex:idx_appointment_number"`
	BarberID          int64      `gorm:"column:barber_id;index"`
	CustomerID        *int64     `gorm:"column:customer_id;index"`
	CustomerName      string     `gorm:"column:customer_name"`
	Services          string     `gorm:"column:services"`
	Date              time.Time  `gorm:"column:date;index"`
	TimeLabel         string     `gorm:"column:time_label"`
	Status            string     `gorm:"column:status"`
	WalkIn            bool       `gorm:"column:walk_in"`
	TotalPrice        float64    `gorm:"column:total_price"`
	TotalDuration     int        `gorm:"column:total_duration"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	CancelledAt       *time.Time `gorm:"column:cancelled_at"`
}

func (appointmentModel) TableName() string { return "appointments" }

func toDomainAppointment(m appointmentModel) *domain.Appointment {
	var services []domain.ServiceLine
	if m.Services != "" {
		_ = json.Unmarshal([]byte(m.Services), &services)
	}

	return &domain.Appointment{
		ID:                m.ID,
		Code:              m.Code,
		AppointmentNumber: m.AppointmentNumber,
		BarberID:          m.BarberID,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Services:          services,
		Date:              m.Date,
		TimeLabel:         m.TimeLabel,
		Status:            domain.AppointmentStatus(m.Status),
		WalkIn:            m.WalkIn,
		TotalPrice:        m.TotalPrice,
		TotalDuration:     m.TotalDuration,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		CancelledAt:       m.CancelledAt,
	}
}

func toAppointmentModel(a *domain.Appointment) appointmentModel {
	var services string
	if len(a.Services) > 0 {
		raw, _ := json.Marshal(a.Services)
		services = string(raw)
	}

	return appointmentModel{
		ID:                a.ID,
		Code:              a.Code,
		AppointmentNumber: a.AppointmentNumber,
		BarberID:          a.BarberID,
		CustomerID:        a.CustomerID,
		CustomerName:      a.CustomerName,
		Services:          services,
		Date:              a.Date,
		TimeLabel:         a.TimeLabel,
		Status:            string(a.Status),
		WalkIn:            a.WalkIn,
		TotalPrice:        a.TotalPrice,
		TotalDuration:     a.TotalDuration,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
		CancelledAt:       a.CancelledAt,
	}
}

// Create inserts the appointment and allocates its number inside one
// transaction: max(existing)+1 with a floor of 1001. The unique index on
// appointment_number is the backstop for concurrent allocations.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	m := toAppointmentModel(a)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxNumber int64
		row := tx.Model(&appointmentModel{}).
			Select("COALESCE(MAX(appointment_number), ?)", domain.FirstAppointmentNumber-1).
			Row()
		if err := row.Scan(&maxNumber); err != nil {
			return err
		}

		m.AppointmentNumber = maxNumber + 1
		return tx.Create(&m).Error
	})
	if err != nil {
		return err
	}

	*a = *toDomainAppointment(m)
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

func (r *AppointmentRepository) GetByCode(ctx context.Context, code string) (*domain.Appointment, error) {
	var m appointmentModel
	tx := r.db.WithContext(ctx).Where("code = ?", code).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAppointment(m), nil
}

// GetForBarberDay returns all appointments for the barber whose date falls on
// the given calendar day, regardless of status. Filtering down to the active
// queue is the derivation engine's job.
func (r *AppointmentRepository) GetForBarberDay(ctx context.Context, barberID int64, day time.Time) ([]domain.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var rows []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("barber_id = ? AND date >= ? AND date < ?", barberID, start, end).
		Order("appointment_number asc").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

func (r *AppointmentRepository) GetByCustomer(ctx context.Context, customerID int64, limit, offset int) ([]domain.Appointment, error) {
	var rows []appointmentModel
	tx := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("date desc, appointment_number desc").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	updates := map[string]any{"status": string(status), "updated_at": time.Now()}
	if status == domain.AppointmentCancelled {
		now := time.Now()
		updates["cancelled_at"] = &now
	}

	tx := r.db.WithContext(ctx).
		Model(&appointmentModel{}).
		Where("id = ?", id).
		Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type AppointmentFilter struct {
	BarberID *int64
	Day      *time.Time
	Status   string
	Limit    int
	Offset   int
}

func (r *AppointmentRepository) List(ctx context.Context, f AppointmentFilter) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&appointmentModel{})

	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	if f.Day != nil {
		start := time.Date(f.Day.Year(), f.Day.Month(), f.Day.Day(), 0, 0, 0, 0, f.Day.Location())
		q = q.Where("date >= ? AND date < ?", start, start.Add(24*time.Hour))
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var rows []appointmentModel
	tx := q.Order("date desc, appointment_number desc").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Appointment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainAppointment(m))
	}
	return out, nil
}
