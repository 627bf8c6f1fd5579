package repository

import (
	"context"
	"encoding/json"
	"time"

	"barberq/internal/domain"

	"gorm.io/gorm"
)

type BarberRepository struct {
	db *gorm.DB
}

func NewBarberRepository(db *gorm.DB) *BarberRepository {
	return &BarberRepository{db: db}
}

type barberModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Name      string    `gorm:"column:name"`
	Specialty *string   `gorm:"column:specialty"`
	Bio       *string   `gorm:"column:bio"`
	AvatarURL *string   `gorm:"column:avatar_url"`
	Schedule  *string   `gorm:"column:schedule"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (barberModel) TableName() string { return "barbers" }

func toDomainBarber(m barberModel) *domain.Barber {
	b := &domain.Barber{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Specialty != nil {
		b.Specialty = *m.Specialty
	}
	if m.Bio != nil {
		b.Bio = *m.Bio
	}
	if m.AvatarURL != nil {
		b.AvatarURL = *m.AvatarURL
	}
	if m.Schedule != nil && *m.Schedule != "" {
		b.Schedule = json.RawMessage(*m.Schedule)
	}
	return b
}

func toBarberModel(b *domain.Barber) barberModel {
	m := barberModel{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Specialty != "" {
		v := b.Specialty
		m.Specialty = &v
	}
	if b.Bio != "" {
		v := b.Bio
		m.Bio = &v
	}
	if b.AvatarURL != "" {
		v := b.AvatarURL
		m.AvatarURL = &v
	}
	if len(b.Schedule) > 0 {
		v := string(b.Schedule)
		m.Schedule = &v
	}
	return m
}

func (r *BarberRepository) Create(ctx context.Context, b *domain.Barber) error {
	m := toBarberModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBarber(m)
	return nil
}

func (r *BarberRepository) GetByID(ctx context.Context, id int64) (*domain.Barber, error) {
	var m barberModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBarber(m), nil
}

func (r *BarberRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Barber, error) {
	var m barberModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBarber(m), nil
}

func (r *BarberRepository) ListActive(ctx context.Context) ([]domain.Barber, error) {
	var rows []barberModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("name asc").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Barber, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBarber(m))
	}
	return out, nil
}

func (r *BarberRepository) UpdateSchedule(ctx context.Context, barberID int64, schedule json.RawMessage) error {
	return r.db.WithContext(ctx).
		Model(&barberModel{}).
		Where("id = ?", barberID).
		Updates(map[string]any{"schedule": string(schedule), "updated_at": time.Now()}).Error
}
