package repository

import (
	"context"
	"errors"
	"time"

	"barberq/internal/domain"

	"gorm.io/gorm"
)

type StationRepository struct {
	db *gorm.DB
}

func NewStationRepository(db *gorm.DB) *StationRepository {
	return &StationRepository{db: db}
}

type stationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	BarberID  int64     `gorm:"column:barber_id;uniqueIndex"`
	Status    string    `gorm:"column:status"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stationModel) TableName() string { return "stations" }

func toDomainStation(m stationModel) *domain.Station {
	return &domain.Station{
		ID:        m.ID,
		BarberID:  m.BarberID,
		Status:    domain.StationStatus(m.Status),
		UpdatedAt: m.UpdatedAt,
	}
}

// GetOrCreate returns the barber's station row, creating it as active if
// the barber has never opened a station before.
func (r *StationRepository) GetOrCreate(ctx context.Context, barberID int64) (*domain.Station, error) {
	var m stationModel
	tx := r.db.WithContext(ctx).Where("barber_id = ?", barberID).First(&m)
	if tx.Error == nil {
		return toDomainStation(m), nil
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, tx.Error
	}

	m = stationModel{
		BarberID:  barberID,
		Status:    string(domain.StationActive),
		UpdatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return toDomainStation(m), nil
}

func (r *StationRepository) UpdateStatus(ctx context.Context, barberID int64, status domain.StationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&stationModel{}).
		Where("barber_id = ?", barberID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
