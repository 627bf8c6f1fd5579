package repository

import (
	"context"
	"time"

	"barberq/internal/domain"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Price     float64   `gorm:"column:price"`
	Duration  int       `gorm:"column:duration"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) *domain.CatalogService {
	return &domain.CatalogService{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Duration:  m.Duration,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.CatalogService) error {
	m := serviceModel{
		Name:     s.Name,
		Price:    s.Price,
		Duration: s.Duration,
		Active:   s.Active,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainService(m)
	return nil
}

func (r *ServiceRepository) ListActive(ctx context.Context) ([]domain.CatalogService, error) {
	var rows []serviceModel
	tx := r.db.WithContext(ctx).Where("active = ?", true).Order("name asc").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.CatalogService, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*domain.CatalogService, error) {
	var m serviceModel
	tx := r.db.WithContext(ctx).Where("name = ?", name).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainService(m), nil
}
