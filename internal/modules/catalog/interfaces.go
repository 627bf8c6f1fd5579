package catalog

import (
	"context"

	"barberq/internal/domain"
)

type BarberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Barber, error)
	ListActive(ctx context.Context) ([]domain.Barber, error)
}

type ServiceRepository interface {
	ListActive(ctx context.Context) ([]domain.CatalogService, error)
}
