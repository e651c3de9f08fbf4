package providerRepo

import "medibook/models"

// ProviderRepository exposes the provider catalog to the booking flow.
type ProviderRepository interface {
	GetByID(id string) (*models.Provider, error)
	GetAll() ([]models.Provider, error)
}
