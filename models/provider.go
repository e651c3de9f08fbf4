package models

// Provider is the catalog document for a healthcare provider.
type Provider struct {
	ID           string              `bson:"id" json:"id"`
	Name         string              `bson:"name" json:"name"`
	Address      string              `bson:"address,omitempty" json:"address,omitempty"`
	Image        string              `bson:"image,omitempty" json:"image,omitempty"`
	Services     []ServiceDetail     `bson:"services,omitempty" json:"services,omitempty"`
	WorkingHours []WorkingHoursEntry `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
}

// ProviderSummary is the denormalized snapshot carried inside a booking
// draft so catalog edits mid-flow cannot corrupt an in-progress booking.
type ProviderSummary struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name,omitempty" json:"name,omitempty"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Image   string `bson:"image,omitempty" json:"image,omitempty"`
}

// Summary returns the draft snapshot for the provider.
func (p Provider) Summary() ProviderSummary {
	return ProviderSummary{ID: p.ID, Name: p.Name, Address: p.Address, Image: p.Image}
}

// FindService looks up a catalog service by id, falling back to name match.
func (p Provider) FindService(key string) (ServiceDetail, bool) {
	for _, svc := range p.Services {
		if svc.ID == key || svc.Name == key {
			return svc, true
		}
	}
	return ServiceDetail{}, false
}
