package models

import (
	"bytes"
	"encoding/json"
)

// ServiceDetail is the full catalog record for a provider service.
type ServiceDetail struct {
	ID          string  `bson:"id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	Duration    int     `bson:"duration,omitempty" json:"duration,omitempty"` // minutes
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// Service is either a bare service name or a full catalog record. Clients
// sometimes send just the name; the catalog and the draft store carry the
// detailed form. Merge logic must never replace a Detailed value with a
// Named one (see MergeDraft).
type Service struct {
	Name   string         `bson:"name,omitempty"`
	Detail *ServiceDetail `bson:"detail,omitempty"`
}

// NamedService builds the bare-name variant.
func NamedService(name string) Service {
	return Service{Name: name}
}

// DetailedService builds the full-record variant.
func DetailedService(d ServiceDetail) Service {
	return Service{Name: d.Name, Detail: &d}
}

// IsZero reports whether no service has been selected at all.
func (s Service) IsZero() bool {
	return s.Name == "" && s.Detail == nil
}

// IsDetailed reports whether the full catalog record is present.
func (s Service) IsDetailed() bool {
	return s.Detail != nil
}

// DisplayName returns the service name regardless of variant.
func (s Service) DisplayName() string {
	if s.Detail != nil {
		return s.Detail.Name
	}
	return s.Name
}

// Price returns the catalog price, or zero for the named variant.
func (s Service) Price() float64 {
	if s.Detail != nil {
		return s.Detail.Price
	}
	return 0
}

// MarshalJSON emits the detail object when present, else the bare name.
func (s Service) MarshalJSON() ([]byte, error) {
	if s.Detail != nil {
		return json.Marshal(s.Detail)
	}
	return json.Marshal(s.Name)
}

// UnmarshalJSON accepts either a JSON string (the name) or a full object.
func (s *Service) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Service{}
		return nil
	}
	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*s = Service{Name: name}
		return nil
	}
	var detail ServiceDetail
	if err := json.Unmarshal(trimmed, &detail); err != nil {
		return err
	}
	*s = Service{Name: detail.Name, Detail: &detail}
	return nil
}
