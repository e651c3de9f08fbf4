package models

// PatientProfile is the authenticated patient's stored profile, used to
// detect authentication and to prefill identity fields when booking for
// "Self".
type PatientProfile struct {
	ID          string `bson:"id" json:"id"`
	FullName    string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth string `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender      string `bson:"gender,omitempty" json:"gender,omitempty"`
	Address     string `bson:"address,omitempty" json:"address,omitempty"`
	City        string `bson:"city,omitempty" json:"city,omitempty"`
	State       string `bson:"state,omitempty" json:"state,omitempty"`
}
