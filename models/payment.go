package models

// PaymentInitRequest is the request handed to the payment gateway.
type PaymentInitRequest struct {
	AppointmentID string  `json:"appointmentId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Email         string  `json:"email"`
	Description   string  `json:"description,omitempty"`
}

// PaymentInit is the gateway's answer: where to send the browser.
type PaymentInit struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference,omitempty"`
}
