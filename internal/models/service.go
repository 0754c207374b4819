package models

// Service is an offerable maintenance service from the remote catalog.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
