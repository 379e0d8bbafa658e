package domain

import "time"

const ReservationPending = "pendiente"

// Reservation books an in-store activity for a client.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Activity  string    `json:"activity"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
