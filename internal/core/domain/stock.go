package domain

import "time"

type Stock struct {
	ID        int       `json:"id"`
	Amount    int       `json:"amount"`
	Version   int       `json:"-"` // optimistic locking
	UpdatedAt time.Time `json:"-"`
}
