package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	BirthDateTime *time.Time  `json:"birth_datetime,omitempty" db:"birth_datetime"`
	BirthPlace    *string     `json:"birth_place,omitempty" db:"birth_place"`
	NatalChart    *NatalChart `json:"natal_chart,omitempty" db:"-"` // JSONB, парсится репозиторием
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// BirthData данные рождения для запросов к провайдеру
func (u *User) BirthData() (BirthData, bool) {
	if u.BirthDateTime == nil {
		return BirthData{}, false
	}
	place := ""
	if u.BirthPlace != nil {
		place = *u.BirthPlace
	}
	return BirthData{
		UserID:     u.ID,
		BirthTime:  *u.BirthDateTime,
		BirthPlace: place,
	}, true
}
