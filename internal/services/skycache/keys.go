package skycache

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DateKey календарная дата в заданной зоне, например "2024-03-15"
func DateKey(date time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return date.In(loc).Format(dateLayout)
}

func userPrefix(userID uuid.UUID) string {
	return userID.String() + ":"
}

func userTransitsKey(userID uuid.UUID, dateKey string) string {
	return userPrefix(userID) + dateKey
}

// у лунара ключ только по пользователю, дата запроса в ключ не входит
func lunarReturnKey(userID uuid.UUID) string {
	return userID.String()
}

func solarReturnKey(userID uuid.UUID, year int) string {
	return userPrefix(userID) + strconv.Itoa(year)
}
