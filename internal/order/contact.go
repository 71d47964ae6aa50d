package order

import (
	"strings"
	"time"
)

// Contact is the closing block collected after pricing.
type Contact struct {
	Phone           string
	Address         string
	Date            string
	Name            string
	SpecialRequests string
}

// Customer is the raw messenger identity of the person placing the order.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Language  string
}

// DisplayName joins first and last name.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

var preferredDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-1-2 15:04",
	"02.01.2006 15:04",
	"2.1.2006 15:04",
	"02.01.2006, 15:04",
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
}

// PreferredTime parses the free-text date when it matches a known layout.
// Customers often type "завтра после обеда", so a miss is normal.
func (c Contact) PreferredTime(loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(c.Date)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range preferredDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
