package birthday

import (
	"database/sql"
	"fmt"
	"time"
)

// MonthDay is a year-independent calendar date, the sole key for daily matching.
type MonthDay struct {
	Month time.Month
	Day   int
}

// MonthDayOf extracts the month-day part of t.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// String renders the canonical MM-DD form stored in the database.
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// Record represents one member's stored birthday.
type Record struct {
	MemberID  int64
	Username  sql.NullString // Telegram @username, may be absent
	FullName  sql.NullString
	Birthday  MonthDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Mention returns the name used in greeting texts: full name, else
// @username, else a generic placeholder.
func (r *Record) Mention() string {
	if r.FullName.Valid && r.FullName.String != "" {
		return r.FullName.String
	}
	if r.Username.Valid && r.Username.String != "" {
		return "@" + r.Username.String
	}
	return "одного з учасників"
}
