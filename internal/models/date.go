package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date scans a business date stored either as TEXT (sqlite) or DATE (postgres).
type Date struct {
	time.Time
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	t, ok, err := scanDate(src)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cannot scan NULL into models.Date")
	}
	d.Time = t
	return nil
}

// NullDate is the nullable counterpart of Date.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (d *NullDate) Scan(src any) error {
	t, ok, err := scanDate(src)
	if err != nil {
		return err
	}
	d.Time, d.Valid = t, ok
	return nil
}

// Value implements driver.Valuer so NullDate can be written back as-is.
func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.Time.Format(dateLayout), nil
}

// Ptr returns nil for NULL.
func (d NullDate) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func scanDate(src any) (time.Time, bool, error) {
	switch v := src.(type) {
	case nil:
		return time.Time{}, false, nil
	case time.Time:
		y, m, day := v.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true, nil
	case string:
		return parseStoredDate(v)
	case []byte:
		return parseStoredDate(string(v))
	}
	return time.Time{}, false, fmt.Errorf("unsupported date column type %T", src)
}

func parseStoredDate(s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid stored date %q: %w", s, err)
	}
	return t, true, nil
}
