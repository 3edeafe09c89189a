package dates

import (
	"errors"
	"strings"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date es una fecha calendario en formato YYYY-MM-DD.
// El formato es de ancho fijo, así que comparar strings equivale a comparar fechas.
type Date string

// Parse valida y normaliza una fecha YYYY-MM-DD.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	// Re-formatear descarta variantes que time.Parse tolera a medias.
	return Date(t.Format(Layout)), nil
}

// MustParse es solo para tests y valores fijos en código.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func Today(now func() time.Time) Date {
	return Date(now().Format(Layout))
}

func (d Date) String() string { return string(d) }

// Time devuelve la medianoche UTC de la fecha.
func (d Date) Time() time.Time {
	t, _ := time.Parse(Layout, string(d))
	return t
}

func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(Layout))
}

// Before/After comparan lexicográficamente (seguro por el ancho fijo).
func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }
