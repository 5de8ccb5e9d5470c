// Package identity implements parsing, validation and formatting of Swedish
// personal identity numbers (personnummer) as specified by Skatteverket
// (SKV 704), including coordination numbers (samordningsnummer).
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

var (
	ErrInvalidFormat   = errors.New("identity: not a 10 or 12 digit personal identity number")
	ErrInvalidDate     = errors.New("identity: invalid birth date")
	ErrInvalidChecksum = errors.New("identity: checksum mismatch")
)

// PersonalIdentityNumber is a validated Swedish personal identity number.
// The zero value is not valid; use Parse.
type PersonalIdentityNumber struct {
	year        int
	month       int
	day         int
	birthNumber int
	checksum    int
}

// Parse validates value as a personal identity number. Both the 12 digit
// (YYYYMMDDNNNC) and the 10 digit (YYMMDD-NNNC or YYMMDD+NNNC) forms are
// accepted. For the 10 digit form the century is inferred relative to the
// current date, where '+' marks a person aged 100 or more.
func Parse(value string) (*PersonalIdentityNumber, error) {
	return ParseAt(value, time.Now())
}

// ParseAt is Parse with an explicit reference date for century inference.
func ParseAt(value string, now time.Time) (*PersonalIdentityNumber, error) {
	value = strings.TrimSpace(value)

	digits, separator, err := splitDigits(value)
	if err != nil {
		return nil, err
	}

	var year int
	switch len(digits) {
	case 12:
		year = number(digits[:4])
		digits = digits[2:]
	case 10:
		year = inferCentury(number(digits[:2]), separator == '+', now)
	default:
		return nil, ErrInvalidFormat
	}

	pin := &PersonalIdentityNumber{
		year:        year,
		month:       number(digits[2:4]),
		day:         number(digits[4:6]),
		birthNumber: number(digits[6:9]),
		checksum:    number(digits[9:]),
	}

	if !validDate(pin.year, pin.month, pin.day) {
		return nil, ErrInvalidDate
	}
	if luhnChecksum(digits[:9]) != pin.checksum {
		return nil, ErrInvalidChecksum
	}
	return pin, nil
}

// Year returns the four digit birth year.
func (p *PersonalIdentityNumber) Year() int { return p.year }

// Month returns the birth month (1-12).
func (p *PersonalIdentityNumber) Month() int { return p.month }

// Day returns the day of birth. Coordination numbers report the real day
// plus 60.
func (p *PersonalIdentityNumber) Day() int { return p.day }

// IsCoordinationNumber reports whether p is a coordination number issued to
// a person without a Swedish civic registration.
func (p *PersonalIdentityNumber) IsCoordinationNumber() bool {
	return p.day > 60
}

// String12 formats p in the 12 digit form expected by the BankID API.
func (p *PersonalIdentityNumber) String12() string {
	return fmt.Sprintf("%04d%02d%02d%03d%d", p.year, p.month, p.day, p.birthNumber, p.checksum)
}

// String10 formats p in the colloquial 10 digit form. The separator becomes
// '+' when the person is 100 years or older at the reference date.
func (p *PersonalIdentityNumber) String10(now time.Time) string {
	separator := "-"
	if now.Year()-p.year >= 100 {
		separator = "+"
	}
	return fmt.Sprintf("%02d%02d%02d%s%03d%d", p.year%100, p.month, p.day, separator, p.birthNumber, p.checksum)
}

func (p *PersonalIdentityNumber) String() string {
	return p.String12()
}

// splitDigits strips an optional separator and rejects any other non-digit.
// It returns the digits as ints and the separator rune, if any.
func splitDigits(value string) (digits []int, separator rune, err error) {
	digits = make([]int, 0, 12)
	for i, r := range value {
		switch {
		case unicode.IsDigit(r):
			digits = append(digits, int(r-'0'))
		case (r == '-' || r == '+') && i == len(value)-5 && separator == 0:
			separator = r
		default:
			return nil, 0, ErrInvalidFormat
		}
	}
	if len(digits) == 12 && separator != 0 {
		return nil, 0, ErrInvalidFormat
	}
	return digits, separator, nil
}

func number(digits []int) (n int) {
	for _, d := range digits {
		n = n*10 + d
	}
	return n
}

// inferCentury resolves a two digit year against the reference date:
// the most recent matching year not in the future, pushed back one more
// century when the plus separator marks an age of 100 or more.
func inferCentury(shortYear int, plus bool, now time.Time) int {
	year := now.Year()/100*100 + shortYear
	if year > now.Year() {
		year -= 100
	}
	if plus {
		year -= 100
	}
	return year
}

// validDate accepts real calendar dates and coordination numbers, which
// carry the day of birth increased by 60.
func validDate(year, month, day int) bool {
	if day > 60 {
		day -= 60
	}
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// luhnChecksum computes the check digit over the 9 digits preceding it,
// using the Luhn algorithm with double weight on even positions.
func luhnChecksum(digits []int) int {
	sum := 0
	for i, d := range digits {
		if i%2 == 0 {
			d *= 2
		}
		if d > 9 {
			d -= 9
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
