package service

import (
	"math"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, value, field+" cannot be empty")
	}
	return nil
}

func requireID(field string, id int) error {
	if id <= 0 {
		return invalid(field, id, field+" must be positive")
	}
	return nil
}

func requireEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Value: email, Message: "invalid email format", Err: ErrInvalidEmailFormat}
	}
	return nil
}

func requireAmount(field string, amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return invalid(field, amount, field+" must be a finite number")
	}
	return nil
}

func requireNonNegative(field string, amount float64) error {
	if err := requireAmount(field, amount); err != nil {
		return err
	}
	if amount < 0 {
		return invalid(field, amount, field+" cannot be negative")
	}
	return nil
}

func requireOrdered(start, end time.Time) error {
	if start.After(end) {
		return invalid("end date", end.Format("2006-01-02"), "end date cannot be before start date "+start.Format("2006-01-02"))
	}
	return nil
}
