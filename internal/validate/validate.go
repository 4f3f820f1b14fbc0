// Package validate holds the pure field-level validation rules shared
// by every create and edit flow. Keeping one rule set here is what
// prevents the create and edit forms from drifting apart.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nhle/compliance-tracker/internal/model"
)

// Field error messages.
const (
	MsgNameRequired    = "Checklist name is required"
	MsgNameTooLong     = "Name cannot exceed 200 characters"
	MsgDueDateRequired = "Due date is required"
	MsgDueDatePast     = "Due date cannot be in the past"
	MsgTitleRequired   = "Item title is required"
)

const maxNameLength = 200

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ChecklistName validates the checklist name field. The length limit
// counts characters, not bytes, so multibyte names are measured the
// way users perceive them.
func ChecklistName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New(MsgNameRequired)
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return errors.New(MsgNameTooLong)
	}
	return nil
}

// ChecklistDueDate validates a "YYYY-MM-DD" due date against today,
// comparing dates only.
func ChecklistDueDate(dueDate string, today model.Date) error {
	if strings.TrimSpace(dueDate) == "" {
		return errors.New(MsgDueDateRequired)
	}
	d, err := model.ParseDate(strings.TrimSpace(dueDate))
	if err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	if d.Before(today) {
		return errors.New(MsgDueDatePast)
	}
	return nil
}

// ItemTitle validates the item title field.
func ItemTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New(MsgTitleRequired)
	}
	return nil
}

// Checklist validates the fields of a checklist create or edit
// submission. An empty map signals success.
func Checklist(name, dueDate string, today model.Date) map[string]string {
	errs := make(map[string]string)
	if err := ChecklistName(name); err != nil {
		errs["name"] = err.Error()
	}
	if err := ChecklistDueDate(dueDate, today); err != nil {
		errs["due_date"] = err.Error()
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Item validates the fields of an item create or edit submission.
func Item(title string) map[string]string {
	if err := ItemTitle(title); err != nil {
		return map[string]string{"title": err.Error()}
	}
	return nil
}

// Registration validates the fields of the account signup form. The
// backend remains authoritative for uniqueness.
func Registration(username, email, password, password2 string) map[string]string {
	errs := make(map[string]string)

	if username == "" {
		errs["username"] = "Username is required"
	}
	if email == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Please enter a valid email address"
	}
	if password == "" {
		errs["password"] = "Password is required"
	} else if len(password) < 8 {
		errs["password"] = "Password must be at least 8 characters long"
	}
	if password2 == "" {
		errs["password2"] = "Please confirm your password"
	} else if password != "" && password != password2 {
		errs["password2"] = "Passwords do not match"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
