package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// ReminderFormModel backs the add-reminder form. Offsets count backwards from
// the session start.
type ReminderFormModel struct {
	Message string
	Days    string
	Hours   string
	Minutes string
}

func (fm *ReminderFormModel) offset(field string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(field))
	return n
}

func (fm *ReminderFormModel) OffsetDays() int    { return fm.offset(fm.Days) }
func (fm *ReminderFormModel) OffsetHours() int   { return fm.offset(fm.Hours) }
func (fm *ReminderFormModel) OffsetMinutes() int { return fm.offset(fm.Minutes) }

func validateOffset(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("must be a whole number")
	}
	if n < 0 {
		return fmt.Errorf("offset cannot be negative")
	}
	return nil
}

// NewReminderForm builds the form shown over the sessions tab.
func NewReminderForm(fm *ReminderFormModel, sessionName string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Message").
				Description("Reminder for "+sessionName).
				Value(&fm.Message).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("message cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Days before").
				Placeholder("0").
				Value(&fm.Days).
				Validate(validateOffset),
			huh.NewInput().
				Title("Hours before").
				Placeholder("0").
				Value(&fm.Hours).
				Validate(validateOffset),
			huh.NewInput().
				Title("Minutes before").
				Placeholder("15").
				Value(&fm.Minutes).
				Validate(validateOffset),
		),
	).WithTheme(huh.ThemeDracula())
}
