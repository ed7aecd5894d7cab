package project

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
)

const deadlineLayout = "2006-01-02"

var (
	skillsListTag  = "skillslist"
	skillsListText = "At least one skill is required"

	deadlineTag  = "deadline"
	deadlineText = "Deadline must not be a past date"

	// stubbed in deadline tests
	nowFunc = time.Now
)

func init() {
	_ = core.Validate.RegisterValidation(skillsListTag, skillsListValidation)
	core.RegisterCustomTranslation(skillsListTag, skillsListText)

	_ = core.Validate.RegisterValidation(deadlineTag, deadlineValidation)
	core.RegisterCustomTranslation(deadlineTag, deadlineText)
}

// skillsListValidation requires the comma-separated input to yield at least
// one non-empty skill.
func skillsListValidation(fl validator.FieldLevel) bool {
	return len(ParseSkills(fl.Field().String())) > 0
}

// deadlineValidation accepts dates from today onwards, time-of-day zeroed for
// the comparison. Only enforced at creation time.
func deadlineValidation(fl validator.FieldLevel) bool {
	deadline, err := time.Parse(deadlineLayout, fl.Field().String())
	if err != nil {
		return false
	}
	now := nowFunc()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, deadline.Location())
	return !deadline.Before(today)
}
