package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/rohitbokare05/Project-Connect-IITR/core"
)

var (
	academicYearTag  = "academicyear"
	academicYearText = "Please select your year"

	designationTag  = "designation"
	designationText = "Please select your designation"
)

func init() {
	_ = core.Validate.RegisterValidation(academicYearTag, academicYearValidation)
	core.RegisterCustomTranslation(academicYearTag, academicYearText)

	_ = core.Validate.RegisterValidation(designationTag, designationValidation)
	core.RegisterCustomTranslation(designationTag, designationText)
}

// academicYearValidation only allows values from AcademicYears.
func academicYearValidation(fl validator.FieldLevel) bool {
	return contains(AcademicYears, fl.Field().String())
}

// designationValidation only allows values from Designations.
func designationValidation(fl validator.FieldLevel) bool {
	return contains(Designations, fl.Field().String())
}

func contains(allowed []string, val string) bool {
	for _, a := range allowed {
		if a == val {
			return true
		}
	}
	return false
}
