package referral

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

// SettingsForm is the raw settings modal input.
type SettingsForm struct {
	CommissionPercentage string `validate:"omitempty,numeric"`
	MinimumWithdrawal    string `validate:"omitempty,numeric"`
}

var (
	hundred  = decimal.NewFromInt(100)
	validate = validator.New()
)

// form field names as posted by the settings modal
const (
	fieldCommission = "commission_percentage"
	fieldWithdrawal = "minimum_withdrawal"
)

// ValidateSettings checks the form and builds the update. Blank fields are omitted.
// Commission must lie in [0,100]; the withdrawal minimum must not be negative.
func ValidateSettings(form SettingsForm) (SettingsUpdate, FieldErrors) {
	form.CommissionPercentage = strings.TrimSpace(form.CommissionPercentage)
	form.MinimumWithdrawal = strings.TrimSpace(form.MinimumWithdrawal)

	errs := FieldErrors{}
	if err := validate.Struct(form); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "CommissionPercentage":
					errs[fieldCommission] = "Commission percentage must be a number"
				case "MinimumWithdrawal":
					errs[fieldWithdrawal] = "Minimum withdrawal must be a number"
				}
			}
		}
	}

	var update SettingsUpdate
	if _, bad := errs[fieldCommission]; !bad && form.CommissionPercentage != "" {
		value, err := decimal.NewFromString(form.CommissionPercentage)
		switch {
		case err != nil:
			errs[fieldCommission] = "Commission percentage must be a number"
		case value.IsNegative() || value.GreaterThan(hundred):
			errs[fieldCommission] = "Commission percentage must be between 0 and 100"
		default:
			update.CommissionPercentage = &value
		}
	}
	if _, bad := errs[fieldWithdrawal]; !bad && form.MinimumWithdrawal != "" {
		value, err := decimal.NewFromString(form.MinimumWithdrawal)
		switch {
		case err != nil:
			errs[fieldWithdrawal] = "Minimum withdrawal must be a number"
		case value.IsNegative():
			errs[fieldWithdrawal] = "Minimum withdrawal cannot be negative"
		default:
			update.MinimumWithdrawal = &value
		}
	}

	if len(errs) == 0 && update.Empty() {
		errs["general"] = "Enter a commission percentage or a minimum withdrawal"
	}
	if len(errs) > 0 {
		return SettingsUpdate{}, errs
	}
	return update, nil
}
