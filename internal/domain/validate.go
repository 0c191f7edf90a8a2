package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyBatch rejects submissions with no regions to analyze.
var ErrEmptyBatch = errors.New("no regions provided")

// validate holds the shared validator instance, configured to report fields
// by their JSON names so errors match what the caller actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateBatch checks a full submission against the scoring preconditions.
// The whole batch is rejected on the first violation: partial batches must
// never reach the scorer.
func ValidateBatch(regions []RegionInput) error {
	if len(regions) == 0 {
		return ErrEmptyBatch
	}
	for i := range regions {
		if err := validateRegion(regions[i]); err != nil {
			if regions[i].RegionID != "" {
				return fmt.Errorf("region %d (%s): %w", i, regions[i].RegionID, err)
			}
			return fmt.Errorf("region %d: %w", i, err)
		}
	}
	return nil
}

func validateRegion(in RegionInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("field %q is required", fe.Field())
		case "gt":
			return fmt.Errorf("field %q must be greater than %s", fe.Field(), fe.Param())
		case "gte":
			return fmt.Errorf("field %q must be at least %s", fe.Field(), fe.Param())
		default:
			return fmt.Errorf("field %q failed %q validation", fe.Field(), fe.Tag())
		}
	}
	return err
}
