// Package validator builds declarative input checks.
//
// Each rule constructor returns a Rule that pairs a check with the error
// reported on failure. Apply runs them all and collects every failure into
// ValidationErrors, which implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("username", username),
//		validator.ValidEmail("email", email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		body := errs.Map()
//	}
package validator
