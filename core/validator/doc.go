// Package validator evaluates declarative field descriptors against raw input
// values and reports unlocalized results that can be resolved into messages
// for any language.
//
// # Rules
//
// Check applies the rules of a Descriptor in strict order and stops at the
// first failure:
//
//  1. required: the trimmed value must not be empty
//  2. min length: counted in runes on the untrimmed value
//  3. max length: counted in runes on the untrimmed value
//  4. pattern: the trimmed value must fully match
//
// Optional fields with an empty value are always valid, so a phone number
// pattern only applies once the user types something.
//
// # Usage
//
//	desc := validator.Descriptor{
//		Name:      "name",
//		Kind:      validator.KindText,
//		Required:  true,
//		MinLength: 2,
//		MaxLength: 50,
//	}
//
//	res := validator.Check(desc, "A")
//	// res.Key == "form.error.minLength", res.Params["min"] == 2
//
//	msg := res.Localize(translator)
//	// "Must be at least 2 characters"
//
// Results keep the message key and parameters instead of the rendered text.
// Localizing at read time means a language switch re-renders every error
// without validating again.
//
// # Collecting errors
//
// ValidationErrors gathers failed results in field order and implements
// error. It unwraps to ErrValidationFailed:
//
//	var errs validator.ValidationErrors
//	for _, d := range descriptors {
//		errs.Add(validator.Check(d, values[d.Name]))
//	}
//	if !errs.IsEmpty() {
//		return errs
//	}
package validator
