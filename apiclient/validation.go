package apiclient

import (
	"errors"
	"fmt"

	"github.com/evgenybelkin/service-e2e-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const errorsField = "errors"

// ErrNoValidationErrors means that a response body did not contain an errors object.
var ErrNoValidationErrors = errors.New("response has no validation errors")

// ParseValidationErrors reads the errors object of a 422 response body. Each property of the
// object is a field name, and its value is a list of messages; a single message that is not in
// a list is also accepted.
func ParseValidationErrors(body ldvalue.Value) (servicedef.ValidationErrorSet, error) {
	errs, ok := body.TryGetByKey(errorsField)
	if body.Type() != ldvalue.ObjectType || !ok {
		return nil, fmt.Errorf("%w: body was %s", ErrNoValidationErrors, body.JSONString())
	}
	if errs.Type() != ldvalue.ObjectType {
		return nil, fmt.Errorf("%w: %q is a JSON %s", ErrNoValidationErrors, errorsField, errs.Type())
	}
	ret := make(servicedef.ValidationErrorSet)
	for _, field := range errs.Keys() {
		messages := errs.GetByKey(field)
		switch messages.Type() {
		case ldvalue.ArrayType:
			for i := 0; i < messages.Count(); i++ {
				ret[field] = append(ret[field], messageText(messages.GetByIndex(i)))
			}
		default:
			ret[field] = append(ret[field], messageText(messages))
		}
	}
	return ret, nil
}

func messageText(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}
