package apiclient

import (
	"errors"
	"fmt"
	"sort"

	"github.com/evgenybelkin/service-e2e-tests/config"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrUnrecognizedEnvelope means that a response body had neither of the shapes that the service
// is known to use for a service record.
var ErrUnrecognizedEnvelope = errors.New("unrecognized response envelope")

// EnvelopeKind is the top-level shape of a response body.
//
// The API returns a created service either as the record itself or as a page of a list whose
// first element is the record. Which one it returns is not predictable.
type EnvelopeKind int

const (
	EnvelopeUnrecognized EnvelopeKind = iota
	EnvelopeSingle
	EnvelopeCollection
)

func (k EnvelopeKind) String() string {
	switch k {
	case EnvelopeSingle:
		return "single"
	case EnvelopeCollection:
		return "collection"
	default:
		return "unrecognized"
	}
}

// Envelope is a classified response body.
type Envelope struct {
	Kind EnvelopeKind
	// Record is the service record: the body itself, or the first element of the collection.
	// It is null for an unrecognized envelope.
	Record ldvalue.Value
	// Items is the number of elements of a collection.
	Items int
	// Keys are the sorted top-level property names of the body.
	Keys []string
	// Reason says why an envelope is unrecognized.
	Reason string
}

// ClassifyEnvelope determines the shape of a decoded response body.
func ClassifyEnvelope(body ldvalue.Value) Envelope {
	if body.Type() != ldvalue.ObjectType {
		return Envelope{Kind: EnvelopeUnrecognized, Reason: fmt.Sprintf("body is a JSON %s", body.Type())}
	}
	keys := body.Keys()
	sort.Strings(keys)
	if keys == nil {
		keys = []string{}
	}
	env := Envelope{Keys: keys}

	if _, ok := body.TryGetByKey(config.FieldUUID); ok {
		env.Kind = EnvelopeSingle
		env.Record = body
		return env
	}
	if data, ok := body.TryGetByKey(config.CollectionField); ok {
		if data.Type() != ldvalue.ArrayType {
			env.Reason = fmt.Sprintf("%q is a JSON %s", config.CollectionField, data.Type())
			return env
		}
		if data.Count() == 0 {
			env.Reason = fmt.Sprintf("%q is empty", config.CollectionField)
			return env
		}
		env.Kind = EnvelopeCollection
		env.Record = data.GetByIndex(0)
		env.Items = data.Count()
		return env
	}
	env.Reason = fmt.Sprintf("expected %q or %q", config.FieldUUID, config.CollectionField)
	return env
}

// Err returns nil for a recognized envelope, and otherwise an error wrapping
// ErrUnrecognizedEnvelope that names the top-level keys.
func (e Envelope) Err() error {
	if e.Kind != EnvelopeUnrecognized {
		return nil
	}
	if e.Keys == nil {
		return fmt.Errorf("%w: %s", ErrUnrecognizedEnvelope, e.Reason)
	}
	return fmt.Errorf("%w: top-level keys %v (%s)", ErrUnrecognizedEnvelope, e.Keys, e.Reason)
}

// ExtractRecord returns the service record from a response body of either known shape.
func ExtractRecord(body ldvalue.Value) (ldvalue.Value, error) {
	env := ClassifyEnvelope(body)
	if err := env.Err(); err != nil {
		return ldvalue.Null(), err
	}
	return env.Record, nil
}
