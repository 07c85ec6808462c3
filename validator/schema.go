// Package validator checks and normalizes request payloads before they reach
// the handlers. Schemas are built once at startup and never mutated; every
// derived variant is a copy.
package validator

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
)

// Kind is the JSON type a field accepts.
type Kind int

const (
	KindString Kind = iota
	KindDate
)

// Field describes how one payload key is checked.
type Field struct {
	Key   string
	Label string
	Kind  Kind

	// Required is the message reported when the key is absent. Empty means
	// the key is optional.
	Required string

	Lowercase bool
	KeepSpace bool
	Default   interface{}

	// After, when set, is reported for dates that are not strictly later
	// than the schema clock.
	After string

	// SameAs names another key whose normalized value this one must equal.
	SameAs        string
	SameAsMessage string

	Rules []validation.Rule
}

// Schema is an ordered set of fields. The zero value accepts nothing.
type Schema struct {
	fields []Field
	now    func() time.Time
}

func NewSchema(fields ...Field) Schema {
	return Schema{fields: fields, now: time.Now}
}

// Partial returns the update variant: no key is required and no defaults are
// applied, but every present key is held to the same rules.
func (s Schema) Partial() Schema {
	fields := make([]Field, len(s.fields))
	for i, f := range s.fields {
		f.Required = ""
		f.Default = nil
		fields[i] = f
	}
	return Schema{fields: fields, now: s.now}
}

// WithClock returns a copy of the schema that reads "now" from clock.
func (s Schema) WithClock(clock func() time.Time) Schema {
	return Schema{fields: s.fields, now: clock}
}

// Values is a normalized payload. It only holds keys the schema knows.
type Values map[string]interface{}

// String returns a normalized string value and whether it was present.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Time returns a parsed date value and whether it was present.
func (v Values) Time(key string) (time.Time, bool) {
	t, ok := v[key].(time.Time)
	return t, ok
}

// Validate checks payload against every field, collecting all violations.
// Unknown keys are dropped. On failure the error is an *errs.ApiErr carrying
// each message in field order.
func (s Schema) Validate(payload map[string]interface{}) (Values, error) {
	values := make(Values, len(s.fields))
	var messages []string

	for _, f := range s.fields {
		raw, present := payload[f.Key]
		if !present {
			if f.Required != "" {
				messages = append(messages, f.Required)
				continue
			}
			if f.Default != nil {
				values[f.Key] = f.Default
			}
			continue
		}

		value, err := f.normalize(raw)
		if err != nil {
			messages = append(messages, err.Error())
			continue
		}

		rules := f.Rules
		if f.After != "" {
			rules = append(rules[:len(rules):len(rules)],
				validation.Min(s.now()).Exclusive().Error(f.After))
		}
		if err := validation.Validate(value, rules...); err != nil {
			messages = append(messages, err.Error())
			continue
		}
		values[f.Key] = value
	}

	for _, f := range s.fields {
		if f.SameAs == "" {
			continue
		}
		got, ok := values[f.Key]
		if !ok {
			continue
		}
		// A missing counterpart already produced its own message.
		if want, ok := values[f.SameAs]; ok && want != got {
			messages = append(messages, f.SameAsMessage)
			delete(values, f.Key)
		}
	}

	if len(messages) > 0 {
		return nil, errs.NewValidationError(messages)
	}
	return values, nil
}

func (f Field) normalize(raw interface{}) (interface{}, error) {
	switch f.Kind {
	case KindDate:
		t, ok := parseDate(raw)
		if !ok {
			return nil, fmt.Errorf("%s must be a valid date", f.Label)
		}
		return t, nil
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", f.Label)
		}
		if !f.KeepSpace {
			s = strings.TrimSpace(s)
		}
		if f.Lowercase {
			s = strings.ToLower(s)
		}
		return s, nil
	}
}

// maxEpochMillis bounds numeric dates to 100,000,000 days either side of the
// epoch, the range a JavaScript Date can hold.
const maxEpochMillis = 8.64e15

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate accepts ISO-8601 strings and epoch milliseconds.
func parseDate(raw interface{}) (time.Time, bool) {
	switch v := raw.(type) {
	case string:
		v = strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	case float64:
		// NaN fails both comparisons.
		if !(v >= -maxEpochMillis && v <= maxEpochMillis) {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(v)), true
	}
	return time.Time{}, false
}
