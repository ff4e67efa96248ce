package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/CentsibleLabs/lib-validation/validation"
)

// canonicalTimestampLayout is the single output form for timestamps.
const canonicalTimestampLayout = time.RFC3339

// fallbackTimestampLayouts are tried in priority order after the canonical
// layout. None of them carries a zone offset; they parse as UTC.
var fallbackTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// validateText checks a required textual field. The value fails when null,
// unconvertible to text, or empty after trimming; otherwise it is returned
// unchanged, with a conversion note when it was not natively a string.
func validateText(field string, value any) (string, string, error) {
	if value == nil {
		return "", "", NewFieldError(ErrorNotText, field, "value is null")
	}

	text, converted, err := validation.Stringify(value)
	if err != nil {
		return "", "", NewFieldError(ErrorNotText, field, fmt.Sprintf("%s value cannot be converted to text", validation.KindOf(value)))
	}

	if strings.TrimSpace(text) == "" {
		return "", "", NewFieldError(ErrorEmptyValue, field, "value must not be empty")
	}

	var note string
	if converted {
		note = fmt.Sprintf("converted %s value to text", validation.KindOf(value))
	}

	return text, note, nil
}

// validateAmount parses the value as an arbitrary-precision decimal and
// renders it with exactly two fractional digits. Parsing rejects non-numeric
// text outright; a parsed value must be strictly positive.
func validateAmount(value any) (string, string, error) {
	if value == nil {
		return "", "", NewFieldError(ErrorInvalidAmount, FieldAmount, "value is null")
	}

	text, converted, err := validation.Stringify(value)
	if err != nil {
		return "", "", NewFieldError(ErrorInvalidAmount, FieldAmount, fmt.Sprintf("%s value cannot be converted to text", validation.KindOf(value)))
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return "", "", NewFieldError(ErrorInvalidAmount, FieldAmount, fmt.Sprintf("%q is not a valid decimal amount", text))
	}

	if !amount.IsPositive() {
		return "", "", NewFieldError(ErrorAmountRange, FieldAmount, fmt.Sprintf("amount must be greater than zero, got %s", amount))
	}

	var note string
	if converted {
		note = fmt.Sprintf("converted %s value to text", validation.KindOf(value))
	}

	return amount.StringFixed(2), note, nil
}

// validateTimestamp parses the value against the canonical RFC 3339 layout
// first, then each fallback layout in priority order; the first match wins.
// Fallback layouts carry no zone offset and default to UTC. The result is
// always re-rendered in the canonical layout; fractional seconds are accepted
// on canonical input but truncated, with a conversion note.
func validateTimestamp(value any) (string, string, error) {
	if value == nil {
		return "", "", NewFieldError(ErrorInvalidTimestamp, FieldTimestamp, "value is null")
	}

	text, _, err := validation.Stringify(value)
	if err != nil {
		return "", "", NewFieldError(ErrorInvalidTimestamp, FieldTimestamp, fmt.Sprintf("%s value cannot be converted to text", validation.KindOf(value)))
	}

	if ts, parseErr := time.Parse(canonicalTimestampLayout, text); parseErr == nil {
		var note string
		if ts.Nanosecond() != 0 {
			note = "truncated fractional seconds from timestamp"
		}

		return ts.Format(canonicalTimestampLayout), note, nil
	}

	for _, layout := range fallbackTimestampLayouts {
		ts, parseErr := time.ParseInLocation(layout, text, time.UTC)
		if parseErr != nil {
			continue
		}

		note := fmt.Sprintf("normalized timestamp from layout %q", layout)

		return ts.Format(canonicalTimestampLayout), note, nil
	}

	return "", "", NewFieldError(ErrorInvalidTimestamp, FieldTimestamp, fmt.Sprintf("%q does not match any accepted timestamp layout", text))
}

// flattenFieldError reduces a validation error to its bare message for a
// per-field error map; the code and field stay on the structured form.
func flattenFieldError(err error) string {
	var fieldErr FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}

	return err.Error()
}

// ValidateRecord validates and normalizes one raw record.
//
// A nil or empty record is rejected structurally before any field check.
// When required keys are missing the record fails fast with one error per
// absent key and no field validation runs. Otherwise all four required
// fields are validated independently, so one bad field never hides another.
// A present description is included only when independently valid and is
// never cause for rejection.
func ValidateRecord(record RawRecord) RecordResult {
	result := RecordResult{
		Errors: make(map[string]string),
		Notes:  make(map[string]string),
	}

	if len(record) == 0 {
		result.Errors[recordField] = flattenFieldError(NewFieldError(ErrorEmptyRecord, recordField, "record is empty or not a key/value structure"))
		return result
	}

	for _, field := range requiredFields {
		if _, ok := record[field]; !ok {
			result.MissingFields = append(result.MissingFields, field)
			result.Errors[field] = flattenFieldError(NewFieldError(ErrorMissingField, field, "missing required field"))
		}
	}

	if len(result.MissingFields) > 0 {
		return result
	}

	collect := func(field, value, note string, err error) string {
		if err != nil {
			result.Errors[field] = flattenFieldError(err)
			return ""
		}

		if note != "" {
			result.Notes[field] = note
		}

		return value
	}

	location, note, err := validateText(FieldLocation, record[FieldLocation])
	result.Transaction.Location = collect(FieldLocation, location, note, err)

	amount, note, err := validateAmount(record[FieldAmount])
	result.Transaction.Amount = collect(FieldAmount, amount, note, err)

	timestamp, note, err := validateTimestamp(record[FieldTimestamp])
	result.Transaction.Timestamp = collect(FieldTimestamp, timestamp, note, err)

	id, note, err := validateText(FieldTransactionID, record[FieldTransactionID])
	result.Transaction.TransactionID = collect(FieldTransactionID, id, note, err)

	if raw, ok := record[FieldDescription]; ok {
		// Invalid descriptions are dropped silently; they never reject the record.
		if description, descNote, descErr := validateText(FieldDescription, raw); descErr == nil {
			result.Transaction.Description = description
			if descNote != "" {
				result.Notes[FieldDescription] = descNote
			}
		}
	}

	result.Valid = len(result.Errors) == 0

	return result
}
