package transaction

import (
	"fmt"
)

// RawRecord is one untrusted transaction record as received from the feed.
// Arbitrary or missing keys, wrong types, and malformed values are expected.
type RawRecord map[string]any

// Keys expected on every raw record.
const (
	FieldLocation      = "location"
	FieldAmount        = "amount"
	FieldTimestamp     = "timestamp"
	FieldTransactionID = "transaction_id"
	FieldDescription   = "description"
)

// recordField keys structural (whole-record) errors in an error map.
const recordField = "record"

// requiredFields are validated on every record; description is optional.
var requiredFields = []string{FieldLocation, FieldAmount, FieldTimestamp, FieldTransactionID}

// Transaction is the validated, canonical transaction shape consumed
// downstream. Amount carries exactly two fractional digits and Timestamp is
// RFC 3339 text with a zone designator.
type Transaction struct {
	Location      string `json:"location"`
	Amount        string `json:"amount"`
	Timestamp     string `json:"timestamp"`
	TransactionID string `json:"transaction_id"`
	Description   string `json:"description,omitempty"`
}

// ErrorCode is a domain error code used by record validations.
type ErrorCode string

const (
	// ErrorEmptyRecord indicates the record is empty or not a key/value structure.
	ErrorEmptyRecord ErrorCode = "empty_record"
	// ErrorMissingField indicates a required key is absent from the record.
	ErrorMissingField ErrorCode = "missing_field"
	// ErrorNotText indicates a value is null or cannot be rendered as text.
	ErrorNotText ErrorCode = "not_text"
	// ErrorEmptyValue indicates a textual value is empty or whitespace-only.
	ErrorEmptyValue ErrorCode = "empty_value"
	// ErrorInvalidAmount indicates an amount does not parse as a decimal.
	ErrorInvalidAmount ErrorCode = "invalid_amount"
	// ErrorAmountRange indicates a parsed amount is zero or negative.
	ErrorAmountRange ErrorCode = "amount_range"
	// ErrorInvalidTimestamp indicates a timestamp matches no accepted layout.
	ErrorInvalidTimestamp ErrorCode = "invalid_timestamp"
	// ErrorDuplicateID indicates a transaction id already seen in the batch.
	ErrorDuplicateID ErrorCode = "duplicate_id"
)

// FieldError represents a structured validation error for one field.
type FieldError struct {
	Code    ErrorCode
	Field   string
	Message string
}

// Error returns the formatted field error string.
func (e FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}

	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
}

// NewFieldError creates a field error with code, field, and message.
func NewFieldError(code ErrorCode, field, message string) error {
	return FieldError{Code: code, Field: field, Message: message}
}

// RecordResult is the outcome of validating one raw record.
//
// Transaction holds every normalized field that passed; it is fully formed
// only when Valid is true. Errors maps field names to human-readable
// messages (plus the "record" key for structural rejections). Notes carries
// non-fatal conversion notes per field. MissingFields lists the required
// keys absent from the record; when non-empty, no field-level validation was
// attempted.
type RecordResult struct {
	Valid         bool
	Transaction   Transaction
	Errors        map[string]string
	Notes         map[string]string
	MissingFields []string
}

// InvalidRecord reports one rejected record with its original batch position.
type InvalidRecord struct {
	Index  int               `json:"index"`
	Record RawRecord         `json:"record"`
	Errors map[string]string `json:"errors"`
}

// Stats is the derived aggregate for one batch run. It is recomputed fully
// on every call and satisfies:
//
//	Valid + Invalid == Total
//	Invalid == Empty + MissingFields + InvalidFormat
//
// Duplicates is a cross-cutting count already included in InvalidFormat.
type Stats struct {
	Total         int `json:"total"`
	Valid         int `json:"valid"`
	Invalid       int `json:"invalid"`
	Empty         int `json:"empty"`
	MissingFields int `json:"missing_fields"`
	InvalidFormat int `json:"invalid_format"`
	Duplicates    int `json:"duplicates"`
}

// BatchResult is the three-part output of a batch run: normalized valid
// transactions and invalid reports both in input order, plus statistics.
type BatchResult struct {
	Valid   []Transaction   `json:"valid"`
	Invalid []InvalidRecord `json:"invalid"`
	Stats   Stats           `json:"stats"`
}
