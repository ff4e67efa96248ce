package transaction_test

import (
	"fmt"

	"github.com/CentsibleLabs/lib-validation/validation/transaction"
)

func ExampleValidateRecord() {
	record := transaction.RawRecord{
		"location":       "Coffee Shop",
		"amount":         "4.5",
		"timestamp":      "2023-05-01T10:00:00Z",
		"transaction_id": "t1",
	}

	result := transaction.ValidateRecord(record)

	fmt.Println(result.Valid)
	fmt.Println(result.Transaction.Amount)
	fmt.Println(result.Transaction.Timestamp)

	// Output:
	// true
	// 4.50
	// 2023-05-01T10:00:00Z
}

func ExampleValidateRecord_invalid() {
	record := transaction.RawRecord{
		"location":       "Store",
		"amount":         "-5.00",
		"timestamp":      "2023-05-01",
		"transaction_id": "t2",
	}

	result := transaction.ValidateRecord(record)

	fmt.Println(result.Valid)
	fmt.Println(result.Errors["amount"])
	fmt.Println(result.Transaction.Timestamp)

	// Output:
	// false
	// amount must be greater than zero, got -5
	// 2023-05-01T00:00:00Z
}
