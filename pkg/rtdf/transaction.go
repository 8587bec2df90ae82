package rtdf

import "time"

type TransactionStatus string

const (
	TransactionStatusUnpaid TransactionStatus = "Unpaid"
	TransactionStatusPaid   TransactionStatus = "Paid"
)

// Transaction groups one or more orders under a signed amount. A negative
// amount represents a refund or recharge.
type Transaction struct {
	PrimaryIdentifier string `bson:",omitempty"`

	UserRef string `bson:",omitempty"`

	Amount int64

	Status TransactionStatus `bson:",omitempty"`

	OrderRefs []string

	// Set on refund transactions, referencing the original
	RefundOfRef string `bson:",omitempty"`

	CreationDateTime     time.Time `bson:",omitempty"`
	ModificationDateTime time.Time `bson:",omitempty"`
}

type User struct {
	PrimaryIdentifier string `bson:",omitempty"`

	Name string `bson:",omitempty"`

	Balance int64
}
