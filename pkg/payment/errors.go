package payment

import (
	"errors"
	"fmt"
	"strings"
)

var ErrTransactionAlreadyPaid = errors.New("transaction has already been paid")
var ErrTransactionUnpaid = errors.New("transaction has not been paid")
var ErrNegativeAmountPayment = errors.New("cannot pay a negative-amount transaction")
var ErrInsufficientBalance = errors.New("user balance does not cover the transaction amount")

// AlreadyRefundedError lists exactly the orders that were already part of a
// prior refund.
type AlreadyRefundedError struct {
	OrderRefs []string
}

func (e AlreadyRefundedError) Error() string {
	return fmt.Sprintf("orders already refunded: %s", strings.Join(e.OrderRefs, ", "))
}

// OrderFulfilledError lists the orders whose service has already been
// delivered - Active or Completed orders cannot be refunded.
type OrderFulfilledError struct {
	OrderRefs []string
}

func (e OrderFulfilledError) Error() string {
	return fmt.Sprintf("orders already fulfilled: %s", strings.Join(e.OrderRefs, ", "))
}
