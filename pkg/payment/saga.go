package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/railgo/railgo/pkg/rtdf"
	"github.com/rs/zerolog/log"
)

type TransactionRepository interface {
	FindTransaction(ctx context.Context, identifier string) (*rtdf.Transaction, error)
	SaveTransaction(ctx context.Context, transaction *rtdf.Transaction) error
}

type OrderRepository interface {
	FindOrder(ctx context.Context, identifier string) (*rtdf.Order, error)
	SaveOrder(ctx context.Context, order *rtdf.Order) error
}

type UserRepository interface {
	FindUser(ctx context.Context, identifier string) (*rtdf.User, error)
	SaveUser(ctx context.Context, user *rtdf.User) error
}

type StatusNotifier interface {
	NotifyStatusChange(orderRef string, kind rtdf.OrderKind, status rtdf.OrderStatus)
}

// Saga ties orders to a payable transaction and reverses the money flow on
// cancellation. It performs no automatic retries; a failed step surfaces to
// the caller.
type Saga struct {
	Transactions TransactionRepository
	Orders       OrderRepository
	Users        UserRepository
	Notifier     StatusNotifier
}

func NewSaga(transactions TransactionRepository, orders OrderRepository, users UserRepository, notifier StatusNotifier) *Saga {
	return &Saga{
		Transactions: transactions,
		Orders:       orders,
		Users:        users,
		Notifier:     notifier,
	}
}

// Pay settles a transaction against the user's balance and flips every member
// order to Paid. The Paid notifications are the trigger the booking side
// consumes.
func (s *Saga) Pay(ctx context.Context, transactionRef string) error {
	transaction, err := s.Transactions.FindTransaction(ctx, transactionRef)
	if err != nil {
		return err
	}

	if transaction.Status == rtdf.TransactionStatusPaid {
		return ErrTransactionAlreadyPaid
	}

	if transaction.Amount < 0 {
		return ErrNegativeAmountPayment
	}

	user, err := s.Users.FindUser(ctx, transaction.UserRef)
	if err != nil {
		return err
	}

	if user.Balance < transaction.Amount {
		return ErrInsufficientBalance
	}

	user.Balance -= transaction.Amount
	if err := s.Users.SaveUser(ctx, user); err != nil {
		return err
	}

	transaction.Status = rtdf.TransactionStatusPaid
	transaction.ModificationDateTime = time.Now()
	if err := s.Transactions.SaveTransaction(ctx, transaction); err != nil {
		return err
	}

	for _, orderRef := range transaction.OrderRefs {
		order, err := s.Orders.FindOrder(ctx, orderRef)
		if err != nil {
			return err
		}

		if !order.Status.CanBecome(rtdf.OrderStatusPaid) {
			return fmt.Errorf("%w: order %s in transaction %s has status %s", rtdf.ErrInconsistentState, orderRef, transactionRef, order.Status)
		}

		order.Status = rtdf.OrderStatusPaid
		order.ModificationDateTime = time.Now()
		if err := s.Orders.SaveOrder(ctx, order); err != nil {
			return err
		}

		if s.Notifier != nil {
			s.Notifier.NotifyStatusChange(order.PrimaryIdentifier, order.Kind, rtdf.OrderStatusPaid)
		}
	}

	log.Info().Str("transaction", transactionRef).Int64("amount", transaction.Amount).Msg("Transaction paid")

	return nil
}

// RefundOrders refunds a subset of a paid transaction's orders. It produces a
// new Paid transaction with the negated subtotal for the same user; the
// original transaction stays untouched apart from the orders being marked with
// the refund transaction reference.
func (s *Saga) RefundOrders(ctx context.Context, transactionRef string, orderRefs []string) (*rtdf.Transaction, error) {
	transaction, err := s.Transactions.FindTransaction(ctx, transactionRef)
	if err != nil {
		return nil, err
	}

	if transaction.Status == rtdf.TransactionStatusUnpaid {
		return nil, ErrTransactionUnpaid
	}

	members := map[string]bool{}
	for _, memberRef := range transaction.OrderRefs {
		members[memberRef] = true
	}

	var orders []*rtdf.Order
	var fulfilled []string
	var alreadyRefunded []string

	for _, orderRef := range orderRefs {
		if !members[orderRef] {
			return nil, fmt.Errorf("%w: order %s does not belong to transaction %s", rtdf.ErrInconsistentState, orderRef, transactionRef)
		}

		order, err := s.Orders.FindOrder(ctx, orderRef)
		if err != nil {
			return nil, err
		}

		if order.Status == rtdf.OrderStatusActive || order.Status == rtdf.OrderStatusCompleted {
			fulfilled = append(fulfilled, orderRef)
		}

		if order.RefundTransactionRef != "" {
			alreadyRefunded = append(alreadyRefunded, orderRef)
		}

		orders = append(orders, order)
	}

	if len(fulfilled) > 0 {
		return nil, OrderFulfilledError{OrderRefs: fulfilled}
	}

	if len(alreadyRefunded) > 0 {
		return nil, AlreadyRefundedError{OrderRefs: alreadyRefunded}
	}

	var subtotal int64
	for _, order := range orders {
		subtotal += order.Amount
	}

	refund := &rtdf.Transaction{
		PrimaryIdentifier: uuid.New().String(),

		UserRef: transaction.UserRef,

		Amount: -subtotal,
		Status: rtdf.TransactionStatusPaid,

		OrderRefs:   orderRefs,
		RefundOfRef: transaction.PrimaryIdentifier,

		CreationDateTime:     time.Now(),
		ModificationDateTime: time.Now(),
	}

	if err := s.Transactions.SaveTransaction(ctx, refund); err != nil {
		return nil, err
	}

	for _, order := range orders {
		order.RefundTransactionRef = refund.PrimaryIdentifier
		order.ModificationDateTime = time.Now()

		if err := s.Orders.SaveOrder(ctx, order); err != nil {
			return nil, err
		}
	}

	user, err := s.Users.FindUser(ctx, transaction.UserRef)
	if err != nil {
		return nil, err
	}

	user.Balance += subtotal
	if err := s.Users.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("transaction", transactionRef).Str("refund", refund.PrimaryIdentifier).Int64("amount", refund.Amount).Msg("Refund issued")

	return refund, nil
}

// RefundTransaction is a full refund: a partial refund over the transaction's
// entire order set.
func (s *Saga) RefundTransaction(ctx context.Context, transactionRef string) (*rtdf.Transaction, error) {
	transaction, err := s.Transactions.FindTransaction(ctx, transactionRef)
	if err != nil {
		return nil, err
	}

	return s.RefundOrders(ctx, transaction.PrimaryIdentifier, transaction.OrderRefs)
}
