// Package errors provides error types for order operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")
var ErrInvalidStatus = errors.New("invalid status")
var ErrTotalMismatch = errors.New("total amount does not match order items")
var ErrDuplicateOrderID = errors.New("order id already exists")

var ErrCreateOrder = errors.New("failed to create order")
var ErrCreateOrderItem = errors.New("failed to create order item")
var ErrUpdateOrder = errors.New("failed to update order")
var ErrFailedToFindOrder = errors.New("failed to find order")
var ErrFailedToFindOrderItems = errors.New("failed to find order items")
var ErrFailedToFindUserOrders = errors.New("failed to find user orders")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

// InvalidTransitionError reports a lifecycle rule violation. The order's
// current status is part of the error so callers can surface it.
type InvalidTransitionError struct {
	CurrentStatus string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order cannot be cancelled in %q status", e.CurrentStatus)
}
