package store

import (
	"context"
	"errors"

	ordererrors "github.com/avlasov/sneakerhub/internal/order/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const orderColumns = `order_id, user_id, status, total_amount, order_date, status_updated_at,
	estimated_delivery, tracking_number, shipping_name, shipping_street, shipping_city,
	shipping_state, shipping_zip_code`

type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new OrderStore backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) Create(ctx context.Context, order *Order, items []OrderItem) error {
	// Header and items are written in one transaction: a failed item insert
	// must not leave a partial order behind.
	return p.withTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO orders (
				order_id, user_id, status, total_amount, estimated_delivery,
				shipping_name, shipping_street, shipping_city, shipping_state, shipping_zip_code
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			order.OrderID, order.UserID, order.Status, order.TotalAmount, order.EstimatedDelivery,
			order.ShippingName, order.ShippingStreet, order.ShippingCity, order.ShippingState, order.ShippingZipCode,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ordererrors.ErrDuplicateOrderID
			}
			return ordererrors.ErrCreateOrder
		}
		for _, item := range items {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_items (order_id, product_id, name, size, price, quantity)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				order.OrderID, item.ProductID, item.Name, item.Size, item.Price, item.Quantity,
			)
			if err != nil {
				return ordererrors.ErrCreateOrderItem
			}
		}
		return nil
	})
}

func (p *PgStore) FindByID(ctx context.Context, orderID string, userID uuid.UUID) (*Order, []OrderItem, error) {
	var order *Order
	var items []OrderItem

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 AND user_id = $2`,
			orderID, userID)
		o, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ordererrors.ErrOrderNotFound
			}
			return ordererrors.ErrFailedToFindOrder
		}
		i, err := loadItems(ctx, tx, orderID)
		if err != nil {
			return ordererrors.ErrFailedToFindOrderItems
		}
		order = o
		items = i
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return order, items, nil
}

func (p *PgStore) ListByUser(ctx context.Context, userID uuid.UUID, includeCancelled bool) ([]Order, map[string][]OrderItem, error) {
	var orders []Order
	itemsByOrder := make(map[string][]OrderItem)

	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY order_date DESC`
	if !includeCancelled {
		query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 AND status <> 'Cancelled' ORDER BY order_date DESC`
	}

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, userID)
		if err != nil {
			return ordererrors.ErrFailedToFindUserOrders
		}
		collected, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Order, error) {
			o, err := scanOrder(row)
			if err != nil {
				return Order{}, err
			}
			return *o, nil
		})
		if err != nil {
			return ordererrors.ErrFailedToFindUserOrders
		}
		for _, o := range collected {
			items, err := loadItems(ctx, tx, o.OrderID)
			if err != nil {
				return ordererrors.ErrFailedToFindOrderItems
			}
			itemsByOrder[o.OrderID] = items
		}
		orders = collected
		return nil
	})
	if txErr != nil {
		return nil, nil, txErr
	}

	return orders, itemsByOrder, nil
}

func (p *PgStore) UpdateStatus(ctx context.Context, orderID, status string, trackingNumber *string) (*Order, error) {
	// COALESCE keeps an already-assigned tracking number: a repeated
	// transition to Shipped never overwrites the first one.
	row := p.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $2,
		    status_updated_at = now(),
		    tracking_number = COALESCE(tracking_number, $3)
		WHERE order_id = $1
		RETURNING `+orderColumns,
		orderID, status, trackingNumber,
	)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ordererrors.ErrOrderNotFound
		}
		return nil, ordererrors.ErrUpdateOrder
	}
	return order, nil
}

func (p *PgStore) Cancel(ctx context.Context, orderID string, userID uuid.UUID) (*Order, error) {
	var order *Order

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		// Single conditional write: the status check and the transition are
		// one statement, so two concurrent cancels cannot both succeed.
		row := tx.QueryRow(ctx, `
			UPDATE orders
			SET status = 'Cancelled', status_updated_at = now()
			WHERE order_id = $1 AND user_id = $2 AND status = 'Processing'
			RETURNING `+orderColumns,
			orderID, userID,
		)
		o, err := scanOrder(row)
		if err == nil {
			order = o
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return ordererrors.ErrUpdateOrder
		}

		// Distinguish a missing (or foreign) order from one that is past
		// Processing.
		row = tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_id = $1 AND user_id = $2`,
			orderID, userID)
		current, err := scanOrder(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ordererrors.ErrOrderNotFound
			}
			return ordererrors.ErrFailedToFindOrder
		}
		return &ordererrors.InvalidTransitionError{CurrentStatus: current.Status}
	})
	if txErr != nil {
		return nil, txErr
	}

	return order, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return ordererrors.ErrTransactionBegin
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return ordererrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return ordererrors.ErrTransactionCommit
	}
	return nil
}

func loadItems(ctx context.Context, tx pgx.Tx, orderID string) ([]OrderItem, error) {
	rows, err := tx.Query(ctx, `
		SELECT order_id, product_id, name, size, price, quantity
		FROM order_items WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (OrderItem, error) {
		var i OrderItem
		err := row.Scan(&i.OrderID, &i.ProductID, &i.Name, &i.Size, &i.Price, &i.Quantity)
		return i, err
	})
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.OrderID, &o.UserID, &o.Status, &o.TotalAmount, &o.OrderDate, &o.StatusUpdatedAt,
		&o.EstimatedDelivery, &o.TrackingNumber, &o.ShippingName, &o.ShippingStreet,
		&o.ShippingCity, &o.ShippingState, &o.ShippingZipCode,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
