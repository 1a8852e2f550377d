package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/govalues/decimal"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mirstone/ordermart/internal/adapter/storage"
	"github.com/mirstone/ordermart/internal/core/domain"
	"github.com/mirstone/ordermart/internal/core/port"
)

// OrderRepository persists Order aggregates in postgres. The order row
// and all item rows change together inside one transaction, guarded by
// the revision check described on port.OrderRepository.
type OrderRepository struct {
	db    *storage.DB
	idgen port.IdentityGenerator
}

func NewOrderRepository(db *storage.DB, idgen port.IdentityGenerator) (*OrderRepository, error) {
	return &OrderRepository{db: db, idgen: idgen}, nil
}

func (r *OrderRepository) NextIdentity() domain.OrderID {
	return r.idgen.NewOrderID()
}

func (r *OrderRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select("customer_id", "status", "currency",
			"ship_street", "ship_city", "ship_state", "ship_postal_code", "ship_country",
			"bill_street", "bill_city", "bill_state", "bill_postal_code", "bill_country",
			"version", "revision", "created_at", "modified_at").
		From("orders").
		Where(sq.Eq{"id": id.String()})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	snapshot := domain.OrderSnapshot{ID: id}
	var currency string
	var ship, bill [5]*string

	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&snapshot.CustomerID,
		&snapshot.Status,
		&currency,
		&ship[0], &ship[1], &ship[2], &ship[3], &ship[4],
		&bill[0], &bill[1], &bill[2], &bill[3], &bill[4],
		&snapshot.Version,
		&snapshot.Revision,
		&snapshot.CreatedAt,
		&snapshot.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if snapshot.ShippingAddress, err = restoreAddress(ship); err != nil {
		return nil, err
	}
	if snapshot.BillingAddress, err = restoreAddress(bill); err != nil {
		return nil, err
	}

	if snapshot.Items, err = r.readItems(ctx, id, currency); err != nil {
		return nil, err
	}

	return domain.RestoreOrder(snapshot)
}

func (r *OrderRepository) readItems(ctx context.Context, id domain.OrderID, currency string) ([]domain.OrderItemSnapshot, error) {
	statement := r.db.QueryBuilder.
		Select("product_id", "product_name", "unit_price", "quantity").
		From("order_items").
		Where(sq.Eq{"order_id": id.String()}).
		OrderBy("position")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.OrderItemSnapshot, 0)
	for rows.Next() {
		var item domain.OrderItemSnapshot
		var amount decimal.Decimal
		if err := rows.Scan(&item.ProductID, &item.ProductName, &amount, &item.Quantity); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = domain.NewMoney(amount, currency); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Save writes the aggregate atomically. Every successful write bumps
// the row's revision counter, and an existing record is updated only
// when its revision still equals the revision this copy was loaded at;
// otherwise the write is abandoned with ErrConcurrencyConflict. Draft
// edits conflict the same way lifecycle transitions do. A record that
// does not exist yet is inserted, and a duplicate insert (two callers
// creating the same id) also surfaces as a conflict.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	snapshot := order.Snapshot()

	currency := ""
	if len(snapshot.Items) > 0 {
		currency = snapshot.Items[0].UnitPrice.Currency()
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		update := r.db.QueryBuilder.Update("orders").
			Set("status", string(snapshot.Status)).
			Set("currency", currency).
			Set("version", snapshot.Version).
			Set("revision", snapshot.Revision+1).
			Set("modified_at", snapshot.ModifiedAt).
			Where(sq.Eq{"id": snapshot.ID.String(), "revision": snapshot.Revision})
		update = setAddressColumns(update, "ship", snapshot.ShippingAddress)
		update = setAddressColumns(update, "bill", snapshot.BillingAddress)

		sql, args, err := update.ToSql()
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			exists, err := existsInTx(ctx, tx, snapshot.ID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrConcurrencyConflict
			}
			if err := r.insertOrder(ctx, tx, snapshot, currency); err != nil {
				return err
			}
		}

		return r.rewriteItems(ctx, tx, snapshot)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrConcurrencyConflict
		}
		return err
	}

	order.MarkSaved()
	return nil
}

func (r *OrderRepository) insertOrder(ctx context.Context, tx pgx.Tx, snapshot domain.OrderSnapshot, currency string) error {
	shipCols := addressValues(snapshot.ShippingAddress)
	billCols := addressValues(snapshot.BillingAddress)

	statement := r.db.QueryBuilder.Insert("orders").
		Columns("id", "customer_id", "status", "currency",
			"ship_street", "ship_city", "ship_state", "ship_postal_code", "ship_country",
			"bill_street", "bill_city", "bill_state", "bill_postal_code", "bill_country",
			"version", "revision", "created_at", "modified_at").
		Values(snapshot.ID.String(), snapshot.CustomerID.String(), string(snapshot.Status), currency,
			shipCols[0], shipCols[1], shipCols[2], shipCols[3], shipCols[4],
			billCols[0], billCols[1], billCols[2], billCols[3], billCols[4],
			snapshot.Version, snapshot.Revision+1, snapshot.CreatedAt, snapshot.ModifiedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func (r *OrderRepository) rewriteItems(ctx context.Context, tx pgx.Tx, snapshot domain.OrderSnapshot) error {
	del := r.db.QueryBuilder.Delete("order_items").
		Where(sq.Eq{"order_id": snapshot.ID.String()})
	sql, args, err := del.ToSql()
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(snapshot.Items) == 0 {
		return nil
	}

	insert := r.db.QueryBuilder.Insert("order_items").
		Columns("order_id", "product_id", "product_name", "unit_price", "quantity", "position")
	for position, item := range snapshot.Items {
		insert = insert.Values(snapshot.ID.String(), item.ProductID.String(),
			item.ProductName, item.UnitPrice.Amount(), item.Quantity, position)
	}

	sql, args, err = insert.ToSql()
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, sql, args...)
	return err
}

func (r *OrderRepository) Exists(ctx context.Context, id domain.OrderID) (bool, error) {
	statement := r.db.QueryBuilder.
		Select("1").
		From("orders").
		Where(sq.Eq{"id": id.String()})

	sql, args, err := statement.ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID domain.CustomerID) ([]domain.OrderSummary, error) {
	return r.listSummaries(ctx, sq.Eq{"o.customer_id": customerID.String()})
}

func (r *OrderRepository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.OrderSummary, error) {
	return r.listSummaries(ctx, sq.Eq{"o.status": string(status)})
}

func (r *OrderRepository) listSummaries(ctx context.Context, where sq.Eq) ([]domain.OrderSummary, error) {
	statement := r.db.QueryBuilder.
		Select("o.id", "o.customer_id", "o.status", "o.currency",
			"COALESCE(SUM(i.unit_price * i.quantity), 0)",
			"COUNT(i.product_id)",
			"o.modified_at").
		From("orders o").
		LeftJoin("order_items i ON i.order_id = o.id").
		Where(where).
		GroupBy("o.id", "o.customer_id", "o.status", "o.currency", "o.modified_at").
		OrderBy("o.modified_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]domain.OrderSummary, 0)
	for rows.Next() {
		var summary domain.OrderSummary
		var currency string
		var total decimal.Decimal
		err := rows.Scan(&summary.ID, &summary.CustomerID, &summary.Status,
			&currency, &total, &summary.LineCount, &summary.ModifiedAt)
		if err != nil {
			return nil, err
		}
		if currency != "" {
			if summary.Total, err = domain.NewMoney(total, currency); err != nil {
				return nil, err
			}
		}
		list = append(list, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func existsInTx(ctx context.Context, tx pgx.Tx, id domain.OrderID) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE id = $1`, id.String()).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func setAddressColumns(builder sq.UpdateBuilder, prefix string, address *domain.Address) sq.UpdateBuilder {
	values := addressValues(address)
	return builder.
		Set(prefix+"_street", values[0]).
		Set(prefix+"_city", values[1]).
		Set(prefix+"_state", values[2]).
		Set(prefix+"_postal_code", values[3]).
		Set(prefix+"_country", values[4])
}

func addressValues(address *domain.Address) [5]*string {
	if address == nil {
		return [5]*string{}
	}
	return [5]*string{
		&address.Street,
		&address.City,
		&address.State,
		&address.PostalCode,
		&address.Country,
	}
}

func restoreAddress(columns [5]*string) (*domain.Address, error) {
	if columns[0] == nil {
		return nil, nil
	}
	for _, column := range columns[1:] {
		if column == nil {
			return nil, domain.ErrInternal
		}
	}
	address, err := domain.NewAddress(*columns[0], *columns[1], *columns[2], *columns[3], *columns[4])
	if err != nil {
		return nil, err
	}
	return &address, nil
}
