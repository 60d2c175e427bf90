package ledger

import (
	"context"
	"errors"

	"github.com/ahmetkoprulu/battlepass/common/data"
	"github.com/ahmetkoprulu/battlepass/common/utils"
	"github.com/ahmetkoprulu/battlepass/models"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PgLedgerStore struct {
	db *data.PgDbContext
}

func NewPgLedgerStore(db *data.PgDbContext) *PgLedgerStore {
	return &PgLedgerStore{db: db}
}

func (s *PgLedgerStore) fail(op string, err error, fields ...zap.Field) error {
	utils.Logger.Error("Ledger store failure", append(fields, zap.String("op", op), zap.Error(err))...)
	return data.StoreFailure(op, err)
}

func (s *PgLedgerStore) GetBalance(ctx context.Context, userID string) (*models.PointsBalance, error) {
	query := `
		SELECT user_id, points, updated_at
		FROM points_balances
		WHERE user_id = $1
	`

	balance, err := scanBalance(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if data.IsNoRows(err) {
			return &models.PointsBalance{UserID: userID}, nil
		}
		return nil, s.fail("get_balance", err, zap.String("user_id", userID))
	}
	return balance, nil
}

func (s *PgLedgerStore) Debit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error) {
	balance, err := debit(ctx, s.db, userID, amount)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, s.fail("debit", err, zap.String("user_id", userID), zap.Int("amount", amount))
	}
	return balance, nil
}

// debit is the single conditional decrement shared by Debit and Purchase
func debit(ctx context.Context, q data.QueryRunner, userID string, amount int) (*models.PointsBalance, error) {
	query := `
		UPDATE points_balances
		SET points = points - $2,
			updated_at = NOW()
		WHERE user_id = $1
		AND points >= $2
		RETURNING user_id, points, updated_at
	`

	balance, err := scanBalance(q.QueryRow(ctx, query, userID, amount))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrInsufficientBalance
		}
		return nil, err
	}
	return balance, nil
}

func (s *PgLedgerStore) Credit(ctx context.Context, userID string, amount int) (*models.PointsBalance, error) {
	var row pgx.Row
	if amount >= 0 {
		query := `
			INSERT INTO points_balances (user_id, points, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id) DO UPDATE
			SET points = points_balances.points + EXCLUDED.points,
				updated_at = NOW()
			RETURNING user_id, points, updated_at
		`
		row = s.db.QueryRow(ctx, query, userID, amount)
	} else {
		query := `
			UPDATE points_balances
			SET points = points + $2,
				updated_at = NOW()
			WHERE user_id = $1
			AND points + $2 >= 0
			RETURNING user_id, points, updated_at
		`
		row = s.db.QueryRow(ctx, query, userID, amount)
	}

	balance, err := scanBalance(row)
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrWouldGoNegative
		}
		return nil, s.fail("credit", err, zap.String("user_id", userID), zap.Int("amount", amount))
	}
	return balance, nil
}

func (s *PgLedgerStore) CreateShopItem(ctx context.Context, item *models.ShopItem) error {
	query := `
		INSERT INTO shop_items (
			id, name, description, price,
			is_available, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7
		)
	`

	_, err := s.db.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price,
		item.IsAvailable, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if data.IsUniqueViolation(err) {
			return models.ErrConflict
		}
		return s.fail("create_shop_item", err, zap.String("item_id", item.ID))
	}
	return nil
}

func (s *PgLedgerStore) GetShopItem(ctx context.Context, id string) (*models.ShopItem, error) {
	query := `
		SELECT id, name, description, price, is_available, created_at, updated_at
		FROM shop_items
		WHERE id = $1
	`

	item, err := scanShopItem(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("get_shop_item", err, zap.String("item_id", id))
	}
	return item, nil
}

func (s *PgLedgerStore) ListShopItems(ctx context.Context, availableOnly bool) ([]models.ShopItem, error) {
	query := `
		SELECT id, name, description, price, is_available, created_at, updated_at
		FROM shop_items
		WHERE is_available OR NOT $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.Query(ctx, query, availableOnly)
	if err != nil {
		return nil, s.fail("list_shop_items", err)
	}
	defer rows.Close()

	items := make([]models.ShopItem, 0)
	for rows.Next() {
		item, err := scanShopItem(rows)
		if err != nil {
			return nil, s.fail("list_shop_items", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_shop_items", err)
	}

	return items, nil
}

func (s *PgLedgerStore) SetShopItemAvailability(ctx context.Context, id string, available bool) (*models.ShopItem, error) {
	query := `
		UPDATE shop_items
		SET is_available = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, price, is_available, created_at, updated_at
	`

	item, err := scanShopItem(s.db.QueryRow(ctx, query, id, available))
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("set_shop_item_availability", err, zap.String("item_id", id))
	}
	return item, nil
}

func (s *PgLedgerStore) Purchase(ctx context.Context, purchase *models.PurchaseRecord) (*models.PurchaseResult, error) {
	var result models.PurchaseResult

	err := s.db.WithTransaction(ctx, func(tx data.QueryRunner) error {
		itemQuery := `
			SELECT id, name, description, price, is_available, created_at, updated_at
			FROM shop_items
			WHERE id = $1
			FOR SHARE
		`
		item, err := scanShopItem(tx.QueryRow(ctx, itemQuery, purchase.ItemID))
		if err != nil {
			if data.IsNoRows(err) {
				return models.ErrNotFound
			}
			return err
		}
		if !item.IsAvailable {
			return models.ErrItemUnavailable
		}

		balance, err := debit(ctx, tx, purchase.UserID, item.Price)
		if err != nil {
			return err
		}

		insertQuery := `
			INSERT INTO purchases (
				id, user_id, item_id, price_paid, purchased_at, received
			) VALUES (
				$1, $2, $3, $4, $5, FALSE
			)
		`
		if _, err := tx.Exec(ctx, insertQuery,
			purchase.ID, purchase.UserID, item.ID, item.Price, purchase.PurchasedAt,
		); err != nil {
			return err
		}

		result.Purchase = *purchase
		result.Purchase.PricePaid = item.Price
		result.Purchase.Received = false
		result.Purchase.Item = item
		result.Balance = *balance
		return nil
	})
	if err != nil {
		if isDomainError(err) {
			return nil, err
		}
		return nil, s.fail("purchase", err,
			zap.String("user_id", purchase.UserID),
			zap.String("item_id", purchase.ItemID),
		)
	}

	return &result, nil
}

func (s *PgLedgerStore) ListPurchases(ctx context.Context, userID string) ([]models.PurchaseRecord, error) {
	query := `
		SELECT p.id, p.user_id, p.item_id, p.price_paid, p.purchased_at, p.received,
			   i.id, i.name, i.description, i.price, i.is_available, i.created_at, i.updated_at
		FROM purchases p
		JOIN shop_items i ON i.id = p.item_id
		WHERE p.user_id = $1
		ORDER BY p.purchased_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, s.fail("list_purchases", err, zap.String("user_id", userID))
	}
	defer rows.Close()

	purchases := make([]models.PurchaseRecord, 0)
	for rows.Next() {
		p := models.PurchaseRecord{Item: &models.ShopItem{}}
		err := rows.Scan(
			&p.ID, &p.UserID, &p.ItemID, &p.PricePaid, &p.PurchasedAt, &p.Received,
			&p.Item.ID, &p.Item.Name, &p.Item.Description, &p.Item.Price,
			&p.Item.IsAvailable, &p.Item.CreatedAt, &p.Item.UpdatedAt,
		)
		if err != nil {
			return nil, s.fail("list_purchases", err, zap.String("user_id", userID))
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("list_purchases", err, zap.String("user_id", userID))
	}

	return purchases, nil
}

func (s *PgLedgerStore) MarkPurchaseReceived(ctx context.Context, userID, purchaseID string) (*models.PurchaseRecord, error) {
	query := `
		UPDATE purchases
		SET received = TRUE
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, item_id, price_paid, purchased_at, received
	`

	var p models.PurchaseRecord
	err := s.db.QueryRow(ctx, query, purchaseID, userID).Scan(
		&p.ID, &p.UserID, &p.ItemID, &p.PricePaid, &p.PurchasedAt, &p.Received,
	)
	if err != nil {
		if data.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, s.fail("mark_purchase_received", err, zap.String("user_id", userID), zap.String("purchase_id", purchaseID))
	}
	return &p, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, models.ErrNotFound) ||
		errors.Is(err, models.ErrItemUnavailable) ||
		errors.Is(err, models.ErrInsufficientBalance)
}

func scanBalance(row pgx.Row) (*models.PointsBalance, error) {
	b := &models.PointsBalance{}
	if err := row.Scan(&b.UserID, &b.Points, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return b, nil
}

func scanShopItem(row pgx.Row) (*models.ShopItem, error) {
	item := &models.ShopItem{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Description, &item.Price,
		&item.IsAvailable, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}
