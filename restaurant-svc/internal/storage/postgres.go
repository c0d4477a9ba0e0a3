package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"restaurant-api/restaurant-svc/internal/domain"
	"restaurant-api/restaurant-svc/internal/service"

	"github.com/lib/pq"
)

const pqForeignKeyViolation = "23503"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var (
	_ service.CatalogRepository = (*PostgresRepository)(nil)
	_ service.CartRepository    = (*PostgresRepository)(nil)
	_ service.OrderRepository   = (*PostgresRepository)(nil)
	_ service.ProfileRepository = (*PostgresRepository)(nil)
)

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}

func notFound(err error, format string, args ...interface{}) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: "+format, append([]interface{}{domain.ErrNotFound}, args...)...)
	}
	return err
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, title FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int) (*domain.Category, error) {
	var c domain.Category
	err := r.DB.QueryRowContext(ctx, `SELECT id, title FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Title)
	if err != nil {
		return nil, notFound(err, "category %d", id)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO categories (title) VALUES ($1) RETURNING id`, category.Title,
	).Scan(&category.ID)
}

var menuOrderClauses = map[string]string{
	"price":  "price ASC, id ASC",
	"-price": "price DESC, id ASC",
	"title":  "title ASC, id ASC",
	"-title": "title DESC, id ASC",
}

func menuWhere(filter domain.MenuFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.CategoryID > 0 {
		args = append(args, filter.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListMenuItems returns one page of items and the count of all matches.
// The filter is expected to be normalized already.
func (r *PostgresRepository) ListMenuItems(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, int, error) {
	where, args := menuWhere(filter)

	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_items`+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	order, ok := menuOrderClauses[filter.Ordering]
	if !ok {
		order = "id ASC"
	}
	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query := fmt.Sprintf(`SELECT id, title, price, category_id FROM menu_items%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		where, order, len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Price, &item.CategoryID); err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	return items, count, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, title, price, category_id FROM menu_items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Title, &item.Price, &item.CategoryID)
	if err != nil {
		return nil, notFound(err, "menu item %d", id)
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO menu_items (title, price, category_id) VALUES ($1, $2, $3) RETURNING id`,
		item.Title, item.Price, item.CategoryID,
	).Scan(&item.ID)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: category %d", domain.ErrNotFound, item.CategoryID)
	}
	return err
}
