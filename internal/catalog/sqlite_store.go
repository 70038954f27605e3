package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const productColumns = `id, name, brand, description, price, original_price, image, category, eco_score`

// SQLiteStore implements Store on top of an SQLite database whose schema and
// sample rows are applied by RunMigrations.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// RunMigrations applies the embedded migrations up to the latest version.
func (s *SQLiteStore) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) GetAll(ctx context.Context) ([]domain.Product, error) {
	return s.Find(ctx, domain.ProductFilter{})
}

func (s *SQLiteStore) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.Find(ctx, domain.ProductFilter{Category: category})
}

func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, domain.Unavailable("failed to query product", err)
	}

	tags, err := s.loadTags(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	p.Tags = tags[p.ID]
	return &p, nil
}

// Find narrows by category and tag in SQL. Price bounds are applied on the
// decoded decimals so comparisons stay exact.
func (s *SQLiteStore) Find(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Tag != "" {
		where = append(where, "EXISTS (SELECT 1 FROM product_tags t WHERE t.product_id = products.id AND t.tag = ?)")
		args = append(args, filter.Tag)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.Unavailable("failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Unavailable("failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("row iteration error", err)
	}

	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	tags, err := s.loadTags(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := products[:0]
	for _, p := range products {
		p.Tags = tags[p.ID]
		if filter.Matches(p) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) loadTags(ctx context.Context, ids []int64) (map[int64][]string, error) {
	tags := make(map[int64][]string, len(ids))
	if len(ids) == 0 {
		return tags, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, tag FROM product_tags WHERE product_id IN (`+placeholders+`) ORDER BY product_id, position`,
		args...)
	if err != nil {
		return nil, domain.Unavailable("failed to query tags", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id  int64
			tag string
		)
		if err := rows.Scan(&id, &tag); err != nil {
			return nil, domain.Unavailable("failed to scan tag", err)
		}
		tags[id] = append(tags[id], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("tag iteration error", err)
	}
	return tags, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Brand,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Image,
		&p.Category,
		&p.EcoScore,
	)
	return p, err
}
