package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*SQLCatalog)(nil)

type sqldb interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PingContext(ctx context.Context) error
	Close() error
}

const productColumns = `
	product_id, slug, title, images, price, compare_at_price,
	rating, rating_count, badges, category, description, specs, variants
`

// SQLCatalog is the primary catalog tier backed by PostgreSQL.
// Collection order is the seed order, stable by product_id.
type SQLCatalog struct {
	sqldb sqldb
}

func NewSQLCatalog(ctx context.Context, dsn string) (SQLCatalog, error) {
	const op = "NewSQLCatalog"

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return SQLCatalog{}, fmt.Errorf("%s: %w", op, err)
	}
	connStr := stdlib.RegisterConnConfig(connConfig)
	db, _ := sql.Open("pgx", connStr)

	c := SQLCatalog{db}
	if err := c.ping(ctx); err != nil {
		return SQLCatalog{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (c SQLCatalog) ping(ctx context.Context) error {
	const op = "SQLCatalog.ping"
	if err := c.sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: database unavailable: %w", op, err)
	}
	slog.Info("catalog database is available", "op", op)
	return nil
}

func (c SQLCatalog) Close() {
	const op = "SQLCatalog.Close"
	log := slog.With("op", op)

	log.Info("closing catalog database...")
	if err := c.sqldb.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("catalog database is closed")
}

func (c SQLCatalog) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "SQLCatalog.Products"

	query := `SELECT` + productColumns + `FROM products ORDER BY product_id;`

	ps, err := c.queryProducts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (c SQLCatalog) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, bool, error) {
	const op = "SQLCatalog.ProductBySlug"

	query := `SELECT` + productColumns + `FROM products WHERE slug = $1;`

	row := c.sqldb.QueryRowContext(ctx, query, slug)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return p, true, nil
}

func (c SQLCatalog) ProductsByCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	const op = "SQLCatalog.ProductsByCategory"

	// the argument is a category name or a category slug
	query := `
		SELECT` + productColumns + `
		FROM products
		WHERE category = $1
		   OR category = (SELECT name FROM categories WHERE slug = $1)
		ORDER BY product_id;
	`

	ps, err := c.queryProducts(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (c SQLCatalog) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	const op = "SQLCatalog.SearchProducts"

	stmt := `
		SELECT` + productColumns + `
		FROM products
		WHERE title ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
		ORDER BY product_id;
	`

	ps, err := c.queryProducts(ctx, stmt, "%"+query+"%")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (c SQLCatalog) Categories(
	ctx context.Context,
) ([]domain.Category, error) {
	const op = "SQLCatalog.Categories"
	log := slog.With("op", op)

	query := `
		SELECT category_id, name, slug, description
		FROM categories ORDER BY category_id;
	`

	rows, err := c.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	var cs []domain.Category
	for rows.Next() {
		var v domain.Category
		err := rows.Scan(&v.CategoryID, &v.Name, &v.Slug, &v.Description)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cs = append(cs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cs, nil
}

func (c SQLCatalog) queryProducts(
	ctx context.Context, query string, args ...any,
) ([]domain.Product, error) {
	const op = "SQLCatalog.queryProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := c.sqldb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", "err", err)
		}
	}()

	var ps []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ps = append(ps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                             domain.Product
		imgB, badgeB, specB, variantB []byte
	)

	err := row.Scan(
		&p.ProductID, &p.Slug, &p.Title, &imgB, &p.Price, &p.CompareAtPrice,
		&p.Rating, &p.RatingCount, &badgeB, &p.Category, &p.Description,
		&specB, &variantB,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if err := json.Unmarshal(imgB, &p.Images); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal(badgeB, &p.Badges); err != nil {
		return domain.Product{}, err
	}
	if err := json.Unmarshal(specB, &p.Specs); err != nil {
		return domain.Product{}, err
	}

	var vs []variantDTO
	if err := json.Unmarshal(variantB, &vs); err != nil {
		return domain.Product{}, err
	}
	for _, v := range vs {
		p.Variants = append(p.Variants, domain.Variant{
			VariantID: v.ID, Color: v.Color, Size: v.Size, Stock: v.Stock,
		})
	}
	return p, nil
}
