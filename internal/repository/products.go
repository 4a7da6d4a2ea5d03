package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getProductByID = `
SELECT id, name, description, category, image_url, created_at
FROM products
WHERE id = $1
`

func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	return scanProduct(row)
}

const listProducts = `
SELECT id, name, description, category, image_url, created_at
FROM products
ORDER BY name
`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const getProductVariant = `
SELECT id, product_id, weight_label, price
FROM product_variants
WHERE product_id = $1 AND weight_label = $2
`

type GetProductVariantParams struct {
	ProductID   pgtype.UUID
	WeightLabel string
}

func (q *Queries) GetProductVariant(ctx context.Context, arg GetProductVariantParams) (ProductVariant, error) {
	row := q.db.QueryRow(ctx, getProductVariant, arg.ProductID, arg.WeightLabel)
	var v ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.WeightLabel, &v.Price)
	return v, err
}

const listProductVariants = `
SELECT id, product_id, weight_label, price
FROM product_variants
WHERE product_id = $1
ORDER BY price
`

func (q *Queries) ListProductVariants(ctx context.Context, productID pgtype.UUID) ([]ProductVariant, error) {
	rows, err := q.db.Query(ctx, listProductVariants, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []ProductVariant
	for rows.Next() {
		var v ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.WeightLabel, &v.Price); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.ImageUrl,
		&p.CreatedAt,
	)
	return p, err
}
