package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"pixel-trivia-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// categoryDocument is the JSONB shape stored per category.
type categoryDocument struct {
	Category  domain.Category   `json:"category"`
	Questions []domain.Question `json:"questions"`
}

// CatalogLoader loads category documents from Postgres. It is an optional
// content supply behind the same loader contract as the static dataset; the
// session core is unaware of it.
type CatalogLoader struct {
	pool *pgxpool.Pool
}

func NewCatalogLoader(pool *pgxpool.Pool) *CatalogLoader {
	return &CatalogLoader{pool: pool}
}

func (l *CatalogLoader) LoadCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	doc, err := l.loadDocument(ctx, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	return doc.Category, nil
}

func (l *CatalogLoader) LoadQuestions(ctx context.Context, categoryID string) ([]domain.Question, error) {
	doc, err := l.loadDocument(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return doc.Questions, nil
}

func (l *CatalogLoader) LoadCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := l.pool.Query(ctx, `SELECT data FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		var doc categoryDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal category: %w", err)
		}
		categories = append(categories, doc.Category)
	}
	return categories, rows.Err()
}

func (l *CatalogLoader) loadDocument(ctx context.Context, categoryID string) (categoryDocument, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM categories WHERE id=$1`, categoryID).Scan(&raw)
	if err != nil {
		return categoryDocument{}, fmt.Errorf("load category %s: %w", categoryID, err)
	}
	var doc categoryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return categoryDocument{}, fmt.Errorf("unmarshal category %s: %w", categoryID, err)
	}
	return doc, nil
}
