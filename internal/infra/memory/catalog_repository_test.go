package memory

import (
	"context"
	"testing"
	"time"

	"pixel-trivia-service/internal/domain"
)

func TestCatalogRepositoryCaches(t *testing.T) {
	loader := &countingLoader{CatalogLoader: DefaultCatalog()}
	repo := NewCatalogRepository(loader, time.Minute)

	if _, err := repo.QuestionsByCategory(context.Background(), "minecraft"); err != nil {
		t.Fatalf("load questions: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	// Category and questions come from the same cached entry.
	if _, err := repo.GetCategory(context.Background(), "minecraft"); err != nil {
		t.Fatalf("get category: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestCatalogRepositoryUnknownCategory(t *testing.T) {
	repo := NewCatalogRepository(DefaultCatalog(), time.Minute)
	if _, err := repo.GetCategory(context.Background(), "nope"); err != domain.ErrCategoryNotFound {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	ctx := context.Background()
	loader := DefaultCatalog()

	categories, err := loader.LoadCategories(ctx)
	if err != nil || len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d err=%v", len(categories), err)
	}
	for _, category := range categories {
		questions, err := loader.LoadQuestions(ctx, category.ID)
		if err != nil {
			t.Fatalf("load %s: %v", category.ID, err)
		}
		if len(questions) != category.QuestionCount {
			t.Fatalf("%s declares %d questions, has %d", category.ID, category.QuestionCount, len(questions))
		}
		for _, question := range questions {
			correct := 0
			for _, opt := range question.Options {
				if opt.Correct {
					correct++
				}
			}
			if correct != 1 {
				t.Fatalf("question %s has %d correct options", question.ID, correct)
			}
		}
	}
}

func TestStaticLoaderEmptyCategoryIsNotAnError(t *testing.T) {
	loader := NewStaticCatalogLoader(nil, nil)
	questions, err := loader.LoadQuestions(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected nil error for unknown category, got %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected empty sequence, got %d", len(questions))
	}
}

type countingLoader struct {
	CatalogLoader
	calls int
}

func (l *countingLoader) LoadCategory(ctx context.Context, categoryID string) (domain.Category, error) {
	l.calls++
	return l.CatalogLoader.LoadCategory(ctx, categoryID)
}
