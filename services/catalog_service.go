package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/lib"
	"github.com/anritvox/backend-anritvox/structs"
	"github.com/anritvox/backend-anritvox/structs/tables"
)

// CatalogService manages the category and subcategory reference data.
// The only guarded operation is category deletion, which is refused
// while products still reference the category.
type CatalogService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCatalogService(logger *gecho.Logger, db *database.DB) *CatalogService {
	return &CatalogService{
		logger: logger,
		db:     db,
	}
}

func (cs *CatalogService) ListCategories(ctx context.Context) ([]tables.Category, error) {
	var categories []tables.Category
	err := cs.db.NewSelect().
		Model(&categories).
		Order("c.name ASC").
		Scan(ctx)
	if err != nil {
		cs.logger.Error("Failed to list categories", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	if categories == nil {
		categories = []tables.Category{}
	}
	return categories, nil
}

func (cs *CatalogService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*tables.Category, error) {
	category := new(tables.Category)
	err := cs.db.NewSelect().
		Model(category).
		Where("c.id = ?", categoryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("category not found")
		}
		cs.logger.Error("Failed to get category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (cs *CatalogService) CreateCategory(ctx context.Context, req *structs.CategoryRequest) (*tables.Category, error) {
	category := &tables.Category{Name: req.Name}
	_, err := cs.db.NewInsert().Model(category).Returning("*").Exec(ctx)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			return nil, lib.Conflict("category already exists")
		}
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (cs *CatalogService) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *structs.CategoryRequest) (*tables.Category, error) {
	category := new(tables.Category)
	err := cs.db.NewUpdate().
		Model(category).
		Set("name = ?", req.Name).
		Where("id = ?", categoryID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("category not found")
		}
		if lib.IsUniqueViolation(err) {
			return nil, lib.Conflict("category already exists")
		}
		cs.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category and its subcategories. Blocked
// while any product still references the category.
func (cs *CatalogService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	exists, err := cs.db.NewSelect().
		Model((*tables.Category)(nil)).
		Where("c.id = ?", categoryID).
		Exists(ctx)
	if err != nil {
		cs.logger.Error("Failed to check category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return lib.NotFound("category not found")
	}

	referencing, err := cs.db.NewSelect().
		Model((*tables.Product)(nil)).
		Where("p.category_id = ?", categoryID).
		Count(ctx)
	if err != nil {
		cs.logger.Error("Failed to count category products", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return fmt.Errorf("failed to count products: %w", err)
	}
	if referencing > 0 {
		return lib.Conflict(fmt.Sprintf("category is still used by %d products", referencing))
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.Subcategory)(nil)).
			Where("category_id = ?", categoryID).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*tables.Category)(nil)).
			Where("id = ?", categoryID).
			Exec(ctx)
		return err
	})
	if err != nil {
		cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func (cs *CatalogService) ListSubcategories(ctx context.Context, categoryID *uuid.UUID) ([]tables.Subcategory, error) {
	var subcategories []tables.Subcategory
	query := cs.db.NewSelect().
		Model(&subcategories).
		ColumnExpr("sc.*").
		ColumnExpr("c.name AS category_name").
		Join("JOIN categories AS c ON c.id = sc.category_id").
		Order("sc.name ASC")
	if categoryID != nil {
		query = query.Where("sc.category_id = ?", *categoryID)
	}

	if err := query.Scan(ctx); err != nil {
		cs.logger.Error("Failed to list subcategories", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	if subcategories == nil {
		subcategories = []tables.Subcategory{}
	}
	return subcategories, nil
}

func (cs *CatalogService) GetSubcategory(ctx context.Context, subcategoryID uuid.UUID) (*tables.Subcategory, error) {
	subcategory := new(tables.Subcategory)
	err := cs.db.NewSelect().
		Model(subcategory).
		ColumnExpr("sc.*").
		ColumnExpr("c.name AS category_name").
		Join("JOIN categories AS c ON c.id = sc.category_id").
		Where("sc.id = ?", subcategoryID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("subcategory not found")
		}
		cs.logger.Error("Failed to get subcategory", gecho.Field("error", err), gecho.Field("subcategory_id", subcategoryID))
		return nil, fmt.Errorf("failed to get subcategory: %w", err)
	}
	return subcategory, nil
}

func (cs *CatalogService) CreateSubcategory(ctx context.Context, req *structs.SubcategoryRequest) (*tables.Subcategory, error) {
	exists, err := cs.db.NewSelect().
		Model((*tables.Category)(nil)).
		Where("c.id = ?", req.CategoryID).
		Exists(ctx)
	if err != nil {
		cs.logger.Error("Failed to check category", gecho.Field("error", err), gecho.Field("category_id", req.CategoryID))
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, lib.NotFound("category not found")
	}

	subcategory := &tables.Subcategory{Name: req.Name, CategoryID: req.CategoryID}
	_, err = cs.db.NewInsert().Model(subcategory).Returning("*").Exec(ctx)
	if err != nil {
		cs.logger.Error("Failed to create subcategory", gecho.Field("error", err), gecho.Field("name", req.Name))
		return nil, fmt.Errorf("failed to create subcategory: %w", err)
	}
	return subcategory, nil
}

func (cs *CatalogService) UpdateSubcategory(ctx context.Context, subcategoryID uuid.UUID, req *structs.SubcategoryRequest) (*tables.Subcategory, error) {
	subcategory := new(tables.Subcategory)
	err := cs.db.NewUpdate().
		Model(subcategory).
		Set("name = ?", req.Name).
		Set("category_id = ?", req.CategoryID).
		Where("id = ?", subcategoryID).
		Returning("*").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("subcategory not found")
		}
		cs.logger.Error("Failed to update subcategory", gecho.Field("error", err), gecho.Field("subcategory_id", subcategoryID))
		return nil, fmt.Errorf("failed to update subcategory: %w", err)
	}
	return subcategory, nil
}

// DeleteSubcategory is unconditional; products keep their nullable
// subcategory reference cleared.
func (cs *CatalogService) DeleteSubcategory(ctx context.Context, subcategoryID uuid.UUID) error {
	err := database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("subcategory_id = NULL").
			Where("subcategory_id = ?", subcategoryID).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*tables.Subcategory)(nil)).
			Where("id = ?", subcategoryID).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return lib.NotFound("subcategory not found")
		}
		return nil
	})
	if err != nil {
		if _, ok := lib.AsDomain(err); ok {
			return err
		}
		cs.logger.Error("Failed to delete subcategory", gecho.Field("error", err), gecho.Field("subcategory_id", subcategoryID))
		return fmt.Errorf("failed to delete subcategory: %w", err)
	}
	return nil
}
