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

// ProductService orchestrates product CRUD across images, serials and
// warranty registrations so the cross-entity invariants hold: quantity
// tracks the serial count, and deletion never strands a registration.
type ProductService struct {
	logger         *gecho.Logger
	db             *database.DB
	serialService  *SerialService
	storageService *StorageService
}

func NewProductService(logger *gecho.Logger, db *database.DB, serialService *SerialService, storageService *StorageService) *ProductService {
	return &ProductService{
		logger:         logger,
		db:             db,
		serialService:  serialService,
		storageService: storageService,
	}
}

// Create inserts a product with its image keys and serials in a single
// transaction. When serials are supplied the quantity is their count;
// otherwise the caller-provided quantity is taken as-is.
func (ps *ProductService) Create(ctx context.Context, fields *structs.ProductFields, serialCodes []string, imageKeys []string) (uuid.UUID, error) {
	product := &tables.Product{
		Name:          fields.Name,
		Description:   fields.Description,
		Price:         fields.Price,
		Quantity:      fields.Quantity,
		CategoryID:    fields.CategoryID,
		SubcategoryID: fields.SubcategoryID,
	}
	if len(serialCodes) > 0 {
		product.Quantity = len(serialCodes)
	}

	err := database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(product).Returning("id").Exec(ctx); err != nil {
			return err
		}

		if len(imageKeys) > 0 {
			images := make([]tables.ProductImage, 0, len(imageKeys))
			for _, key := range imageKeys {
				images = append(images, tables.ProductImage{ProductID: product.ID, FilePath: key})
			}
			if _, err := tx.NewInsert().Model(&images).Exec(ctx); err != nil {
				return err
			}
		}

		if len(serialCodes) > 0 {
			normalized, err := ps.serialService.InsertSerialsTx(ctx, tx, product.ID, serialCodes)
			if err != nil {
				return err
			}
			product.Quantity = len(normalized)
			if _, err := tx.NewUpdate().
				Model((*tables.Product)(nil)).
				Set("quantity = ?", product.Quantity).
				Where("id = ?", product.ID).
				Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if _, ok := lib.AsDomain(err); ok {
			return uuid.Nil, err
		}
		if mapped := lib.MapDBError(err); lib.IsKind(mapped, lib.KindConflict) {
			return uuid.Nil, mapped
		}
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", fields.Name))
		return uuid.Nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product.ID, nil
}

// Update rewrites the scalar fields and optionally replaces the entire
// serial set. Replacement is destructive: existing registrations and
// serials for the product are deleted before the new set is inserted
// unused. Incremental additions go through SerialService.AddSerials
// instead.
func (ps *ProductService) Update(ctx context.Context, productID uuid.UUID, fields *structs.ProductFields, newSerials []string, replaceSerials bool) error {
	product, err := ps.fetchProduct(ctx, productID)
	if err != nil {
		return err
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		quantity := product.Quantity
		if replaceSerials {
			quantity = len(newSerials)
		} else {
			serialCount, err := tx.NewSelect().
				Model((*tables.SerialNumber)(nil)).
				Where("sn.product_id = ?", productID).
				Count(ctx)
			if err != nil {
				return err
			}
			// Quantity stays derived once serials are managed.
			if serialCount == 0 {
				quantity = fields.Quantity
			}
		}

		if _, err := tx.NewUpdate().
			Model((*tables.Product)(nil)).
			Set("name = ?", fields.Name).
			Set("description = ?", fields.Description).
			Set("price = ?", fields.Price).
			Set("quantity = ?", quantity).
			Set("category_id = ?", fields.CategoryID).
			Set("subcategory_id = ?", fields.SubcategoryID).
			Where("id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}

		if !replaceSerials {
			return nil
		}

		if _, err := tx.NewDelete().
			Model((*tables.WarrantyRegistration)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*tables.SerialNumber)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}

		normalized, err := ps.serialService.InsertSerialsTx(ctx, tx, productID, newSerials)
		if err != nil {
			return err
		}
		if len(normalized) != quantity {
			_, err = tx.NewUpdate().
				Model((*tables.Product)(nil)).
				Set("quantity = ?", len(normalized)).
				Where("id = ?", productID).
				Exec(ctx)
		}
		return err
	})
	if err != nil {
		if _, ok := lib.AsDomain(err); ok {
			return err
		}
		if mapped := lib.MapDBError(err); lib.IsKind(mapped, lib.KindConflict) {
			return mapped
		}
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", productID))
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// AttachImages appends freshly uploaded object keys to a product.
func (ps *ProductService) AttachImages(ctx context.Context, productID uuid.UUID, imageKeys []string) error {
	if len(imageKeys) == 0 {
		return nil
	}
	if _, err := ps.fetchProduct(ctx, productID); err != nil {
		return err
	}

	images := make([]tables.ProductImage, 0, len(imageKeys))
	for _, key := range imageKeys {
		images = append(images, tables.ProductImage{ProductID: productID, FilePath: key})
	}

	if _, err := ps.db.NewInsert().Model(&images).Exec(ctx); err != nil {
		ps.logger.Error("Failed to attach product images", gecho.Field("error", err), gecho.Field("product_id", productID))
		return fmt.Errorf("failed to attach images: %w", err)
	}
	return nil
}

// Delete removes a product and its children. Refused while accepted
// registrations exist; pending registrations are logged and deleted
// along with everything else, children before parent.
func (ps *ProductService) Delete(ctx context.Context, productID uuid.UUID) (*structs.DeleteProductResult, error) {
	product, err := ps.fetchProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	accepted, err := ps.db.NewSelect().
		Model((*tables.WarrantyRegistration)(nil)).
		Where("wr.product_id = ?", productID).
		Where("wr.status = ?", tables.WarrantyStatusAccepted).
		Count(ctx)
	if err != nil {
		ps.logger.Error("Failed to count accepted registrations", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if accepted > 0 {
		return nil, lib.Conflict(fmt.Sprintf("product has %d accepted warranty registrations", accepted))
	}

	pending, err := ps.db.NewSelect().
		Model((*tables.WarrantyRegistration)(nil)).
		Where("wr.product_id = ?", productID).
		Where("wr.status = ?", tables.WarrantyStatusPending).
		Count(ctx)
	if err != nil {
		ps.logger.Error("Failed to count pending registrations", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to count registrations: %w", err)
	}
	if pending > 0 {
		ps.logger.Warn("Deleting product with pending warranty registrations",
			gecho.Field("product_id", productID),
			gecho.Field("pending_count", pending))
	}

	var imageKeys []string
	err = ps.db.NewSelect().
		Model((*tables.ProductImage)(nil)).
		Column("pi.file_path").
		Where("pi.product_id = ?", productID).
		Scan(ctx, &imageKeys)
	if err != nil {
		ps.logger.Error("Failed to list product images", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}

	err = database.Transaction(ctx, func(tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*tables.WarrantyRegistration)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*tables.SerialNumber)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}
		if _, err := tx.NewDelete().
			Model((*tables.ProductImage)(nil)).
			Where("product_id = ?", productID).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().
			Model((*tables.Product)(nil)).
			Where("id = ?", productID).
			Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	// Bucket cleanup is best-effort; orphaned objects are harmless.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), presignTimeout)
		defer cancel()
		for _, stored := range imageKeys {
			_ = ps.storageService.Delete(ctx, ExtractKey(stored))
		}
	}()

	return &structs.DeleteProductResult{ProductName: product.Name}, nil
}

// List returns all products hydrated with catalog names and signed
// image URLs, newest first.
func (ps *ProductService) List(ctx context.Context) ([]structs.ProductResponse, error) {
	var products []tables.Product
	err := database.WithRetry(ctx, func() error {
		products = nil
		return ps.db.NewSelect().
			Model(&products).
			ColumnExpr("p.*").
			ColumnExpr("c.name AS category_name").
			ColumnExpr("sc.name AS subcategory_name").
			Join("JOIN categories AS c ON c.id = p.category_id").
			Join("LEFT JOIN subcategories AS sc ON sc.id = p.subcategory_id").
			Relation("Images").
			Order("p.created_at DESC").
			Scan(ctx)
	})
	if err != nil {
		ps.logger.Error("Failed to list products", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	responses := make([]structs.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ps.toResponse(ctx, &products[i]))
	}
	return responses, nil
}

// Get returns one product hydrated the same way as List.
func (ps *ProductService) Get(ctx context.Context, productID uuid.UUID) (*structs.ProductResponse, error) {
	product := new(tables.Product)
	err := database.WithRetry(ctx, func() error {
		return ps.db.NewSelect().
			Model(product).
			ColumnExpr("p.*").
			ColumnExpr("c.name AS category_name").
			ColumnExpr("sc.name AS subcategory_name").
			Join("JOIN categories AS c ON c.id = p.category_id").
			Join("LEFT JOIN subcategories AS sc ON sc.id = p.subcategory_id").
			Relation("Images").
			Where("p.id = ?", productID).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("product not found")
		}
		ps.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	response := ps.toResponse(ctx, product)
	return &response, nil
}

func (ps *ProductService) fetchProduct(ctx context.Context, productID uuid.UUID) (*tables.Product, error) {
	product := new(tables.Product)
	err := ps.db.NewSelect().
		Model(product).
		Where("p.id = ?", productID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.NotFound("product not found")
		}
		ps.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// toResponse signs each stored image key into a temporary URL. Stored
// values may be legacy full URLs, so the key is extracted first to
// avoid signing an already signed URL.
func (ps *ProductService) toResponse(ctx context.Context, product *tables.Product) structs.ProductResponse {
	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		signed, err := ps.storageService.Presign(ctx, ExtractKey(img.FilePath))
		if err != nil {
			// Already logged; a product with a broken image link is
			// still worth returning.
			continue
		}
		images = append(images, signed)
	}

	return structs.ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Price:           product.Price,
		Quantity:        product.Quantity,
		CategoryID:      product.CategoryID,
		CategoryName:    product.CategoryName,
		SubcategoryID:   product.SubcategoryID,
		SubcategoryName: product.SubcategoryName,
		CreatedAt:       product.CreatedAt,
		Images:          images,
	}
}
