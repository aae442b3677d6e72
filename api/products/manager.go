package products

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/services"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	storageService *services.StorageService,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		storageService: storageService,
	}
}

// RegisterRoutes mounts the public read endpoints.
func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/{id}", prm.FetchProductByID)
}

// RegisterAdminRoutes mounts the mutation endpoints on the
// authenticated admin subrouter.
func (prm *ProductRoutesManager) RegisterAdminRoutes(r chi.Router) {
	r.Post("/products", prm.CreateProduct)
	r.Put("/products/{id}", prm.UpdateProduct)
	r.Delete("/products/{id}", prm.DeleteProduct)
}
