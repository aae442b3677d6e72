package api

import (
	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"

	"github.com/anritvox/backend-anritvox/api/auth"
	"github.com/anritvox/backend-anritvox/api/catalog"
	"github.com/anritvox/backend-anritvox/api/contact"
	"github.com/anritvox/backend-anritvox/api/health"
	"github.com/anritvox/backend-anritvox/api/middleware"
	"github.com/anritvox/backend-anritvox/api/products"
	"github.com/anritvox/backend-anritvox/api/serials"
	"github.com/anritvox/backend-anritvox/api/warranty"
	"github.com/anritvox/backend-anritvox/database"
	"github.com/anritvox/backend-anritvox/services"
	"github.com/anritvox/backend-anritvox/structs"
)

type routerManager struct {
	mw             *middleware.Middleware
	authRoutes     *auth.AuthRoutesManager
	catalogRoutes  *catalog.CatalogRoutesManager
	productRoutes  *products.ProductRoutesManager
	serialRoutes   *serials.SerialRoutesManager
	warrantyRoutes *warranty.WarrantyRoutesManager
	contactRoutes  *contact.ContactRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config, mw *middleware.Middleware) (*routerManager, error) {
	storageService, err := services.NewStorageService(logger, cfg)
	if err != nil {
		return nil, err
	}

	emailService := services.NewEmailService(logger, cfg)
	cacheService := services.NewCacheService(logger, cfg)
	serialService := services.NewSerialService(logger, db)
	warrantyService := services.NewWarrantyService(logger, db, serialService, emailService)
	productService := services.NewProductService(logger, db, serialService, storageService)
	catalogService := services.NewCatalogService(logger, db)
	contactService := services.NewContactService(logger, db, emailService)
	authService := services.NewAuthService(logger, cfg, db)
	healthService := services.NewHealthService(logger, db, cacheService)

	return &routerManager{
		mw:             mw,
		authRoutes:     auth.NewAuthRoutesManager(logger, authService),
		catalogRoutes:  catalog.NewCatalogRoutesManager(logger, catalogService),
		productRoutes:  products.NewProductRoutesManager(logger, productService, storageService),
		serialRoutes:   serials.NewSerialRoutesManager(logger, serialService),
		warrantyRoutes: warranty.NewWarrantyRoutesManager(logger, warrantyService),
		contactRoutes:  contact.NewContactRoutesManager(logger, contactService),
		healthRoutes:   health.NewHealthRoutesManager(healthService),
	}, nil
}

// RegisterRoutes mounts the public surface and the authenticated admin
// subrouter under /api.
func (rm *routerManager) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		rm.authRoutes.RegisterRoutes(r)
		rm.catalogRoutes.RegisterRoutes(r)
		rm.productRoutes.RegisterRoutes(r)
		rm.serialRoutes.RegisterRoutes(r)
		rm.warrantyRoutes.RegisterRoutes(r)
		rm.contactRoutes.RegisterRoutes(r)
		rm.healthRoutes.RegisterRoutes(r)

		r.Route("/admin", func(r chi.Router) {
			r.Use(rm.mw.AdminAuthMiddleware)

			rm.catalogRoutes.RegisterAdminRoutes(r)
			rm.productRoutes.RegisterAdminRoutes(r)
			rm.serialRoutes.RegisterAdminRoutes(r)
			rm.warrantyRoutes.RegisterAdminRoutes(r)
			rm.contactRoutes.RegisterAdminRoutes(r)
		})
	})
}
