package wire

import (
	"tic-marketplace/internal/adaptor"
	"tic-marketplace/pkg/middleware"
	"tic-marketplace/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	issuer *token.Issuer,
	log *zap.Logger,
) {
	r.Route("/api/productos", func(r chi.Router) {
		r.Use(middleware.Auth(issuer, log))

		// Static segments go before the {id} wildcard
		r.Get("/categorias", productHandler.GetCategories)
		r.Post("/categorias", productHandler.CreateCategory)
		r.Put("/categorias/{id}", productHandler.UpdateCategory)
		r.Delete("/categorias/{id}", productHandler.DeleteCategory)

		r.Get("/buscar/{codigo}", productHandler.GetByCode)
		r.Put("/actualizar-stock", productHandler.UpdateStock)

		r.Get("/export-excel", productHandler.ExportExcel)
		r.Post("/import-excel", productHandler.ImportExcel)
		r.Get("/import-excel", productHandler.ImportExcelNotAllowed)

		r.Get("/", productHandler.GetAll)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.GetByID)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})
}
