package adaptor

import (
	"encoding/json"
	"net/http"

	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/usecase"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// uploads larger than this are rejected before parsing
const maxImportSize = 20 << 20 // 20 MB

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

func (h *ProductHandler) respondError(w http.ResponseWriter, err error, operation string) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.log.Error("Product operation failed",
			zap.String("operation", operation),
			zap.Error(err))
	}
	utils.ResponseError(w, err)
}

// Create handles POST /api/productos
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	var req request.CreateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	resp, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.respondError(w, err, "create")
		return
	}

	utils.ResponseCreated(w, "Producto creado con éxito.", resp)
}

// GetAll handles GET /api/productos?page=1&per_page=20
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page := utils.ParseInt(r.URL.Query().Get("page"), 1)
	perPage := utils.ParseInt(r.URL.Query().Get("per_page"), 20)

	resp, err := h.service.GetAll(r.Context(), page, perPage)
	if err != nil {
		h.respondError(w, err, "list")
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// GetByID handles GET /api/productos/{id}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de producto inválido.", nil)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, err, "get")
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// GetByCode handles GET /api/productos/buscar/{codigo}
func (h *ProductHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "codigo")
	if code == "" {
		utils.ResponseBadRequest(w, "El código es obligatorio.", nil)
		return
	}

	resp, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		h.respondError(w, err, "search")
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// Update handles PUT /api/productos/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de producto inválido.", nil)
		return
	}

	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	var req request.UpdateProductRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if err := h.service.Update(r.Context(), id, callerID, utils.IsAdmin(r.Context()), &req); err != nil {
		h.respondError(w, err, "update")
		return
	}

	utils.ResponseSuccess(w, "Producto actualizado con éxito.", nil)
}

// UpdateStock handles PUT /api/productos/actualizar-stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateStockRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if err := h.service.UpdateStock(r.Context(), &req); err != nil {
		h.respondError(w, err, "update-stock")
		return
	}

	utils.ResponseSuccess(w, "Stock actualizado con éxito.", nil)
}

// Delete handles DELETE /api/productos/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de producto inválido.", nil)
		return
	}

	callerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	if err := h.service.Delete(r.Context(), id, callerID, utils.IsAdmin(r.Context())); err != nil {
		h.respondError(w, err, "delete")
		return
	}

	utils.ResponseSuccess(w, "Producto eliminado con éxito.", nil)
}

// ==================== CATEGORIES ====================

// CreateCategory handles POST /api/productos/categorias
func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req request.CategoryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	resp, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, err, "create-category")
		return
	}

	utils.ResponseCreated(w, "Categoría creada con éxito.", resp)
}

// GetCategories handles GET /api/productos/categorias
func (h *ProductHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetCategories(r.Context())
	if err != nil {
		h.respondError(w, err, "list-categories")
		return
	}

	utils.ResponseSuccess(w, "", resp)
}

// UpdateCategory handles PUT /api/productos/categorias/{id}
func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de categoría inválido.", nil)
		return
	}

	var req request.CategoryRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Cuerpo de la petición inválido.", nil)
		return
	}

	if err := h.service.UpdateCategory(r.Context(), id, &req); err != nil {
		h.respondError(w, err, "update-category")
		return
	}

	utils.ResponseSuccess(w, "Categoría actualizada con éxito.", nil)
}

// DeleteCategory handles DELETE /api/productos/categorias/{id}
func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Identificador de categoría inválido.", nil)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, err, "delete-category")
		return
	}

	utils.ResponseSuccess(w, "Categoría eliminada con éxito.", nil)
}

// ==================== EXCEL ====================

// ExportExcel handles GET /api/productos/export-excel
func (h *ProductHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.ExportExcel(r.Context())
	if err != nil {
		h.respondError(w, err, "export-excel")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="productos.xlsx"`)

	if err := f.Write(w); err != nil {
		h.log.Error("Failed to stream Excel export", zap.Error(err))
	}
}

// ImportExcel handles POST /api/productos/import-excel (multipart "file")
func (h *ProductHandler) ImportExcel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Acceso denegado, token requerido.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		utils.ResponseBadRequest(w, "No se pudo leer el archivo.", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "El archivo es obligatorio.", nil)
		return
	}
	defer file.Close()

	resp, err := h.service.ImportExcel(r.Context(), userID, file)
	if err != nil {
		h.respondError(w, err, "import-excel")
		return
	}

	utils.ResponseSuccess(w, "Importación completada.", resp)
}

// ImportExcelNotAllowed answers GET /api/productos/import-excel with a hint.
func (h *ProductHandler) ImportExcelNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.ResponseJSON(w, http.StatusMethodNotAllowed, false,
		"Método GET no permitido. Usa POST con FormData para importar Excel.", nil, nil)
}
