package usecase

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/data/repository"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/internal/dto/response"
	"tic-marketplace/pkg/apperr"
	"tic-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const productSheet = "Productos"

type ProductService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error)
	GetByCode(ctx context.Context, code string) (*response.ProductResponse, error)
	GetAll(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.ProductResponse], error)
	Update(ctx context.Context, id, callerID uuid.UUID, callerIsAdmin bool, req *request.UpdateProductRequest) error
	UpdateStock(ctx context.Context, req *request.UpdateStockRequest) error
	Delete(ctx context.Context, id, callerID uuid.UUID, callerIsAdmin bool) error

	CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	GetCategories(ctx context.Context) ([]response.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req *request.CategoryRequest) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ExportExcel(ctx context.Context) (*excelize.File, error)
	ImportExcel(ctx context.Context, userID uuid.UUID, r io.Reader) (*response.ImportResult, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, log *zap.Logger) ProductService {
	return &productService{
		products:   products,
		categories: categories,
		log:        log,
	}
}

func (s *productService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	existing, err := s.products.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "Ya existe un producto con ese código.")
	}

	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, apperr.Validation("Categoría inválida.")
		}
		categoryID = &id
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		CategoryID:  categoryID,
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Photo:       req.Photo,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*response.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if product == nil {
		return nil, apperr.New(apperr.KindNotFound, "Producto no encontrado.")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetByCode(ctx context.Context, code string) (*response.ProductResponse, error) {
	product, err := s.products.FindByCode(ctx, code)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if product == nil {
		return nil, apperr.New(apperr.KindNotFound, "Producto no encontrado.")
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetAll(ctx context.Context, page, perPage int) (*response.PaginatedResponse[response.ProductResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := utils.CalculateOffset(page, perPage)

	products, err := s.products.FindAll(ctx, perPage, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	total, err := s.products.CountAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	items := make([]response.ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, response.ProductToResponse(product))
	}

	return response.NewPaginatedResponse(items, page, perPage, total), nil
}

func (s *productService) Update(ctx context.Context, id, callerID uuid.UUID, callerIsAdmin bool, req *request.UpdateProductRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(utils.FormatValidationErrors(errs))
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if product == nil {
		return apperr.New(apperr.KindNotFound, "Producto no encontrado.")
	}

	// Only the owner or an admin may modify a product
	if !callerIsAdmin && product.UserID != callerID {
		return apperr.New(apperr.KindAuthorization, "No tienes permiso para modificar este producto.")
	}

	if req.Code != nil {
		product.Code = *req.Code
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return apperr.Validation("Categoría inválida.")
		}
		product.CategoryID = &categoryID
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Photo != nil {
		product.Photo = req.Photo
	}
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

func (s *productService) UpdateStock(ctx context.Context, req *request.UpdateStockRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(utils.FormatValidationErrors(errs))
	}

	product, err := s.products.FindByCode(ctx, req.Code)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if product == nil {
		return apperr.New(apperr.KindNotFound, "Producto no encontrado.")
	}

	if err := s.products.UpdateStock(ctx, product.ID, req.Stock); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

func (s *productService) Delete(ctx context.Context, id, callerID uuid.UUID, callerIsAdmin bool) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if product == nil {
		return apperr.New(apperr.KindNotFound, "Producto no encontrado.")
	}

	if !callerIsAdmin && product.UserID != callerID {
		return apperr.New(apperr.KindAuthorization, "No tienes permiso para eliminar este producto.")
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

// ==================== CATEGORIES ====================

func (s *productService) CreateCategory(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	category := &entity.Category{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *productService) GetCategories(ctx context.Context) ([]response.CategoryResponse, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	items := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, response.CategoryToResponse(category))
	}

	return items, nil
}

func (s *productService) UpdateCategory(ctx context.Context, id uuid.UUID, req *request.CategoryRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(utils.FormatValidationErrors(errs))
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if category == nil {
		return apperr.New(apperr.KindNotFound, "Categoría no encontrada.")
	}

	category.Name = req.Name
	category.Description = req.Description
	category.UpdatedAt = time.Now()

	if err := s.categories.Update(ctx, category); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

func (s *productService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	if category == nil {
		return apperr.New(apperr.KindNotFound, "Categoría no encontrada.")
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	return nil
}

// ==================== EXCEL ====================

var excelHeader = []string{"Código", "Nombre", "Descripción", "Precio", "Stock"}

// ExportExcel builds a workbook with every product. The caller owns the file
// and writes it to the response.
func (s *productService) ExportExcel(ctx context.Context) (*excelize.File, error) {
	products, err := s.products.FindAll(ctx, 10000, 0)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(productSheet)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range excelHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(productSheet, cell, title)
	}

	for i, product := range products {
		row := i + 2
		description := ""
		if product.Description != nil {
			description = *product.Description
		}
		values := []any{product.Code, product.Name, description, product.Price, product.Stock}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(productSheet, cell, value)
		}
	}

	s.log.Info("Products exported to Excel", zap.Int("count", len(products)))
	return f, nil
}

// ImportExcel reads rows of (code, name, description, price, stock) and
// upserts them by code. Malformed rows are skipped, not fatal.
func (s *productService) ImportExcel(ctx context.Context, userID uuid.UUID, r io.Reader) (*response.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, "El archivo no es un Excel válido.", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Error en el servidor.", err)
	}

	result := &response.ImportResult{}
	now := time.Now()

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 4 {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: columnas insuficientes", i+1))
			continue
		}

		code := row[0]
		name := row[1]
		if code == "" || name == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: código o nombre vacío", i+1))
			continue
		}

		price, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: precio inválido", i+1))
			continue
		}

		stock := 0
		if len(row) > 4 && row[4] != "" {
			stock, err = strconv.Atoi(row[4])
			if err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("fila %d: stock inválido", i+1))
				continue
			}
		}

		var description *string
		if row[2] != "" {
			d := row[2]
			description = &d
		}

		product := &entity.Product{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:      userID,
			Code:        code,
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
		}

		if err := s.products.UpsertByCode(ctx, product); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("fila %d: %v", i+1, err))
			continue
		}
		result.Imported++
	}

	s.log.Info("Products imported from Excel",
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
