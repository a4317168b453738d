package usecase

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"tic-marketplace/internal/data/entity"
	"tic-marketplace/internal/dto/request"
	"tic-marketplace/pkg/apperr"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) FindByCode(ctx context.Context, code string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, product := range f.products {
		if product.Code == code {
			copied := *product
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entity.Product, 0, len(f.products))
	for _, product := range f.products {
		copied := *product
		all = append(all, &copied)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product, ok := f.products[id]; ok {
		product.Stock = stock
	}
	return nil
}

func (f *fakeProductRepo) UpsertByCode(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.products {
		if existing.Code == product.Code {
			existing.Name = product.Name
			existing.Description = product.Description
			existing.Price = product.Price
			existing.Stock = product.Stock
			return nil
		}
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]*entity.Category, 0, len(f.categories))
	for _, category := range f.categories {
		copied := *category
		all = append(all, &copied)
	}
	return all, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *category
	f.categories[category.ID] = &copied
	return nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.categories, id)
	return nil
}

func seedProduct(t *testing.T, repo *fakeProductRepo, ownerID uuid.UUID, code string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	now := time.Now()
	err := repo.Create(context.Background(), &entity.Product{
		Base:   entity.Base{ID: id, CreatedAt: now, UpdatedAt: now},
		UserID: ownerID,
		Code:   code,
		Name:   "Producto " + code,
		Price:  19.99,
		Stock:  5,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return id
}

func TestProductCreateAndLookup(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	ownerID := uuid.New()

	resp, err := svc.Create(context.Background(), ownerID, &request.CreateProductRequest{
		Code:  "CAF-001",
		Name:  "Café de altura",
		Price: 12.50,
		Stock: 30,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	id, err := uuid.Parse(resp.ProductID)
	if err != nil {
		t.Fatalf("bad product id: %v", err)
	}

	byID, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if byID.Code != "CAF-001" {
		t.Errorf("expected code CAF-001, got %s", byID.Code)
	}

	byCode, err := svc.GetByCode(context.Background(), "CAF-001")
	if err != nil {
		t.Fatalf("GetByCode returned error: %v", err)
	}
	if byCode.Name != "Café de altura" {
		t.Errorf("expected name Café de altura, got %s", byCode.Name)
	}

	_, err = svc.GetByCode(context.Background(), "NO-EXISTE")
	expectKind(t, err, apperr.KindNotFound)
}

func TestProductCreateDuplicateCode(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	seedProduct(t, products, uuid.New(), "CAF-001")

	_, err := svc.Create(context.Background(), uuid.New(), &request.CreateProductRequest{
		Code:  "CAF-001",
		Name:  "Otro café",
		Price: 9.99,
		Stock: 1,
	})
	expectKind(t, err, apperr.KindConflict)
}

func TestProductUpdateOwnership(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	ownerID := uuid.New()
	strangerID := uuid.New()
	productID := seedProduct(t, products, ownerID, "CAF-001")

	newName := "Café renombrado"
	req := &request.UpdateProductRequest{Name: &newName}

	err := svc.Update(context.Background(), productID, strangerID, false, req)
	expectKind(t, err, apperr.KindAuthorization)

	if err := svc.Update(context.Background(), productID, ownerID, false, req); err != nil {
		t.Fatalf("owner update returned error: %v", err)
	}

	// An admin may update anyone's product
	otherName := "Café del admin"
	req = &request.UpdateProductRequest{Name: &otherName}
	if err := svc.Update(context.Background(), productID, strangerID, true, req); err != nil {
		t.Fatalf("admin update returned error: %v", err)
	}

	stored, _ := products.FindByID(context.Background(), productID)
	if stored.Name != "Café del admin" {
		t.Errorf("expected updated name, got %s", stored.Name)
	}
}

func TestProductDeleteOwnership(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	ownerID := uuid.New()
	productID := seedProduct(t, products, ownerID, "CAF-001")

	err := svc.Delete(context.Background(), productID, uuid.New(), false)
	expectKind(t, err, apperr.KindAuthorization)

	if err := svc.Delete(context.Background(), productID, ownerID, false); err != nil {
		t.Fatalf("owner delete returned error: %v", err)
	}
	if p, _ := products.FindByID(context.Background(), productID); p != nil {
		t.Error("expected product gone")
	}
}

func TestUpdateStockByCode(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	productID := seedProduct(t, products, uuid.New(), "CAF-001")

	err := svc.UpdateStock(context.Background(), &request.UpdateStockRequest{Code: "CAF-001", Stock: 42})
	if err != nil {
		t.Fatalf("UpdateStock returned error: %v", err)
	}

	stored, _ := products.FindByID(context.Background(), productID)
	if stored.Stock != 42 {
		t.Errorf("expected stock 42, got %d", stored.Stock)
	}

	err = svc.UpdateStock(context.Background(), &request.UpdateStockRequest{Code: "NO-EXISTE", Stock: 1})
	expectKind(t, err, apperr.KindNotFound)
}

func TestExcelExportImportRoundTrip(t *testing.T) {
	products := newFakeProductRepo()
	svc := NewProductService(products, newFakeCategoryRepo(), zap.NewNop())
	ownerID := uuid.New()
	seedProduct(t, products, ownerID, "CAF-001")
	seedProduct(t, products, ownerID, "CAF-002")

	f, err := svc.ExportExcel(context.Background())
	if err != nil {
		t.Fatalf("ExportExcel returned error: %v", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	// Import into an empty repo
	fresh := newFakeProductRepo()
	freshSvc := NewProductService(fresh, newFakeCategoryRepo(), zap.NewNop())

	result, err := freshSvc.ImportExcel(context.Background(), ownerID, bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportExcel returned error: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("expected 2 imported rows, got %d (errors: %v)", result.Imported, result.Errors)
	}
	if result.Skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", result.Skipped)
	}

	imported, err := fresh.FindByCode(context.Background(), "CAF-002")
	if err != nil || imported == nil {
		t.Fatalf("expected imported product, got %v %v", imported, err)
	}
	if imported.Price != 19.99 || imported.Stock != 5 {
		t.Errorf("expected price 19.99 stock 5, got %v %d", imported.Price, imported.Stock)
	}
}

func TestImportExcelSkipsBadRows(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), newFakeCategoryRepo(), zap.NewNop())

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Código", "Nombre", "Descripción", "Precio", "Stock"},
		{"CAF-001", "Café", "Tostado medio", 12.5, 10},
		{"", "Sin código", "", 5.0, 1},
		{"CAF-002", "Precio roto", "", "no-numérico", 1},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("building workbook: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("writing workbook: %v", err)
	}

	result, err := svc.ImportExcel(context.Background(), uuid.New(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImportExcel returned error: %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("expected 1 imported row, got %d", result.Imported)
	}
	if result.Skipped != 2 {
		t.Errorf("expected 2 skipped rows, got %d", result.Skipped)
	}
	for _, msg := range result.Errors {
		if !strings.HasPrefix(msg, "fila ") {
			t.Errorf("row errors should name the row, got %q", msg)
		}
	}
}

func TestImportExcelRejectsGarbage(t *testing.T) {
	svc := NewProductService(newFakeProductRepo(), newFakeCategoryRepo(), zap.NewNop())
	_, err := svc.ImportExcel(context.Background(), uuid.New(), strings.NewReader("not an xlsx"))
	expectKind(t, err, apperr.KindValidation)
}

func TestCategoryCRUD(t *testing.T) {
	categories := newFakeCategoryRepo()
	svc := NewProductService(newFakeProductRepo(), categories, zap.NewNop())

	created, err := svc.CreateCategory(context.Background(), &request.CategoryRequest{Name: "Alimentos"})
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	id, _ := uuid.Parse(created.CategoryID)

	list, err := svc.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("GetCategories returned error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Alimentos" {
		t.Fatalf("unexpected category list: %+v", list)
	}

	if err := svc.UpdateCategory(context.Background(), id, &request.CategoryRequest{Name: "Bebidas"}); err != nil {
		t.Fatalf("UpdateCategory returned error: %v", err)
	}
	stored, _ := categories.FindByID(context.Background(), id)
	if stored.Name != "Bebidas" {
		t.Errorf("expected renamed category, got %s", stored.Name)
	}

	if err := svc.DeleteCategory(context.Background(), id); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}
	err = svc.DeleteCategory(context.Background(), id)
	expectKind(t, err, apperr.KindNotFound)
}
