package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/pagination"
)

type memProductRepo struct {
	products []*entity.Product
	// onFind runs inside FindByBarcodeOrName, before the lookup resolves.
	// Tests use it to race a newer search against an in-flight one.
	onFind func()
}

func (r *memProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) FindByBarcodeOrName(_ context.Context, query string) (*entity.Product, error) {
	if r.onFind != nil {
		r.onFind()
	}
	for _, p := range r.products {
		if p.Barcode == query {
			return p, nil
		}
	}
	lower := strings.ToLower(query)
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, _ *pagination.PaginationParams, search string) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(r.products))
	for _, p := range r.products {
		if search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.products = append(r.products, p)
	return nil
}

func catalogFixture() *memProductRepo {
	return &memProductRepo{products: []*entity.Product{
		{ID: uuid.New(), Name: "Cola 330ml", Barcode: "6291001001", SellingPrice: entity.Cents(1.50), Unit: "pcs"},
		{ID: uuid.New(), Name: "Basmati Rice 5kg", Barcode: "6291001002", SellingPrice: entity.Cents(12.00), Unit: "bag"},
	}}
}

func TestFindProductByBarcode(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())
	term := uuid.New()

	p, err := svc.FindProduct(context.Background(), term, 1, "6291001002")
	require.NoError(t, err)
	require.Equal(t, "Basmati Rice 5kg", p.Name)
}

func TestFindProductByNameSubstring(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())
	term := uuid.New()

	p, err := svc.FindProduct(context.Background(), term, 1, "cola")
	require.NoError(t, err)
	require.Equal(t, "Cola 330ml", p.Name)
}

func TestFindProductMissIsNotFound(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())
	term := uuid.New()

	_, err := svc.FindProduct(context.Background(), term, 1, "does-not-exist")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Code)
}

func TestFindProductEmptyQueryRejected(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())

	_, err := svc.FindProduct(context.Background(), uuid.New(), 1, "   ")
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Code)
}

func TestStaleSearchRejectedUpFront(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())
	term := uuid.New()
	ctx := context.Background()

	_, err := svc.FindProduct(ctx, term, 5, "cola")
	require.NoError(t, err)

	// A search that was already superseded never reaches the repository.
	_, err = svc.FindProduct(ctx, term, 3, "rice")
	require.ErrorIs(t, err, ErrStaleSearch)
}

func TestSearchOvertakenInFlightIsDiscarded(t *testing.T) {
	repo := catalogFixture()
	svc := NewCatalogService(repo, newMemCustomerRepo())
	term := uuid.New()
	ctx := context.Background()

	// While the seq-1 lookup is in flight, a seq-2 search completes. The
	// seq-1 result must be discarded even though its lookup succeeded.
	first := true
	repo.onFind = func() {
		if first {
			first = false
			_, err := svc.FindProduct(ctx, term, 2, "rice")
			require.NoError(t, err)
		}
	}

	_, err := svc.FindProduct(ctx, term, 1, "cola")
	require.ErrorIs(t, err, ErrStaleSearch)
}

func TestSequencesAreScopedPerTerminal(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())
	ctx := context.Background()

	_, err := svc.FindProduct(ctx, uuid.New(), 9, "cola")
	require.NoError(t, err)

	// A different terminal starts at seq 1 unaffected.
	_, err = svc.FindProduct(ctx, uuid.New(), 1, "rice")
	require.NoError(t, err)
}

func TestListProductsWithSearch(t *testing.T) {
	svc := NewCatalogService(catalogFixture(), newMemCustomerRepo())

	result, err := svc.ListProducts(context.Background(), pagination.DefaultPagination(), "rice")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.EqualValues(t, 1, result.Pagination.Total)
}
