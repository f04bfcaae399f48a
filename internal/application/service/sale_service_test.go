package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
)

func TestGetSaleUnknownIsNotFound(t *testing.T) {
	svc := NewSaleService(newMemSaleRepo())

	_, err := svc.GetSale(context.Background(), "INV-0000-XXXXX")
	require.Error(t, err)
}

func TestUpdateChequeStatus(t *testing.T) {
	sales := newMemSaleRepo()
	svc := NewSaleService(sales)
	ctx := context.Background()

	sale := finalizedSale()
	method := enum.PaymentCheque
	sale.PaymentMethod = &method
	sale.Cheque = &entity.ChequeDetail{ChequeNumber: "000451", BankName: "Equity", Amount: sale.GrandTotal}
	require.NoError(t, sales.Create(ctx, sale))

	updated, err := svc.UpdateChequeStatus(ctx, sale.InvoiceNo, enum.ChequeCleared)
	require.NoError(t, err)
	require.Equal(t, enum.ChequeCleared, updated.Cheque.Status)
}

func TestUpdateChequeStatusOnCashSale(t *testing.T) {
	sales := newMemSaleRepo()
	svc := NewSaleService(sales)
	ctx := context.Background()

	sale := finalizedSale()
	require.NoError(t, sales.Create(ctx, sale))

	_, err := svc.UpdateChequeStatus(ctx, sale.InvoiceNo, enum.ChequeCleared)
	require.Error(t, err)
}

func TestListSalesDefaultsPagination(t *testing.T) {
	sales := newMemSaleRepo()
	svc := NewSaleService(sales)
	ctx := context.Background()
	require.NoError(t, sales.Create(ctx, finalizedSale()))

	result, err := svc.ListSales(ctx, &repository.SaleFilterParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.EqualValues(t, 1, result.Pagination.Total)
}
