package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/enum"
)

type capturePrinter struct {
	jobs [][]byte
}

func (p *capturePrinter) Print(data []byte) error {
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) IsConnected() bool { return true }
func (p *capturePrinter) Close() error      { return nil }

func finalizedSale() *entity.Invoice {
	method := enum.PaymentCash
	return &entity.Invoice{
		InvoiceNo:     "INV-2026-A1B2C",
		Date:          time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Cashier:       "Ahmed",
		Status:        enum.InvoiceFinalized,
		PaymentMethod: &method,
		Lines: []entity.CartLine{
			{Name: "Cola 330ml", Quantity: 2, UnitPrice: entity.Cents(1.50), Total: entity.Cents(3.00)},
			{Name: "Basmati Rice 5kg", Quantity: 1, UnitPrice: entity.Cents(12.00), Total: entity.Cents(12.00), Discount: entity.Cents(1.00)},
		},
		SubTotal:          entity.Cents(15.00),
		TotalItemDiscount: entity.Cents(1.00),
		Tax:               entity.Cents(2.10),
		GrandTotal:        entity.Cents(16.10),
		AmountReceived:    entity.Cents(20.00),
		Change:            entity.Cents(3.90),
	}
}

func receiptService(p *capturePrinter) (*ReceiptService, *memSaleRepo) {
	sales := newMemSaleRepo()
	header := entity.ReceiptHeader{StoreName: "Sultan Store", Phone: "0700000000"}
	return NewReceiptService(sales, p, header, "KES", 32), sales
}

func TestBuildReceiptProjection(t *testing.T) {
	svc, _ := receiptService(&capturePrinter{})
	sale := finalizedSale()

	r, err := svc.BuildReceipt(sale)
	require.NoError(t, err)

	require.Equal(t, "Sultan Store", r.Header.StoreName)
	require.Equal(t, "INV-2026-A1B2C", r.InvoiceNo)
	require.Equal(t, "2026-03-14 10:30", r.Date)
	require.Equal(t, "Cash", r.PaymentMethod)
	require.Len(t, r.Lines, 2)
	require.Equal(t, 15.00, r.SubTotal)
	require.Equal(t, 1.00, r.TotalDiscount)
	require.Equal(t, 2.10, r.Tax)
	require.Equal(t, 16.10, r.GrandTotal)
	require.Equal(t, 20.00, r.AmountReceived)
	require.Equal(t, 3.90, r.Change)
}

func TestBuildReceiptHidesWalkInCustomer(t *testing.T) {
	svc, _ := receiptService(&capturePrinter{})
	sale := finalizedSale()
	sale.Customer = &entity.Customer{Name: "Cash Customer", WalkIn: true}

	r, err := svc.BuildReceipt(sale)
	require.NoError(t, err)
	require.Empty(t, r.Customer)

	sale.Customer = &entity.Customer{Name: "Fatima"}
	r, err = svc.BuildReceipt(sale)
	require.NoError(t, err)
	require.Equal(t, "Fatima", r.Customer)
}

func TestBuildReceiptRequiresFinalizedInvoice(t *testing.T) {
	svc, _ := receiptService(&capturePrinter{})
	sale := finalizedSale()
	sale.Status = enum.InvoiceOpen

	_, err := svc.BuildReceipt(sale)
	require.Error(t, err)
}

func TestFormatReceiptRendersTotals(t *testing.T) {
	svc, _ := receiptService(&capturePrinter{})
	r, err := svc.BuildReceipt(finalizedSale())
	require.NoError(t, err)

	out := string(svc.FormatReceipt(r))
	require.Contains(t, out, "Sultan Store")
	require.Contains(t, out, "2x Cola 330ml")
	require.Contains(t, out, "KES 16.10")
	require.Contains(t, out, "Change")
}

func TestPrintSaleSendsOneJob(t *testing.T) {
	p := &capturePrinter{}
	svc, sales := receiptService(p)
	sale := finalizedSale()
	require.NoError(t, sales.Create(context.Background(), sale))

	r, err := svc.PrintSale(context.Background(), sale.InvoiceNo)
	require.NoError(t, err)
	require.Equal(t, sale.InvoiceNo, r.InvoiceNo)
	require.Len(t, p.jobs, 1)
}

func TestPrintSaleUnknownInvoice(t *testing.T) {
	svc, _ := receiptService(&capturePrinter{})

	_, err := svc.PrintSale(context.Background(), uuid.New().String())
	require.Error(t, err)
}
