package service

import (
	"context"
	"fmt"

	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/pkg/apperror"
	"github.com/yasserh/sultan-pos/pkg/printer"
)

// ReceiptService projects finalized invoices into printable receipts and
// drives the thermal printer. The projection is read-only: building or
// printing a receipt never changes the sale it renders.
type ReceiptService struct {
	saleRepo repository.SaleRepository
	printer  printer.Printer
	header   entity.ReceiptHeader
	currency string
	width    int
}

// NewReceiptService creates a new receipt service. width is the printer
// character width (32 for 58mm paper, 48 for 80mm).
func NewReceiptService(saleRepo repository.SaleRepository, p printer.Printer, header entity.ReceiptHeader, currency string, width int) *ReceiptService {
	if width <= 0 {
		width = 32
	}
	return &ReceiptService{
		saleRepo: saleRepo,
		printer:  p,
		header:   header,
		currency: currency,
		width:    width,
	}
}

// BuildReceipt projects an invoice into a receipt value object. Only
// finalized invoices are printable.
func (s *ReceiptService) BuildReceipt(inv *entity.Invoice) (*entity.Receipt, error) {
	if !inv.IsFinalized() {
		return nil, apperror.NewBadRequestError("Invoice is not finalized")
	}

	r := &entity.Receipt{
		Header:         s.header,
		InvoiceNo:      inv.InvoiceNo,
		Date:           inv.Date.Format("2006-01-02 15:04"),
		Cashier:        inv.Cashier,
		Lines:          make([]entity.ReceiptLine, 0, len(inv.Lines)),
		SubTotal:       entity.Decimal(inv.SubTotal),
		TotalDiscount:  entity.Decimal(inv.TotalItemDiscount + inv.InvoiceDiscount),
		Tax:            entity.Decimal(inv.Tax),
		GrandTotal:     entity.Decimal(inv.GrandTotal),
		AmountReceived: entity.Decimal(inv.AmountReceived),
		Change:         entity.Decimal(inv.Change),
	}
	if inv.PaymentMethod != nil {
		r.PaymentMethod = inv.PaymentMethod.String()
	}
	if inv.Customer != nil && !inv.Customer.IsCashCustomer() {
		r.Customer = inv.Customer.Name
	}

	for _, line := range inv.Lines {
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			Unit:      line.Unit,
			UnitPrice: entity.Decimal(line.UnitPrice),
			Discount:  entity.Decimal(line.Discount),
			Total:     entity.Decimal(line.Total),
		})
	}
	return r, nil
}

// FormatReceipt renders a receipt into an ESC/POS byte stream.
func (s *ReceiptService) FormatReceipt(r *entity.Receipt) []byte {
	b := printer.NewBuilder(s.width)

	b.Align(printer.AlignCenter).Bold(true).Size(printer.SizeDouble)
	b.Line(r.Header.StoreName)
	b.Size(printer.SizeNormal).Bold(false)
	if r.Header.Address != "" {
		b.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		b.Line("Tel: " + r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		b.Line("Tax ID: " + r.Header.TaxID)
	}

	b.Align(printer.AlignLeft).Rule('-')
	b.Pair("Invoice", r.InvoiceNo)
	b.Pair("Date", r.Date)
	if r.Cashier != "" {
		b.Pair("Cashier", r.Cashier)
	}
	if r.Customer != "" {
		b.Pair("Customer", r.Customer)
	}
	b.Rule('-')

	for _, line := range r.Lines {
		b.Item(line.Quantity, line.Name, s.money(line.Total))
		if line.Discount > 0 {
			b.Pair("  discount/unit", "-"+s.money(line.Discount))
		}
	}

	b.Rule('-')
	b.Pair("Subtotal", s.money(r.SubTotal))
	if r.TotalDiscount > 0 {
		b.Pair("Discount", "-"+s.money(r.TotalDiscount))
	}
	b.Pair("Tax", s.money(r.Tax))
	b.Bold(true)
	b.Pair("TOTAL", s.money(r.GrandTotal))
	b.Bold(false)

	if r.PaymentMethod != "" {
		b.Pair("Paid by", r.PaymentMethod)
	}
	if r.AmountReceived > 0 {
		b.Pair("Received", s.money(r.AmountReceived))
		b.Pair("Change", s.money(r.Change))
	}

	b.Rule('-')
	b.Align(printer.AlignCenter).Line("Thank you for shopping!")
	b.Feed(3).Cut()

	return b.Bytes()
}

// PrintSale builds, formats and prints the receipt for a finalized sale.
func (s *ReceiptService) PrintSale(ctx context.Context, invoiceNo string) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	receipt, err := s.BuildReceipt(sale)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(s.FormatReceipt(receipt)); err != nil {
		return receipt, apperror.NewAppError(502, "Printer error: "+err.Error())
	}
	return receipt, nil
}

// PrinterConnected reports whether the configured printer is reachable.
func (s *ReceiptService) PrinterConnected() bool {
	return s.printer.IsConnected()
}

// PrintTest sends a short test page to the printer.
func (s *ReceiptService) PrintTest() error {
	b := printer.NewBuilder(s.width)
	b.Align(printer.AlignCenter).Bold(true).Line(s.header.StoreName).Bold(false)
	b.Line("Printer test OK")
	b.Feed(3).Cut()
	if err := s.printer.Print(b.Bytes()); err != nil {
		return apperror.NewAppError(502, "Printer error: "+err.Error())
	}
	return nil
}

func (s *ReceiptService) money(v float64) string {
	if s.currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%s %.2f", s.currency, v)
}
