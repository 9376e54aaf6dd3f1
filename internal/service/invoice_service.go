package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"taller-go/internal/model"
	"taller-go/internal/repository"
	"taller-go/pkg/log"
	"taller-go/pkg/storage"
)

const presignedExpiry = 15 * time.Minute

// taxRate is the VAT applied on issue.
const taxRate = 0.15

// InvoiceService issues invoices, stores their rendered documents in
// object storage and answers the finance tools.
type InvoiceService interface {
	IssueForOrder(ctx context.Context, companyID uint, orderNumber string) (*model.Invoice, error)
	Issue(ctx context.Context, companyID, customerID uint, items []model.InvoiceItem) (*model.Invoice, error)
	MarkPaid(ctx context.Context, companyID uint, number string) (*model.Invoice, error)
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error)
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Invoice, int64, error)
	DocumentURL(ctx context.Context, companyID uint, number string) (string, error)
	RecordExpense(ctx context.Context, expense *model.Expense) error
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	orders   repository.OrderRepository
	bucket   string
}

// NewInvoiceService creates an InvoiceService.
func NewInvoiceService(invoices repository.InvoiceRepository, orders repository.OrderRepository, bucket string) InvoiceService {
	return &invoiceService{invoices: invoices, orders: orders, bucket: bucket}
}

// IssueForOrder bills every line of a workshop order.
func (s *invoiceService) IssueForOrder(ctx context.Context, companyID uint, orderNumber string) (*model.Invoice, error) {
	order, err := s.orders.FindByNumber(ctx, companyID, orderNumber)
	if err != nil {
		return nil, err
	}

	items := make([]model.InvoiceItem, 0, len(order.Items))
	for _, line := range order.Items {
		items = append(items, model.InvoiceItem{
			Concept:   line.Concept,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	invoice, err := s.issue(ctx, companyID, order.CustomerID, order.ID, items)
	if err != nil {
		return nil, err
	}
	invoice.Customer = order.Customer
	return invoice, nil
}

// Issue bills ad-hoc lines not tied to an order.
func (s *invoiceService) Issue(ctx context.Context, companyID, customerID uint, items []model.InvoiceItem) (*model.Invoice, error) {
	return s.issue(ctx, companyID, customerID, 0, items)
}

func (s *invoiceService) issue(ctx context.Context, companyID, customerID, orderID uint, items []model.InvoiceItem) (*model.Invoice, error) {
	number, err := s.invoices.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	tax := subtotal * taxRate

	invoice := &model.Invoice{
		CompanyID:  companyID,
		Number:     number,
		CustomerID: customerID,
		OrderID:    orderID,
		Status:     model.InvoiceStatusIssued,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      subtotal + tax,
		Items:      items,
	}
	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	s.storeDocument(ctx, invoice)
	return invoice, nil
}

// storeDocument renders and uploads the invoice document. Storage being
// down does not undo the issued invoice.
func (s *invoiceService) storeDocument(ctx context.Context, invoice *model.Invoice) {
	if storage.MinioClient == nil {
		return
	}
	key := fmt.Sprintf("%d/%s.html", invoice.CompanyID, invoice.Number)
	doc := renderInvoiceDocument(invoice)
	if err := storage.PutObject(ctx, s.bucket, key, "text/html", []byte(doc)); err != nil {
		log.Errorf("storing invoice document %s failed: %v", invoice.Number, err)
		return
	}
	invoice.ObjectKey = key
	if err := s.invoices.Update(ctx, invoice); err != nil {
		log.Errorf("recording object key for invoice %s failed: %v", invoice.Number, err)
	}
}

func renderInvoiceDocument(invoice *model.Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><h1>Invoice %s</h1>", html.EscapeString(invoice.Number))
	fmt.Fprintf(&b, "<p>Issued %s</p>", invoice.IssuedAt.Format("2006-01-02"))
	b.WriteString("<table><thead><tr><th>Concept</th><th>Qty</th><th>Unit</th><th>Amount</th></tr></thead><tbody>")
	for _, item := range invoice.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%.2f</td><td>%.2f</td></tr>",
			html.EscapeString(item.Concept), item.Quantity, item.UnitPrice, item.Quantity*item.UnitPrice)
	}
	b.WriteString("</tbody></table>")
	fmt.Fprintf(&b, "<p>Subtotal %.2f · Tax %.2f · Total %.2f</p>", invoice.Subtotal, invoice.Tax, invoice.Total)
	b.WriteString("</body></html>")
	return b.String()
}

func (s *invoiceService) MarkPaid(ctx context.Context, companyID uint, number string) (*model.Invoice, error) {
	invoice, err := s.invoices.FindByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	invoice.Status = model.InvoiceStatusPaid
	invoice.PaidAt = &now
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error) {
	return s.invoices.FindByNumber(ctx, companyID, number)
}

func (s *invoiceService) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error) {
	return s.invoices.ByCustomerName(ctx, companyID, name)
}

func (s *invoiceService) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Invoice, int64, error) {
	return s.invoices.List(ctx, companyID, offset, limit)
}

// DocumentURL returns a presigned link to the stored invoice document.
func (s *invoiceService) DocumentURL(ctx context.Context, companyID uint, number string) (string, error) {
	invoice, err := s.invoices.FindByNumber(ctx, companyID, number)
	if err != nil {
		return "", err
	}
	if invoice.ObjectKey == "" {
		return "", fmt.Errorf("invoice %s has no stored document", number)
	}
	return storage.GetPresignedURL(s.bucket, invoice.ObjectKey, presignedExpiry)
}

func (s *invoiceService) RecordExpense(ctx context.Context, expense *model.Expense) error {
	if expense.SpentAt.IsZero() {
		expense.SpentAt = time.Now()
	}
	return s.invoices.CreateExpense(ctx, expense)
}
