package service

import (
	"fmt"

	"github.com/sergiuconi/casier-api/internal/cart"
	"github.com/sergiuconi/casier-api/pkg/printer"
)

// BonHeader carries the store identity printed at the top of every bon.
type BonHeader struct {
	StoreName string
	Address   string
	CodFiscal string
}

// PrinterService formats finalized receipts as fiscal bons and sends
// them to the thermal printer.
type PrinterService struct {
	printer     printer.Printer
	header      BonHeader
	printerType string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, header BonHeader, printerType string) *PrinterService {
	return &PrinterService{
		printer:     p,
		header:      header,
		printerType: printerType,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test page to the printer.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(32)
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text("TEST IMPRIMANTA").
		SetBold(false).
		Text(s.header.StoreName).
		SetAlign(printer.AlignLeft).
		Separator('-').
		ItemLine(1, "Produs test", "1.00").
		Separator('-').
		FeedLines(3).
		PartialCut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// PrintBon formats a finalized receipt and prints it. The bon number is
// present only for settled card payments.
func (s *PrinterService) PrintBon(receipt *cart.Receipt, casa int, bonNo *int) error {
	data := s.FormatBon(receipt, casa, bonNo)
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("failed to print bon: %w", err)
	}
	return nil
}

// FormatBon converts a finalized receipt into ESC/POS bytes.
func (s *PrinterService) FormatBon(r *cart.Receipt, casa int, bonNo *int) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if s.header.Address != "" {
		doc.Text(s.header.Address)
	}
	if s.header.CodFiscal != "" {
		doc.TextF("CIF: %s", s.header.CodFiscal)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Casa:", fmt.Sprintf("%d", casa)).
		KeyValue("Data:", r.Timestamp.Format("2006-01-02 15:04"))
	if bonNo != nil {
		doc.KeyValue("Bon:", fmt.Sprintf("%d", *bonNo))
	}

	doc.Separator('-')

	var totalDiscount float64
	for _, item := range r.Items {
		lt := item.Totals()
		name := item.Product.Name
		if item.Storno {
			name = "STORNO " + name
		}
		doc.ItemLine(item.Qty, name, fmt.Sprintf("%.2f", lt.Total))
		if item.Qty != 1 {
			doc.TextF("  %.4g x %.2f", item.Qty, item.UnitPrice)
		}
		if lt.Discount > 0 {
			doc.TextF("  reducere -%.2f", lt.Discount)
			if item.Storno {
				totalDiscount -= lt.Discount
			} else {
				totalDiscount += lt.Discount
			}
		}
	}

	doc.Separator('-')

	if totalDiscount != 0 {
		doc.KeyValue("Reduceri:", fmt.Sprintf("%.2f", totalDiscount))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f RON", r.Total)).
		SetBold(false)
	doc.KeyValue("Plata:", string(r.PaymentMethod))

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Va multumim!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
