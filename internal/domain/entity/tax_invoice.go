package entity

import "time"

// InvoiceNumberPrefix prefijo del número de factura (INV-<paymentID>).
const InvoiceNumberPrefix = "INV-"

// InvoiceBusinessInfo datos del emisor que se muestran en la factura.
type InvoiceBusinessInfo struct {
	ID                 string
	Name               string
	Address            string
	RegistrationNumber string
	JurisdictionCode   string
	JurisdictionName   string
	BandNumber         string
}

// TaxInvoice factura derivada a demanda desde un pago; no se persiste.
type TaxInvoice struct {
	InvoiceNumber string
	PaymentID     string
	Date          time.Time
	Business      InvoiceBusinessInfo
	Breakdown     TaxBreakdown
}
