package models

// Document types. Clôture only appears on archived closing documents, never
// on invoice rows.
type DocumentType string

const (
	DocumentFacture DocumentType = "Facture"
	DocumentDevis   DocumentType = "Devis"
	DocumentRecu    DocumentType = "Reçu"
	DocumentCloture DocumentType = "Clôture"
)

type InvoiceStatus string

const (
	StatusBrouillon InvoiceStatus = "Brouillon"
	StatusValide    InvoiceStatus = "Validé"
	StatusPartiel   InvoiceStatus = "Partiel"
	StatusPaye      InvoiceStatus = "Payé"
	StatusAnnule    InvoiceStatus = "Annulé"
)

type PaymentMethod string

const (
	PaymentEspeces     PaymentMethod = "Espèces"
	PaymentMobileMoney PaymentMethod = "Mobile Money"
	PaymentVirement    PaymentMethod = "Virement"
	PaymentCheque      PaymentMethod = "Chèque"
	PaymentCredit      PaymentMethod = "Crédit (Non payé)"
)

type ClientType string

const (
	ClientIndividuel ClientType = "Individuel"
	ClientSociete    ClientType = "Société"
)

type BusinessDomain string

const (
	DomainCommerce BusinessDomain = "Commerce"
	DomainServices BusinessDomain = "Services"
)

// Transaction discriminators and the fixed reference used by quick sales.
type TransactionType string

const (
	TransactionInvoicePayment TransactionType = "invoice_payment"
	TransactionQuickSale      TransactionType = "quick_sale"
)

const QuickSaleReference = "VENTE-RAPIDE"
