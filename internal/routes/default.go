package routes

// entityPages lists the entity pages of the application in menu order.
var entityPages = []struct {
	path, title, resource string
}{
	{"receipt", "Receipts", "api/receipts"},
	{"company", "Companies", "api/companies"},
	{"cash-register", "CashRegisters", "api/cash-registers"},
	{"terminal", "Terminals", "api/terminals"},
	{"payment", "Payments", "api/payments"},
	{"payment-item", "PaymentItems", "api/payment-items"},
	{"invoice", "Invoices", "api/invoices"},
	{"setting", "Settings", "api/settings"},
	{"log", "Logs", "api/logs"},
}

// Default returns the table of every entity page. The company page lists
// companies through Deps.Companies; the others show their metadata.
func Default() *Table {
	t := NewTable()
	for _, p := range entityPages {
		f := metadataPage
		if p.path == "company" {
			f = companyPage
		}
		t.MustRegister(Route{Path: p.path, PageTitle: p.title, ResourceURL: p.resource, Factory: f(p.title, p.resource)})
	}
	return t
}
