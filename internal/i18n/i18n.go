// Package i18n holds the display-language string tables. English is the
// default; PDF exports bypass this package entirely and always use the
// fixed English label set.
package i18n

import "strings"

// DefaultLang is used when no preference can be detected.
const DefaultLang = "en"

var translations = map[string]map[string]string{
	"en": {
		"dashboard":      "Dashboard",
		"createInvoice":  "Create Invoice",
		"invoices":       "Invoices",
		"customers":      "Customers",
		"products":       "Products",
		"totalRevenue":   "Total Revenue",
		"totalInvoices":  "Total Invoices",
		"paidInvoices":   "Paid Invoices",
		"invoiceNum":     "Invoice #",
		"date":           "Date",
		"customer":       "Customer",
		"status":         "Status",
		"amount":         "Amount",
		"subtotal":       "Subtotal",
		"tax":            "Tax",
		"total":          "Total",
		"markPaid":       "Mark as Paid",
		"markPending":    "Mark as Pending",
		"selectCustomer": "Select a customer...",
		"addItem":        "Add Item",
		"qty":            "Qty",
		"price":          "Price",
		"unit":           "Unit",
	},
	"hi": {
		"dashboard":      "डैशबोर्ड",
		"createInvoice":  "चालान बनाएं",
		"invoices":       "चालान",
		"customers":      "ग्राहक",
		"products":       "उत्पाद",
		"totalRevenue":   "कुल राजस्व",
		"totalInvoices":  "कुल चालान",
		"paidInvoices":   "भुगतान किए गए चालान",
		"invoiceNum":     "चालान #",
		"date":           "तारीख",
		"customer":       "ग्राहक",
		"status":         "स्थिति",
		"amount":         "राशि",
		"subtotal":       "उप-योग",
		"tax":            "कर",
		"total":          "कुल",
		"markPaid":       "भुगतान चिह्नित करें",
		"markPending":    "लंबित चिह्नित करें",
		"selectCustomer": "ग्राहक चुनें...",
		"addItem":        "आइटम जोड़ें",
		"qty":            "मात्रा",
		"price":          "मूल्य",
		"unit":           "इकाई",
	},
}

// Supported lists the language codes with a string table.
func Supported() []string {
	return []string{"en", "hi"}
}

// Strings returns a copy of the table for a language, falling back to the
// default table for unknown languages.
func Strings(lang string) map[string]string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLang]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

// T translates a code for a language. Unknown languages fall back to the
// default table; an unknown code falls back to the code itself so missing
// entries are visible instead of blank.
func T(lang, code string) string {
	table, ok := translations[lang]
	if !ok {
		table = translations[DefaultLang]
	}
	if v, ok := table[code]; ok {
		return v
	}
	if v, ok := translations[DefaultLang][code]; ok {
		return v
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.ToLower(strings.TrimSpace(strings.SplitN(part, ";", 2)[0]))
		base, _, _ := strings.Cut(tag, "-")
		if _, ok := translations[base]; ok {
			return base
		}
	}
	return DefaultLang
}
