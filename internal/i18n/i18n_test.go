package i18n

import "testing"

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("HI-in") != "hi" {
		t.Fatalf("expected hi for HI-in")
	}
	if DetectLanguage("fr-FR,fr;q=0.8") != "en" {
		t.Fatalf("expected en fallback for unsupported language")
	}
	if DetectLanguage("") != "en" {
		t.Fatalf("expected default en")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "invoices") != "Invoices" {
		t.Fatalf("expected Invoices")
	}
	if T("hi", "invoices") != "चालान" {
		t.Fatalf("expected hi translation")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to en translation if it exists
	if T("es", "invoices") != "Invoices" {
		t.Fatalf("expected en fallback for es lang")
	}
}
