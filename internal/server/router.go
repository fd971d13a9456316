// Package server assembles the application: storage-backed services, the
// shared draft composer and the HTTP surface. The state the handlers work
// on (session, collections, draft) is threaded explicitly through the
// services rather than read from globals.
package server

import (
	"net/http"

	"github.com/SauravKesari/billify/internal/config"
	"github.com/SauravKesari/billify/internal/handlers"
	"github.com/SauravKesari/billify/internal/insight"
	"github.com/SauravKesari/billify/internal/services"
	"github.com/SauravKesari/billify/internal/storage"
)

// New wires every handler onto one mux.
func New(store *storage.Store, cfg config.Config) http.Handler {
	identity := services.NewIdentityService(store)
	products := services.NewProductService(store)
	customers := services.NewCustomerService(store)
	invoices := services.NewInvoiceService(store)
	composer := services.NewComposer(cfg.TaxRate)
	insightClient := insight.New(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)

	mux := http.NewServeMux()
	handlers.NewI18nHandler().Register(mux)
	handlers.NewAuthHandler(identity).Register(mux)
	handlers.NewProductHandler(products, identity, store.Units).Register(mux)
	handlers.NewCustomerHandler(customers, identity).Register(mux)
	handlers.NewInvoiceHandler(invoices, products, customers, identity, composer, insightClient, cfg.ExportDir).Register(mux)
	return mux
}
