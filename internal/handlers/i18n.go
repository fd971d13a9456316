package handlers

import (
	"net/http"

	"github.com/SauravKesari/billify/internal/httpx"
	"github.com/SauravKesari/billify/internal/i18n"
	"github.com/SauravKesari/billify/internal/validation"
)

// I18nHandler serves the display-language string tables. It takes no
// session: the login screen needs the strings before anyone is signed in.
type I18nHandler struct{}

func NewI18nHandler() *I18nHandler {
	return &I18nHandler{}
}

func (h *I18nHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/i18n", h.strings)
}

// GET /api/i18n?lang= returns the table for an explicit language, or for the
// one detected from Accept-Language when the parameter is absent.
func (h *I18nHandler) strings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	} else {
		v := validation.Violations{}
		validation.OneOf("lang", lang, i18n.Supported(), v)
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"lang":    lang,
		"strings": i18n.Strings(lang),
	})
}
