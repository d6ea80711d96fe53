package httpx

import (
	"net/http"

	"github.com/pmsadmin/console/internal/i18n"
)

// I18nHandlers serves the translation dictionary and the language preference.
type I18nHandlers struct {
	Dict i18n.Dictionary
}

type langBody struct {
	Lang string `json:"lang"`
}

// GetLang handles GET /api/lang.
func (h *I18nHandlers) GetLang(w http.ResponseWriter, r *http.Request) {
	lang, err := mustSession(r).Lang.Get(r.Context())
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, langBody{Lang: string(lang)})
}

// SetLang handles PUT /api/lang.
func (h *I18nHandlers) SetLang(w http.ResponseWriter, r *http.Request) {
	var req langBody
	if !DecodeJSON(w, r, &req) {
		return
	}
	lang, err := mustSession(r).Lang.Set(r.Context(), req.Lang)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, langBody{Lang: string(lang)})
}

// Strings handles GET /api/i18n. ?lang= overrides the session preference.
func (h *I18nHandlers) Strings(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.ParseLang(queryTerm(r, "lang"))
	if !ok {
		var err error
		if lang, err = mustSession(r).Lang.Get(r.Context()); err != nil {
			WriteAppError(w, err)
			return
		}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"lang":    lang,
		"strings": h.Dict.Flatten(lang),
	})
}
