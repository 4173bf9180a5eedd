package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookie = "blogger_flash"

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice carried across a redirect. Key is a message
// catalog key.
type Flash struct {
	Kind string `json:"k"`
	Key  string `json:"m"`
}

func SetFlash(w http.ResponseWriter, kind string, key string) {
	data, err := json.Marshal(Flash{Kind: kind, Key: key})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash, if any, and expires its cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	raw, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flash Flash
	if err := json.Unmarshal(raw, &flash); err != nil || flash.Key == "" {
		return nil
	}
	if flash.Kind != FlashSuccess {
		flash.Kind = FlashError
	}
	return &flash
}
