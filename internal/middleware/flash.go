package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie     = "flash"
	contextKeyFlash = "flash"
)

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot notice shown on the next rendered page
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SetFlash stores a notice for the next request
func SetFlash(c *gin.Context, kind, message string) {
	payload, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadFlash moves a pending notice from its cookie onto the context and clears the cookie
func LoadFlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(flashCookie)
		if err == nil && raw != "" {
			http.SetCookie(c.Writer, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

			if payload, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
				var flash Flash
				if json.Unmarshal(payload, &flash) == nil && flash.Message != "" {
					c.Set(contextKeyFlash, &flash)
				}
			}
		}
		c.Next()
	}
}

// CurrentFlash returns the notice loaded for this request, if any
func CurrentFlash(c *gin.Context) *Flash {
	value, exists := c.Get(contextKeyFlash)
	if !exists {
		return nil
	}
	flash, _ := value.(*Flash)
	return flash
}
