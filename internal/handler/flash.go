package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "gs_flash"

// setFlash stores a one-shot message carried across the next redirect.
// Categories follow the page templates: success, warning, danger.
func setFlash(c *gin.Context, categoria, mensagem string) {
	c.SetCookie(flashCookie, categoria+"|"+mensagem, 60, "/", "", false, true)
}

// takeFlash reads and clears the flash cookie.
func takeFlash(c *gin.Context) (categoria, mensagem string, ok bool) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return "", "", false
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	categoria, mensagem, found := strings.Cut(raw, "|")
	if !found {
		return "", "", false
	}
	return categoria, mensagem, true
}

// flashData builds the template data for a page, merging any pending
// flash message with extra values.
func flashData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{}
	for k, v := range extra {
		data[k] = v
	}
	if categoria, mensagem, ok := takeFlash(c); ok {
		data["Flash"] = mensagem
		data["FlashCategoria"] = categoria
	}
	return data
}
