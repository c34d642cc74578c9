package util

import "github.com/gin-gonic/gin"

// status values used by the JSON envelope
const (
	StatusSucesso = "sucesso"
	StatusErro    = "erro"
)

// Success writes the {"mensagem","status":"sucesso"} envelope.
func Success(c *gin.Context, httpStatus int, mensagem string) {
	c.JSON(httpStatus, gin.H{
		"mensagem": mensagem,
		"status":   StatusSucesso,
	})
}

// Error writes the {"mensagem","status":"erro"} envelope.
func Error(c *gin.Context, httpStatus int, mensagem string) {
	c.JSON(httpStatus, gin.H{
		"mensagem": mensagem,
		"status":   StatusErro,
	})
}
