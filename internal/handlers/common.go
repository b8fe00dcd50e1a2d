package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// renderError shows the user-facing error page. Internal detail never
// reaches the response; callers log it before getting here.
func renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"Message": message,
	})
}

// renderInternalError logs the failure and shows a generic message.
func renderInternalError(c *gin.Context, err error) {
	log.Printf("request failed: %v", err)
	renderError(c, 500, "Something went wrong. Please try again.")
}
