package respond

import (
	"github.com/gin-gonic/gin"
)

// ErrorPage is the data passed to the error template.
type ErrorPage struct {
	Status  int
	Code    string
	Message string
}

// HTML renders a named template with the given status.
func HTML(c *gin.Context, status int, name string, data interface{}) {
	c.HTML(status, name, data)
}

// HTMLError renders the error page and aborts the chain.
func HTMLError(c *gin.Context, status int, code, message string) {
	logFailure(c, status, code, message)
	c.HTML(status, "error.html", ErrorPage{Status: status, Code: code, Message: message})
	c.Abort()
}
