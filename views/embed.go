package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var FS embed.FS

// PaymentRedirect is the template that forwards the browser to the gateway.
const PaymentRedirect = "payment_redirect"

// Engine returns the html template engine over the embedded views.
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(FS), ".html")
}
