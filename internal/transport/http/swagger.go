package http

import (
	"net/http"
	"sync"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/tokyo_attractions_backend/api"
	"github.com/njprem/tokyo_attractions_backend/internal/util"
)

// RegisterSwagger serves the embedded API document as JSON on
// /swagger/doc.json and the Swagger UI under /swagger.
func RegisterSwagger(e *echo.Echo) {
	var (
		once    sync.Once
		doc     []byte
		convErr error
	)

	e.GET("/swagger/doc.json", func(c echo.Context) error {
		once.Do(func() {
			doc, convErr = yaml.YAMLToJSON(api.OpenAPI)
		})
		if convErr != nil {
			c.Logger().Errorf("convert swagger spec: %v", convErr)
			return c.JSON(http.StatusInternalServerError, util.Error("unable to parse swagger spec"))
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
