package rest

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISource []byte

//go:embed swagger.html
var swaggerPage []byte

var loadOpenAPI = sync.OnceValues(func() (map[string]any, error) {
	return parseOpenAPI(openAPISource)
})

func parseOpenAPI(src []byte) (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("openapi document: %w", err)
	}
	return doc, nil
}

func (s *HTTPServer) apiDocs(c *gin.Context) {
	doc, err := loadOpenAPI()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *HTTPServer) swaggerConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": "/v3/api-docs"})
}

func (s *HTTPServer) swaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", swaggerPage)
}
