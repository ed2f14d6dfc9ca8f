package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the site API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>LadyPi89 site API - Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "ladypi89-site", "version": "v1.0.0" },
  "paths": {
    "/api/": { "get": { "summary": "Hello World", "responses": { "200": { "description": "greeting" } } } },
    "/api/status": {
      "get": { "summary": "List status checks", "responses": { "200": { "description": "status checks" } } },
      "post": { "summary": "Record a status check", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["client_name"],"properties":{"client_name":{"type":"string"}}}}}}, "responses": { "200": { "description": "created" }, "422": { "description": "validation failed" } } }
    },
    "/api/biography": {
      "get": { "summary": "Get biography (seeds default on first read)", "responses": { "200": { "description": "biography" } } },
      "put": { "summary": "Partially update biography", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"name":{"type":"string"},"title":{"type":"string"},"bio":{"type":"string"},"tagline":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated" }, "404": { "description": "not seeded" }, "422": { "description": "validation failed" } } }
    },
    "/api/partnerships": {
      "get": { "summary": "List partnerships (seeds defaults once)", "responses": { "200": { "description": "partnerships" } } },
      "post": { "summary": "Create partnership", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","role","logo","handle"],"properties":{"name":{"type":"string"},"role":{"type":"string"},"logo":{"type":"string"},"handle":{"type":"string"},"url":{"type":"string","nullable":true}}}}}}, "responses": { "200": { "description": "created" }, "422": { "description": "validation failed" } } }
    },
    "/api/partnerships/{id}": {
      "put": { "summary": "Partially update partnership; url may be null to clear it", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "updated" }, "404": { "description": "not found" }, "422": { "description": "validation failed" } } },
      "delete": { "summary": "Delete partnership", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/social-media": {
      "get": { "summary": "List social media links (seeds defaults once)", "responses": { "200": { "description": "links" } } },
      "post": { "summary": "Create social media link", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["platform","url","icon","color"],"properties":{"platform":{"type":"string"},"url":{"type":"string"},"icon":{"type":"string"},"color":{"type":"string"}}}}}}, "responses": { "200": { "description": "created" }, "422": { "description": "validation failed" } } }
    },
    "/api/social-media/{id}": {
      "put": { "summary": "Partially update social media link", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "updated" }, "404": { "description": "not found" }, "422": { "description": "validation failed" } } },
      "delete": { "summary": "Delete social media link", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}}], "responses": { "200": { "description": "deleted" }, "404": { "description": "not found" } } }
    },
    "/api/contact": {
      "get": { "summary": "List contact submissions, newest first", "responses": { "200": { "description": "submissions" } } },
      "post": { "summary": "Submit contact form", "requestBody": { "content": { "application/json": { "schema": {"type":"object","required":["name","email","message"],"properties":{"name":{"type":"string"},"email":{"type":"string","format":"email"},"message":{"type":"string"}}}}}}, "responses": { "200": { "description": "created" }, "422": { "description": "validation failed" }, "429": { "description": "rate limited" } } }
    },
    "/api/contact/{id}/status": {
      "put": { "summary": "Set contact status", "parameters": [{"name":"id","in":"path","required":true,"schema":{"type":"string"}},{"name":"status","in":"query","required":true,"schema":{"type":"string","enum":["new","read","responded"]}}], "responses": { "200": { "description": "updated" }, "400": { "description": "invalid status" }, "404": { "description": "not found" } } }
    },
    "/api/streaming-status": {
      "get": { "summary": "Get streaming status (seeds default on first read)", "responses": { "200": { "description": "status" } } },
      "put": { "summary": "Set streaming status", "parameters": [{"name":"status","in":"query","required":true,"schema":{"type":"string","enum":["online","offline","streaming"]}},{"name":"game","in":"query","schema":{"type":"string","default":"Rocket League"}}], "responses": { "200": { "description": "updated" }, "400": { "description": "invalid status" }, "404": { "description": "not seeded" } } }
    },
    "/api/media": {
      "post": { "summary": "Upload an image (multipart field 'file')", "responses": { "200": { "description": "key and presigned url" }, "413": { "description": "too large" }, "415": { "description": "not an image" } } }
    },
    "/api/media/{key}": {
      "get": { "summary": "Redirect to a presigned download URL", "responses": { "302": { "description": "redirect" }, "404": { "description": "not found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "metrics" } } } }
  }
}`
