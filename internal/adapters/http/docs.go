package http

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
)

const openapiFile = "api/openapi.yaml"

// SetupDocs serves Swagger UI at /docs against the OpenAPI document at
// /docs/openapi.yaml. The UI assets come from the swagger-ui-dist CDN, so
// nothing is bundled into the binary.
func SetupDocs(app *fiber.App) {
	page := docsPage("TripFinder API", "/docs/openapi.yaml")

	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Set("Content-Type", "text/html; charset=utf-8")
		return c.SendString(page)
	})

	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		spec, err := os.ReadFile(openapiFile)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "openapi document not found"})
		}
		c.Set("Content-Type", "application/yaml")
		return c.Send(spec)
	})
}

func docsPage(title, specURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s docs</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
<style>body{margin:0}</style>
</head>
<body>
<div id="docs"></div>
<script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: '#docs', deepLinking: true});
</script>
</body>
</html>`, title, specURL)
}
