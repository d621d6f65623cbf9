// Package docs provides Swagger documentation for the API.
package docs

// @title SND CRM Backend API
// @version 1.0
// @description Multi-tenant CRM backend with rotating refresh-token authentication
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@sndservices.io

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
