package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/tracing"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// defaultExchangeLimit caps exchange listings without an explicit limit
const defaultExchangeLimit = 100

// SpecSource supplies the rendered documents
type SpecSource interface {
	// Spec returns the Swagger 2.0 document as JSON
	Spec() ([]byte, error)
	// SpecV3 returns the OpenAPI 3 document as JSON
	SpecV3() ([]byte, error)
}

// Handler handles document requests
type Handler struct {
	source         SpecSource
	tracingService *tracing.Service
	logger         *logrus.Logger
	onError        func(error)
}

// NewHandler creates a new document handler. tracingService may be nil when
// the exchange feed is disabled.
func NewHandler(source SpecSource, tracingService *tracing.Service, logger *logrus.Logger, onError func(error)) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if onError == nil {
		onError = func(err error) {
			logger.WithError(err).Error("Failed to render specification")
		}
	}
	return &Handler{
		source:         source,
		tracingService: tracingService,
		logger:         logger,
		onError:        onError,
	}
}

// GetSpec returns the Swagger 2.0 document
func (h *Handler) GetSpec(c *gin.Context) {
	h.serve(c, h.source.Spec)
}

// GetSpecV3 returns the OpenAPI 3 document
func (h *Handler) GetSpecV3(c *gin.Context) {
	h.serve(c, h.source.SpecV3)
}

func (h *Handler) serve(c *gin.Context, render func() ([]byte, error)) {
	data, err := render()
	if err != nil {
		h.onError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// GetSpecYAML returns the Swagger 2.0 document as YAML
func (h *Handler) GetSpecYAML(c *gin.Context) {
	data, err := h.source.Spec()
	if err == nil {
		data, err = toYAML(data)
	}
	if err != nil {
		h.onError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/x-yaml", data)
}

func toYAML(data []byte) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// DocsPage returns a handler serving the documentation UI for specURL
func (h *Handler) DocsPage(title, specURL string) gin.HandlerFunc {
	page := []byte(swaggerUIPage(title, specURL))
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	}
}

// ListExchanges returns recently observed exchanges
func (h *Handler) ListExchanges(c *gin.Context) {
	filter, err := tracing.ParseFilter(c.Request.URL.Query(), defaultExchangeLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.tracingService.Exchanges(filter))
}

// GetExchange returns a single exchange
func (h *Handler) GetExchange(c *gin.Context) {
	exchange := h.tracingService.Exchange(c.Param("id"))
	if exchange == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Exchange not found"})
		return
	}
	c.JSON(http.StatusOK, exchange)
}

// ClearExchanges removes all recorded exchanges
func (h *Handler) ClearExchanges(c *gin.Context) {
	h.tracingService.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Exchanges cleared"})
}

// GetFeedStats returns exchange feed statistics
func (h *Handler) GetFeedStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracingService.Stats())
}
