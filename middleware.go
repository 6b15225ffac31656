package oasgen

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prasenjit/go-oasgen/internal/models"
	"github.com/prasenjit/go-oasgen/internal/processors"
)

// middleware observes every exchange on a documented route. The request is
// processed before the handler runs and the response once it has returned;
// neither is altered.
func (g *Generator) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		template, method, ok := g.resolve(c.Request)
		if !ok {
			c.Next()
			return
		}

		start := time.Now()
		g.observeRequest(c.Request, template, method)

		recorder := processors.NewResponseRecorder(c.Writer, g.captureLimit(), func(status int) bool {
			return g.wantsResponse(template, method, status)
		})
		c.Writer = recorder

		c.Next()

		capture := recorder.Result()
		g.observeResponse(template, method, capture)

		if g.feed != nil {
			g.feed.Record(&models.Exchange{
				Timestamp:          start,
				Duration:           time.Since(start).Nanoseconds(),
				Method:             c.Request.Method,
				URL:                c.Request.URL.RequestURI(),
				PathTemplate:       template,
				StatusCode:         capture.Status,
				ContentType:        processors.MediaType(capture.ContentType),
				RequestContentType: processors.MediaType(c.Request.Header.Get("Content-Type")),
				Captured:           !capture.Compressed && !capture.Truncated,
			})
		}
		if w := g.currentWriter(); w != nil {
			w.Schedule()
		}
	}
}

// resolve maps the request to a documented template and lower-cased method
func (g *Generator) resolve(r *http.Request) (string, string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.matcher == nil {
		return "", "", false
	}
	template, ok := g.matcher.Resolve(r.Method, r.URL.RequestURI())
	if !ok {
		return "", "", false
	}
	method := strings.ToLower(r.Method)
	if g.spec.Operation(template, method) == nil {
		return "", "", false
	}
	return template, method, true
}

func (g *Generator) captureLimit() int {
	if g.opts.MaxBodyBytes < 0 {
		return 0
	}
	return int(g.opts.MaxBodyBytes)
}

func (g *Generator) observeRequest(r *http.Request, template, method string) {
	var body []byte
	if limit := g.opts.MaxBodyBytes; limit > 0 {
		data, truncated, err := processors.ReadBody(r, limit)
		switch {
		case err != nil:
			g.logger.WithError(err).Debug("Failed to read request body")
		case !truncated:
			body = data
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	op := g.spec.Operation(template, method)
	g.spec.AddScheme(scheme(r))
	g.spec.SetHost(r.Host)

	g.process("path", func() error {
		return processors.Path(op, template, r.URL.EscapedPath())
	})
	g.process("headers", func() error {
		processors.Headers(op, g.spec, r.Header)
		return nil
	})
	g.process("body", func() error {
		return processors.Body(op, r.Header.Get("Content-Type"), body)
	})
	g.process("query", func() error {
		processors.Query(op, r.URL.Query())
		return nil
	})
}

func (g *Generator) wantsResponse(template, method string, status int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.spec.Operation(template, method).HasResponse(status)
}

func (g *Generator) observeResponse(template, method string, capture processors.Capture) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.process("response", func() error {
		processors.Response(g.spec.Operation(template, method), capture)
		return nil
	})
}

// process runs one processor, reducing errors and panics to a debug log
func (g *Generator) process(name string, fn func() error) {
	defer func() {
		if rv := recover(); rv != nil {
			g.logger.WithField("processor", name).WithError(fmt.Errorf("%v", rv)).Debug("Processor panicked")
		}
	}()
	if err := fn(); err != nil {
		g.logger.WithField("processor", name).WithError(err).Debug("Processor skipped")
	}
}

func scheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
