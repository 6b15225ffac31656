package models

// SwaggerVersion is the document dialect produced by the generator
const SwaggerVersion = "2.0"

// Spec represents a generated Swagger 2.0 document
type Spec struct {
	Swagger             string                     `json:"swagger"`
	Info                Info                       `json:"info"`
	Host                string                     `json:"host,omitempty"`     // First observed Host header
	BasePath            string                     `json:"basePath,omitempty"` // From package metadata
	Schemes             []string                   `json:"schemes,omitempty"`  // Observed protocols, insertion ordered
	Tags                []Tag                      `json:"tags,omitempty"`
	Paths               map[string]PathItem        `json:"paths"`
	Definitions         map[string]*Schema         `json:"definitions,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme `json:"securityDefinitions,omitempty"`
}

// Info holds the document metadata
type Info struct {
	Title       string   `json:"title"`
	Version     string   `json:"version"`
	Description string   `json:"description,omitempty"`
	License     *License `json:"license,omitempty"`
}

// License names the API license
type License struct {
	Name string `json:"name"`
}

// Tag is a declared operation tag
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem maps a lower-cased HTTP method to its operation
type PathItem map[string]*Operation

// SecurityScheme describes an inferred security definition
type SecurityScheme struct {
	Type string `json:"type"` // Always "apiKey" for observed headers
	In   string `json:"in"`
	Name string `json:"name"`
}

// NewSpec creates an empty document
func NewSpec() *Spec {
	return &Spec{
		Swagger: SwaggerVersion,
		Paths:   make(map[string]PathItem),
	}
}

// Operation returns the operation registered for path and method, if any
func (s *Spec) Operation(path, method string) *Operation {
	item, ok := s.Paths[path]
	if !ok {
		return nil
	}
	return item[method]
}

// AddScheme records a protocol once, keeping first-seen order
func (s *Spec) AddScheme(scheme string) {
	if scheme == "" {
		return
	}
	for _, existing := range s.Schemes {
		if existing == scheme {
			return
		}
	}
	s.Schemes = append(s.Schemes, scheme)
}

// SetHost records the host only the first time it is observed
func (s *Spec) SetHost(host string) {
	if s.Host == "" {
		s.Host = host
	}
}

// EnsureAPIKey registers an apiKey-in-header security definition
func (s *Spec) EnsureAPIKey(header string) {
	if s.SecurityDefinitions == nil {
		s.SecurityDefinitions = make(map[string]*SecurityScheme)
	}
	if _, ok := s.SecurityDefinitions[header]; ok {
		return
	}
	s.SecurityDefinitions[header] = &SecurityScheme{
		Type: "apiKey",
		In:   LocationHeader,
		Name: header,
	}
}
