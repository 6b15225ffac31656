package models

import "strconv"

// Parameter locations
const (
	LocationPath   = "path"
	LocationQuery  = "query"
	LocationBody   = "body"
	LocationHeader = "header"
)

// Operation represents one HTTP method on one path
type Operation struct {
	Summary    string                `json:"summary,omitempty"`
	Tags       []string              `json:"tags,omitempty"`
	Consumes   []string              `json:"consumes,omitempty"`
	Produces   []string              `json:"produces,omitempty"`
	Parameters []*Parameter          `json:"parameters"`
	Responses  map[string]*Response  `json:"responses"`
	Security   []SecurityRequirement `json:"security,omitempty"`
}

// SecurityRequirement is a single-key requirement object, e.g. {"authorization": []}
type SecurityRequirement map[string][]string

// Parameter describes a path, query, header or body parameter
type Parameter struct {
	Name             string             `json:"name"`
	In               string             `json:"in"`
	Description      string             `json:"description,omitempty"`
	Required         bool               `json:"required,omitempty"`
	Type             string             `json:"type,omitempty"`
	Items            *Schema            `json:"items,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	CollectionFormat string             `json:"collectionFormat,omitempty"` // "multi" for repeated query values
	Example          any                `json:"example,omitempty"`
	Schema           *Schema            `json:"schema,omitempty"` // Body parameters only
}

// Response is a recorded response for a status code
type Response struct {
	Description string  `json:"description"`
	Schema      *Schema `json:"schema,omitempty"`
}

// NewOperation creates an operation with initialized collections
func NewOperation(summary string) *Operation {
	return &Operation{
		Summary:    summary,
		Parameters: make([]*Parameter, 0),
		Responses:  make(map[string]*Response),
	}
}

// Param finds a parameter by name and location
func (o *Operation) Param(name, in string) *Parameter {
	for _, p := range o.Parameters {
		if p.Name == name && p.In == in {
			return p
		}
	}
	return nil
}

// HasParamNamed reports whether any parameter, whatever its location, uses name
func (o *Operation) HasParamNamed(name string) bool {
	for _, p := range o.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasBody reports whether a body parameter has been recorded
func (o *Operation) HasBody() bool {
	for _, p := range o.Parameters {
		if p.In == LocationBody {
			return true
		}
	}
	return false
}

// AddParam appends p unless a parameter with the same name and location exists
func (o *Operation) AddParam(p *Parameter) bool {
	if o.Param(p.Name, p.In) != nil {
		return false
	}
	o.Parameters = append(o.Parameters, p)
	return true
}

// HasResponse reports whether status already has a recorded response
func (o *Operation) HasResponse(status int) bool {
	_, ok := o.Responses[strconv.Itoa(status)]
	return ok
}

// SetResponse records r for status unless one is already recorded
func (o *Operation) SetResponse(status int, r *Response) bool {
	if o.Responses == nil {
		o.Responses = make(map[string]*Response)
	}
	key := strconv.Itoa(status)
	if _, ok := o.Responses[key]; ok {
		return false
	}
	o.Responses[key] = r
	return true
}

// AddSecurity appends a requirement for name unless already present
func (o *Operation) AddSecurity(name string) {
	for _, req := range o.Security {
		if _, ok := req[name]; ok {
			return
		}
	}
	o.Security = append(o.Security, SecurityRequirement{name: []string{}})
}

// AddProduces records a response content type once
func (o *Operation) AddProduces(contentType string) {
	o.Produces = appendUnique(o.Produces, contentType)
}

// AddConsumes records a request content type once
func (o *Operation) AddConsumes(contentType string) {
	o.Consumes = appendUnique(o.Consumes, contentType)
}

func appendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
