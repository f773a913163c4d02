package notion

import (
	"net/http"
	"slices"

	"golang.org/x/oauth2"
)

// ExcludedTag is filtered out of every query unless it is requested explicitly.
const ExcludedTag = "set"

// Properties names the database columns the queries read.
type Properties struct {
	Tags    string
	URL     string
	Created string
}

// DefaultProperties returns the column names used by the reference database.
func DefaultProperties() Properties {
	return Properties{
		Tags:    "Tags",
		URL:     "URL",
		Created: "Created",
	}
}

// MultiSelectCondition is a filter condition on a multi-select property.
// Exactly one field is set.
type MultiSelectCondition struct {
	Contains       *string `json:"contains,omitempty"`
	DoesNotContain *string `json:"does_not_contain,omitempty"`
}

// Predicate is a single property filter.
type Predicate struct {
	Property    string               `json:"property"`
	MultiSelect MultiSelectCondition `json:"multi_select"`
}

// Filter is a conjunction of predicates.
type Filter struct {
	And []Predicate `json:"and"`
}

// Sort orders query results by a property.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// Query is the body of a database query request.
type Query struct {
	Filter Filter `json:"filter"`
	Sorts  []Sort `json:"sorts"`
}

// Contains returns a predicate matching records tagged with tag.
func Contains(property, tag string) Predicate {
	return Predicate{Property: property, MultiSelect: MultiSelectCondition{Contains: &tag}}
}

// DoesNotContain returns a predicate matching records not tagged with tag.
func DoesNotContain(property, tag string) Predicate {
	return Predicate{Property: property, MultiSelect: MultiSelectCondition{DoesNotContain: &tag}}
}

// BuildQuery builds the filter and sort payload for tags. Every tag must be
// present on a record; records tagged ExcludedTag are dropped unless it is one
// of the tags. Results are sorted newest first. No page size is sent.
func BuildQuery(tags []string, props Properties) Query {
	and := make([]Predicate, 0, len(tags)+1)
	for _, tag := range tags {
		and = append(and, Contains(props.Tags, tag))
	}
	if !slices.Contains(tags, ExcludedTag) {
		and = append(and, DoesNotContain(props.Tags, ExcludedTag))
	}

	return Query{
		Filter: Filter{And: and},
		Sorts:  []Sort{{Property: props.Created, Direction: "descending"}},
	}
}

// Headers returns the headers sent with every request. Authorization is added
// by the client's transport.
func Headers(apiVersion string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("Notion-Version", apiVersion)
	return h
}

// StaticToken wraps an integration secret as a bearer token.
func StaticToken(secret string) *oauth2.Token {
	return &oauth2.Token{AccessToken: secret, TokenType: "Bearer"}
}

// authorized returns a copy of base whose transport signs every request
// with token.
func authorized(base *http.Client, token *oauth2.Token) *http.Client {
	transport := base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	hc := *base
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(token),
		Base:   transport,
	}
	return &hc
}
