package notion

import "time"

// Record is a database page reduced to the fields playback needs.
type Record struct {
	ID          string
	CreatedTime time.Time
	URL         *string
	Tags        []string
}

// SelectOption is a multi-select value.
type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// page is a query result item.
type page struct {
	Object      string                  `json:"object"`
	ID          string                  `json:"id"`
	CreatedTime time.Time               `json:"created_time"`
	Properties  map[string]pageProperty `json:"properties"`
}

// pageProperty holds the value of one property of a page. Only the value
// kinds read here are decoded.
type pageProperty struct {
	Type        string         `json:"type"`
	URL         *string        `json:"url"`
	MultiSelect []SelectOption `json:"multi_select"`
}

// queryResponse is the body of a database query response.
type queryResponse struct {
	Object     string  `json:"object"`
	Results    []page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

func (p page) record(props Properties) Record {
	r := Record{
		ID:          p.ID,
		CreatedTime: p.CreatedTime,
	}
	if prop, ok := p.Properties[props.URL]; ok && prop.URL != nil {
		u := *prop.URL
		r.URL = &u
	}
	if prop, ok := p.Properties[props.Tags]; ok {
		for _, o := range prop.MultiSelect {
			r.Tags = append(r.Tags, o.Name)
		}
	}
	return r
}
