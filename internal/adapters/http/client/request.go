package client

import (
	"net/url"
	"strconv"
)

// RequestOptions carries the optional query parameters of a listing call.
// Unset fields are not sent.
type RequestOptions struct {
	Page *int
	Size *int
	// Sort entries are sent as repeated "sort" parameters, e.g. "city,desc".
	Sort []string
	// Filter holds any other parameters, sent verbatim.
	Filter url.Values
}

// PageOf builds options for one page of a listing.
func PageOf(page, size int, sort ...string) *RequestOptions {
	return &RequestOptions{Page: &page, Size: &size, Sort: sort}
}

// Values encodes o as URL query values. A nil receiver yields nil.
func (o *RequestOptions) Values() url.Values {
	if o == nil {
		return nil
	}
	v := make(url.Values, len(o.Filter)+3)
	for k, vs := range o.Filter {
		v[k] = append([]string(nil), vs...)
	}
	if o.Page != nil {
		v.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		v.Set("size", strconv.Itoa(*o.Size))
	}
	for _, s := range o.Sort {
		v.Add("sort", s)
	}
	if len(v) == 0 {
		return nil
	}
	return v
}
