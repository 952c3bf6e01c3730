package sheet

// RawRow is one data line keyed by header. Header order is the column order of the
// source; a duplicated header keeps its first position and its last value.
type RawRow struct {
	headers []string
	values  map[string]string
}

// NewRawRow builds a row from parallel header/value slices. Missing values are empty.
func NewRawRow(headers, values []string) RawRow {
	row := RawRow{
		headers: make([]string, 0, len(headers)),
		values:  make(map[string]string, len(headers)),
	}
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row.set(h, v)
	}
	return row
}

func (r *RawRow) set(header, value string) {
	if _, ok := r.values[header]; !ok {
		r.headers = append(r.headers, header)
	}
	r.values[header] = value
}

// Get returns the value stored under the exact header.
func (r RawRow) Get(header string) (string, bool) {
	v, ok := r.values[header]
	return v, ok
}

// Headers returns the row's keys in column order.
func (r RawRow) Headers() []string {
	return append([]string(nil), r.headers...)
}

// At returns the header and value of the i-th column.
func (r RawRow) At(i int) (header, value string, ok bool) {
	if i < 0 || i >= len(r.headers) {
		return "", "", false
	}
	header = r.headers[i]
	return header, r.values[header], true
}

func (r RawRow) Len() int {
	return len(r.headers)
}

// Map returns a copy of the header/value mapping.
func (r RawRow) Map() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}
