package feed

const DEFAULT_BATCH_SIZE = 100

const (
	ID_FIELD           = "id"
	TITLE_FIELD        = "title"
	DESCRIPTION_FIELD  = "description"
	LINK_FIELD         = "link"
	IMAGE_LINK_FIELD   = "image_link"
	BRAND_FIELD        = "brand"
	AVAILABILITY_FIELD = "availability"
	PRICE_FIELD        = "price"
)

// Field is a single named value of a Record. Null is set when the
// source had an explicit null, in which case Value is empty
type Field struct {
	Name  string
	Value string
	Null  bool
}

// Record is one feed entry. Fields are kept in the order they were decoded in,
// which is the order they get written out in
type Record struct {
	Fields []Field

	price    float64
	hasPrice bool
}

func NewRecord(capacity int) *Record {
	return &Record{
		Fields: make([]Field, 0, capacity),
	}
}

func (r *Record) index(name string) int {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return i
		}
	}

	return -1
}

// Get returns the field with the given name, and whether it exists
func (r *Record) Get(name string) (Field, bool) {
	if i := r.index(name); i >= 0 {
		return r.Fields[i], true
	}

	return Field{}, false
}

// Value returns the string value of the given field, or "" if it's missing or null
func (r *Record) Value(name string) string {
	f, _ := r.Get(name)
	return f.Value
}

// Set replaces the value of the named field in place, appending it
// to the end of the record if it doesn't exist yet
func (r *Record) Set(name, value string) {
	if i := r.index(name); i >= 0 {
		r.Fields[i].Value = value
		r.Fields[i].Null = false
		return
	}

	r.Append(Field{Name: name, Value: value})
}

// Put replaces the named field, value and null flag alike, or appends it
func (r *Record) Put(f Field) {
	if i := r.index(f.Name); i >= 0 {
		r.Fields[i] = f
		return
	}

	r.Append(f)
}

// Append adds a field without checking for duplicates. Used when the caller
// knows the name is new
func (r *Record) Append(f Field) {
	r.Fields = append(r.Fields, f)
}

func (r *Record) Names() []string {
	names := make([]string, len(r.Fields))
	for i := range r.Fields {
		names[i] = r.Fields[i].Name
	}

	return names
}

func (r *Record) Values() []string {
	values := make([]string, len(r.Fields))
	for i := range r.Fields {
		values[i] = r.Fields[i].Value
	}

	return values
}

// SetPrice records the numeric price that a filter validated for this record
func (r *Record) SetPrice(price float64) {
	r.price = price
	r.hasPrice = true
}

// Price returns the validated numeric price, if one has been set
func (r *Record) Price() (float64, bool) {
	return r.price, r.hasPrice
}
