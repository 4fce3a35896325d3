package query

// Order is a single-key ordering instruction for the user listing.
type Order struct {
	Column string
	Desc   bool
}

// DefaultOrder is applied when no valid sort field is requested: newest
// records first.
var DefaultOrder = Order{Column: "created_at", Desc: true}

// sortColumns maps the API-level sort fields to their storage columns.
// Anything outside this map falls back to DefaultOrder.
var sortColumns = map[string]string{
	"fullName":  "full_name",
	"email":     "email",
	"createdAt": "created_at",
}

// ResolveSort maps a requested sortBy/sortOrder pair to an Order. An unknown
// or absent sortBy silently falls back to DefaultOrder; a valid sortBy
// defaults to ascending unless sortOrder is exactly "desc".
func ResolveSort(sortBy, sortOrder string) Order {
	column, ok := sortColumns[sortBy]
	if !ok {
		return DefaultOrder
	}
	return Order{Column: column, Desc: sortOrder == "desc"}
}

// SQL renders the ordering to an ORDER BY body.
func (o Order) SQL() string {
	if o.Desc {
		return o.Column + " DESC"
	}
	return o.Column + " ASC"
}
