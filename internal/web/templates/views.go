package templates

// Page holds the fields shared by every page.
type Page struct {
	Title string
	Nav   []NavItem
}

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Cell is one rendered value of a listing row.
type Cell struct {
	Label string // Column header, repeated on the mobile cards
	Value string
	Kind  string // "text", "image" or "status"
	Class string // Badge modifier for status cells
}

// ListRow is one listed record with its row actions.
type ListRow struct {
	ID          string
	Singular    string
	Cells       []Cell
	EditPath    string
	DeletePath  string
	ConfirmPath string // Listing URL with this row in the confirming state
	ReturnPath  string // Listing URL to come back to after a delete or cancel
	Confirming  bool
}

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Ellipsis bool
}

// Pagination is the pagination bar. Prev and Next are empty when disabled.
type Pagination struct {
	Page       int
	TotalPages int
	Prev       string
	Next       string
	Links      []PageLink
}

// ListView is the data for an entity listing page.
type ListView struct {
	Page
	Label      string
	Singular   string
	ListPath   string
	CreatePath string
	Headers    []string
	Rows       []ListRow
	Query      string
	Notice     string
	Pagination Pagination
}

// Choice is one option of a select box or radio group.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// FormField is one input of an entity form.
type FormField struct {
	ID          string
	Name        string
	Label       string
	Widget      string // "input", "select", "radio" or "textarea"
	InputType   string
	Value       string
	Step        string
	Placeholder string
	Choices     []Choice
	Errors      []string
	DependsOn   string // Field whose value filters this select's choices
	LookupURL   string // Prefix the selected DependsOn value is appended to
}

// FormView is the data for a create or edit page.
type FormView struct {
	Page
	Label       string
	Heading     string
	Action      string
	CancelPath  string
	SubmitLabel string
	Fields      []FormField
	Message     string
	Success     bool
}

// Card is one overview figure.
type Card struct {
	Title string
	Value string
}

// LatestRow is one entry of the latest invoices list.
type LatestRow struct {
	Name     string
	Email    string
	ImageURL string
	Amount   string
}

// DashboardView is the data for the overview page.
type DashboardView struct {
	Page
	Cards  []Card
	Latest []LatestRow
}

// NotFoundView is the data for the 404 page.
type NotFoundView struct {
	Page
	Message   string
	BackPath  string
	BackLabel string
}

// ErrorView is the data for a full-page error.
type ErrorView struct {
	Page
	Message string
	Action  string
	Code    string
}
