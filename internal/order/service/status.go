package service

// Status is the order lifecycle state.
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Cancellable reports whether the user-initiated cancel transition is allowed
// from s. Only Processing orders can be cancelled; Shipped, Delivered and
// Cancelled are terminal for the user path.
func (s Status) Cancellable() bool {
	return s == StatusProcessing
}

// StatusDisplay describes how a status is presented: a short label, an icon
// and an emphasis level the UI maps to styling.
type StatusDisplay struct {
	Label    string `json:"label"`
	Icon     string `json:"icon"`
	Emphasis string `json:"emphasis"`
}

var statusDisplays = map[Status]StatusDisplay{
	StatusProcessing: {Label: "Processing", Icon: "⏳", Emphasis: "warning"},
	StatusShipped:    {Label: "Shipped", Icon: "🚚", Emphasis: "info"},
	StatusDelivered:  {Label: "Delivered", Icon: "✓", Emphasis: "success"},
}

// Display resolves the presentation descriptor for s. Statuses without an
// entry, Cancelled included, get a neutral descriptor.
func (s Status) Display() StatusDisplay {
	if d, ok := statusDisplays[s]; ok {
		return d
	}
	return StatusDisplay{Label: string(s), Icon: "•", Emphasis: "neutral"}
}
