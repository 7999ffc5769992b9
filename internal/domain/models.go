package domain

// Photo is one record of a photo feed search
type Photo struct {
	Title       string
	Description string // entity-decoded, tags stripped
	URL         string // thumbnail image URL
}

// Visibility is the busy indicator state exposed to the view
type Visibility int

const (
	// VisibilityHidden means no search has run yet
	VisibilityHidden Visibility = iota
	// VisibilityVisible means a search is in flight
	VisibilityVisible
	// VisibilityCollapsed means idle after at least one search
	VisibilityCollapsed
)

func (v Visibility) String() string {
	switch v {
	case VisibilityVisible:
		return "visible"
	case VisibilityCollapsed:
		return "collapsed"
	default:
		return "hidden"
	}
}
