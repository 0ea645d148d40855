package browser

// Kind selects the locator strategy for a Selector.
type Kind string

const (
	// ByClass locates elements by CSS class name.
	ByClass Kind = "class"

	// ByID locates an element by its id attribute.
	ByID Kind = "id"

	// ByTag locates elements by tag name.
	ByTag Kind = "tag"

	// ByCSS locates elements by a raw CSS selector.
	ByCSS Kind = "css"
)

// Selector identifies page elements through a single tagged locator
// strategy. All session operations consume selectors uniformly,
// regardless of kind.
type Selector struct {
	Kind  Kind
	Value string
}

// Class returns a class-name selector.
func Class(value string) Selector { return Selector{Kind: ByClass, Value: value} }

// ID returns an element-id selector.
func ID(value string) Selector { return Selector{Kind: ByID, Value: value} }

// Tag returns a tag-name selector.
func Tag(value string) Selector { return Selector{Kind: ByTag, Value: value} }

// CSS returns a raw CSS selector.
func CSS(value string) Selector { return Selector{Kind: ByCSS, Value: value} }

// Query renders the selector as the CSS selector string handed to the
// browser.
func (s Selector) Query() string {
	switch s.Kind {
	case ByClass:
		return "." + s.Value
	case ByID:
		return "#" + s.Value
	default:
		return s.Value
	}
}

func (s Selector) String() string { return s.Query() }
