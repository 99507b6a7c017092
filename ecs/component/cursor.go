package component

// Cursor stores the mouse state of the current frame.
type Cursor struct {
	ScreenX float64
	ScreenY float64
	X       float64
	Y       float64

	Primary   bool
	Secondary bool
	// Set only on the frame the button went down.
	PrimaryPressed   bool
	SecondaryPressed bool
}

var CursorComponent = NewComponent[Cursor]()
