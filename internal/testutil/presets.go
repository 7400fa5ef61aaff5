package testutil

// Demo is the smallest interesting program: a flow window with a label and a
// text field.
const Demo = `window "Demo" (300,200) layout flow: label "Hi"; textfield 10; end.`

// Calculator is a grid of buttons under a display field, with nested panels.
func Calculator() string {
	return NewProgram("Calculator", 200, 300).
		WithLayout(GridGaps(2, 1, 5, 5)).
		TextField(20).
		Panel(Grid(4, 3), func(p *Body) {
			for _, key := range []string{"7", "8", "9", "4", "5", "6", "1", "2", "3", "0", ".", "="} {
				p.Button(key)
			}
		}).
		String()
}

// Survey mixes every widget kind, including a two-level panel nesting.
func Survey() string {
	return NewProgram("Survey", 400, 300).
		Label("Name").
		TextField(25).
		Panel(Flow(), func(p *Body) {
			p.Label("Size")
			p.Group("Small", "Medium", "Large")
			p.Panel(Grid(1, 2), func(inner *Body) {
				inner.Button("OK")
				inner.Button("Cancel")
			})
		}).
		String()
}
