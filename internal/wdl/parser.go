package wdl

// widgetStarts lists the keywords that begin a Widget production, in the
// order they are reported in diagnostics.
var widgetStarts = []TokenType{TokenButton, TokenGroup, TokenLabel, TokenPanel, TokenTextfield}

// widgetOrEnd is widgetStarts plus the "end" that closes a container body.
var widgetOrEnd = []TokenType{TokenButton, TokenGroup, TokenLabel, TokenPanel, TokenTextfield, TokenEnd}

// Parser parses WDL tokens into a widget tree. A Parser is single use.
type Parser struct {
	lexer   *Lexer
	current Token
	stack   *containerStack
}

// NewParser creates a parser for the input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input), stack: newContainerStack()}
	p.nextToken()
	return p
}

// Parse parses a complete program and returns its Window. On failure the
// error is a *Diagnostic describing the first offending token and no tree is
// returned.
func Parse(input string) (*Window, error) {
	return NewParser(input).Parse()
}

// Parse parses the input and returns the Window.
// program = "window" string "(" number "," number ")" layout widget+ "end" "."
func (p *Parser) Parse() (*Window, error) {
	if _, err := p.expect(TokenWindow); err != nil {
		return nil, err
	}
	title, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	width, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	height, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	layout, err := p.parseLayout()
	if err != nil {
		return nil, err
	}
	p.stack.root().layout = layout

	// At least one widget.
	if !p.current.Type.StartsWidget() {
		return nil, newDiagnostic(p.current, widgetStarts...)
	}
	if err := p.parseWidgets(); err != nil {
		return nil, err
	}

	// The program is closed by "end ." which is distinct from "end ;".
	if _, err := p.expect(TokenEnd); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenPeriod); err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, newDiagnostic(p.current, TokenEOF)
	}

	root := p.stack.root()
	return &Window{
		Title:    title.Literal,
		Width:    width.Value,
		Height:   height.Value,
		Layout:   root.layout,
		Children: root.children,
	}, nil
}

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.current = p.lexer.NextToken()
}

// expect consumes the current token if it has type t.
func (p *Parser) expect(t TokenType) (Token, error) {
	if p.current.Type != t {
		return p.current, newDiagnostic(p.current, t)
	}
	tok := p.current
	p.nextToken()
	return tok, nil
}

// parseWidgets parses widgets until the current token cannot start one. It
// then requires "end" so the diagnostic lists every valid continuation.
func (p *Parser) parseWidgets() error {
	for p.current.Type.StartsWidget() {
		if err := p.parseWidget(); err != nil {
			return err
		}
	}
	if p.current.Type != TokenEnd {
		return newDiagnostic(p.current, widgetOrEnd...)
	}
	return nil
}

// parseLayout parses a layout declaration.
// layout = "layout" ( "flow" ":" | grid )
func (p *Parser) parseLayout() (Layout, error) {
	if _, err := p.expect(TokenLayout); err != nil {
		return nil, err
	}

	switch p.current.Type {
	case TokenFlow:
		p.nextToken() // consume FLOW
		if _, err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		return FlowLayout{}, nil
	case TokenGrid:
		return p.parseGrid()
	default:
		return nil, newDiagnostic(p.current, TokenFlow, TokenGrid)
	}
}

// parseGrid parses a grid layout in its two or four argument form.
// grid = "grid" "(" number "," number [ "," number "," number ] ")" ":"
func (p *Parser) parseGrid() (Layout, error) {
	p.nextToken() // consume GRID

	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	rows, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	cols, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	grid := GridLayout{Rows: rows.Value, Cols: cols.Value}

	// One token decides between the two forms.
	switch p.current.Type {
	case TokenRParen:
		p.nextToken()
	case TokenComma:
		p.nextToken()
		hgap, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenComma); err != nil {
			return nil, err
		}
		vgap, err := p.expect(TokenNumber)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		grid.Hgap = hgap.Value
		grid.Vgap = vgap.Value
	default:
		return nil, newDiagnostic(p.current, TokenComma, TokenRParen)
	}

	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	return grid, nil
}

// parseWidget parses one widget and attaches it to the current container.
// widget = button | group | label | panel | textfield
func (p *Parser) parseWidget() error {
	var (
		w   Widget
		err error
	)
	switch p.current.Type {
	case TokenButton:
		w, err = p.parseButton()
	case TokenGroup:
		w, err = p.parseGroup()
	case TokenLabel:
		w, err = p.parseLabel()
	case TokenTextfield:
		w, err = p.parseTextField()
	case TokenPanel:
		// Panels attach themselves when their frame is popped.
		return p.parsePanel()
	default:
		return newDiagnostic(p.current, widgetStarts...)
	}
	if err != nil {
		return err
	}
	p.stack.attach(w)
	return nil
}

// parsePanel parses a nested panel.
// panel = "panel" layout widget* "end" ";"
func (p *Parser) parsePanel() error {
	p.nextToken() // consume PANEL
	p.stack.push()

	layout, err := p.parseLayout()
	if err != nil {
		return err
	}
	p.stack.top().layout = layout

	if err := p.parseWidgets(); err != nil {
		return err
	}
	p.nextToken() // consume END, checked by parseWidgets
	if _, err := p.expect(TokenSemicolon); err != nil {
		return err
	}

	p.stack.pop()
	return nil
}

// parseButton parses: "button" string ";"
func (p *Parser) parseButton() (Widget, error) {
	p.nextToken() // consume BUTTON
	label, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Button{Label: label.Literal}, nil
}

// parseLabel parses: "label" string ";"
func (p *Parser) parseLabel() (Widget, error) {
	p.nextToken() // consume LABEL
	text, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &Label{Text: text.Literal}, nil
}

// parseTextField parses: "textfield" number ";"
func (p *Parser) parseTextField() (Widget, error) {
	p.nextToken() // consume TEXTFIELD
	columns, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &TextField{Columns: columns.Value}, nil
}

// parseGroup parses a radio group. Options are collected in order and
// attached once as a single RadioGroup.
// group = "group" radio+ "end" ";"
// radio = "radio" string ";"
func (p *Parser) parseGroup() (Widget, error) {
	p.nextToken() // consume GROUP

	if p.current.Type != TokenRadio {
		return nil, newDiagnostic(p.current, TokenRadio)
	}

	var options []string
	for p.current.Type == TokenRadio {
		p.nextToken() // consume RADIO
		option, err := p.expect(TokenString)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenSemicolon); err != nil {
			return nil, err
		}
		options = append(options, option.Literal)
	}

	if p.current.Type != TokenEnd {
		return nil, newDiagnostic(p.current, TokenRadio, TokenEnd)
	}
	p.nextToken()
	if _, err := p.expect(TokenSemicolon); err != nil {
		return nil, err
	}
	return &RadioGroup{Options: options}, nil
}
