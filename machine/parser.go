// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"io"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parser converts program text into a Program.
//
// Grammar, first match wins in every alternation:
//
//	program     := ws* instruction*
//	instruction := (arithmetic | conditional) ";"? ws*
//	arithmetic  := register ws* ":=" ws* operand ws* operator ws* operand
//	conditional := "if" ws+ operand ws* relation ws* operand ws* "goto" ws* uint
//	register    := "R" "[" address "]"
//	address     := uint | register
//	operand     := int | register
//	operator    := "+" | "-" | "*" | "/" | "div"
//	relation    := "<=" | "<" | ">=" | ">" | "==" | "!="
//	int         := "-"? uint
//	ws          := " " | "\t" | "\r" | "\n"
type Parser struct {
	Verbose bool // If set, logs each parsed instruction.
}

// Parse reads the whole input and parses it.
func (p *Parser) Parse(input io.Reader) (prog *Program, err error) {
	text, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return p.ParseString(string(text))
}

// ParseString parses program text. The text must be consumed entirely,
// up to trailing whitespace.
func (p *Parser) ParseString(text string) (prog *Program, err error) {
	sc := &scanner{text: text, line: 1}

	defer func() {
		if err != nil {
			err = sc.syntax(err)
		}
	}()

	prog = &Program{}

	sc.space()
	for !sc.done() {
		lineno := sc.lineNo()

		var ins Instruction
		ins, err = sc.instruction()
		if err != nil {
			prog = nil
			return
		}

		if p.Verbose {
			log.Printf("parser: %d: %v", lineno, ins)
		}

		prog.Instructions = append(prog.Instructions, ins)
		prog.LineNo = append(prog.LineNo, lineno)

		sc.literal(";")
		sc.space()
	}

	return
}

// scanner is a cursor over program text.
type scanner struct {
	text string
	pos  int

	// Line number cache for lineNo()
	line    int
	linePos int

	// Position of the last failure.
	failPos int
}

// fail records the current position for error reporting.
func (sc *scanner) fail(err error) error {
	sc.failPos = sc.pos
	return err
}

// lineNo returns the 1-based line of the cursor.
func (sc *scanner) lineNo() int {
	if sc.pos < sc.linePos {
		sc.line = 1
		sc.linePos = 0
	}
	sc.line += strings.Count(sc.text[sc.linePos:sc.pos], "\n")
	sc.linePos = sc.pos
	return sc.line
}

// syntax wraps err with the location of the last failure.
func (sc *scanner) syntax(err error) error {
	pos := sc.failPos
	start := strings.LastIndexByte(sc.text[:pos], '\n') + 1
	end := strings.IndexByte(sc.text[pos:], '\n')
	if end < 0 {
		end = len(sc.text)
	} else {
		end += pos
	}

	sc.pos = pos
	return &ErrSyntax{
		LineNo: sc.lineNo(),
		Column: utf8.RuneCountInString(sc.text[start:pos]) + 1,
		Line:   strings.TrimRight(sc.text[start:end], "\r"),
		Err:    err,
	}
}

// done reports if only whitespace and NUL terminators remain.
func (sc *scanner) done() bool {
	return strings.Trim(sc.text[sc.pos:], " \t\r\n\x00") == ""
}

func (sc *scanner) peek(prefix string) bool {
	return strings.HasPrefix(sc.text[sc.pos:], prefix)
}

// literal consumes prefix if present.
func (sc *scanner) literal(prefix string) bool {
	if !sc.peek(prefix) {
		return false
	}
	sc.pos += len(prefix)
	return true
}

// space consumes whitespace, returning the amount consumed.
func (sc *scanner) space() (n int) {
	for sc.pos < len(sc.text) {
		switch sc.text[sc.pos] {
		case ' ', '\t', '\r', '\n':
			sc.pos++
			n++
		default:
			return
		}
	}
	return
}

// digits consumes a run of decimal digits.
func (sc *scanner) digits() string {
	start := sc.pos
	for sc.pos < len(sc.text) && sc.text[sc.pos] >= '0' && sc.text[sc.pos] <= '9' {
		sc.pos++
	}
	return sc.text[start:sc.pos]
}

// unsigned parses an unsigned 32-bit number, failing with missing if absent.
func (sc *scanner) unsigned(missing error) (value uint32, err error) {
	start := sc.pos
	word := sc.digits()
	if len(word) == 0 {
		err = sc.fail(missing)
		return
	}

	v64, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		sc.pos = start
		err = sc.fail(ErrNumberRange)
		return
	}

	value = uint32(v64)
	return
}

// integer parses a signed 32-bit literal. If no literal is present,
// nothing is consumed and ok is false.
func (sc *scanner) integer() (value int32, ok bool, err error) {
	start := sc.pos
	sc.literal("-")
	if len(sc.digits()) == 0 {
		sc.pos = start
		return
	}

	v64, err := strconv.ParseInt(sc.text[start:sc.pos], 10, 32)
	if err != nil {
		sc.pos = start
		err = sc.fail(ErrNumberRange)
		return
	}

	value = int32(v64)
	ok = true
	return
}

func (sc *scanner) register() (reg Register, err error) {
	if !sc.literal("R[") {
		err = sc.fail(ErrRegisterExpected)
		return
	}

	reg.Address, err = sc.address()
	if err != nil {
		return
	}

	if !sc.literal("]") {
		err = sc.fail(ErrBracketExpected)
		return
	}

	return
}

func (sc *scanner) address() (addr Address, err error) {
	switch {
	case sc.pos < len(sc.text) && sc.text[sc.pos] >= '0' && sc.text[sc.pos] <= '9':
		var raw uint32
		raw, err = sc.unsigned(ErrAddressExpected)
		addr = Raw(raw)
	case sc.peek("R"):
		var inner Register
		inner, err = sc.register()
		addr = Indirect{Register: inner}
	default:
		err = sc.fail(ErrAddressExpected)
	}
	return
}

// operand tries an integer literal before a register.
func (sc *scanner) operand() (op Operand, err error) {
	value, ok, err := sc.integer()
	if err != nil {
		return
	}
	if ok {
		op = Integer(value)
		return
	}

	if !sc.peek("R") {
		err = sc.fail(ErrOperandExpected)
		return
	}

	return sc.register()
}

var operatorWords = []struct {
	word string
	op   Operator
}{
	{"+", OP_ADD},
	{"-", OP_SUB},
	{"*", OP_MUL},
	{"/", OP_DIV},
	{"div", OP_DIV},
}

func (sc *scanner) operator() (op Operator, err error) {
	for _, entry := range operatorWords {
		if sc.literal(entry.word) {
			op = entry.op
			return
		}
	}
	err = sc.fail(ErrOperatorExpected)
	return
}

// Two character relations first, so "<=" is not read as "<".
var relationWords = []struct {
	word string
	rel  Relation
}{
	{"<=", REL_LE},
	{"<", REL_LT},
	{">=", REL_GE},
	{">", REL_GT},
	{"==", REL_EQ},
	{"!=", REL_NE},
}

func (sc *scanner) relation() (rel Relation, err error) {
	for _, entry := range relationWords {
		if sc.literal(entry.word) {
			rel = entry.rel
			return
		}
	}
	err = sc.fail(ErrRelationExpected)
	return
}

func (sc *scanner) instruction() (ins Instruction, err error) {
	switch {
	case sc.peek("R"):
		return sc.arithmetic()
	case sc.peek("if"):
		return sc.conditional()
	}
	err = sc.fail(ErrInstructionInvalid)
	return
}

func (sc *scanner) arithmetic() (ins Instruction, err error) {
	arith := &Arithmetic{}

	arith.Target, err = sc.register()
	if err != nil {
		return
	}

	sc.space()
	if !sc.literal(":=") {
		err = sc.fail(ErrAssignExpected)
		return
	}

	sc.space()
	arith.Left, err = sc.operand()
	if err != nil {
		return
	}

	sc.space()
	arith.Operator, err = sc.operator()
	if err != nil {
		return
	}

	sc.space()
	arith.Right, err = sc.operand()
	if err != nil {
		return
	}

	ins = arith
	return
}

func (sc *scanner) conditional() (ins Instruction, err error) {
	jump := &ConditionalJump{}

	sc.literal("if")
	if sc.space() == 0 {
		err = sc.fail(ErrSpaceExpected)
		return
	}

	jump.Left, err = sc.operand()
	if err != nil {
		return
	}

	sc.space()
	jump.Relation, err = sc.relation()
	if err != nil {
		return
	}

	sc.space()
	jump.Right, err = sc.operand()
	if err != nil {
		return
	}

	sc.space()
	if !sc.literal("goto") {
		err = sc.fail(ErrGotoExpected)
		return
	}

	sc.space()
	jump.Target, err = sc.unsigned(ErrTargetExpected)
	if err != nil {
		return
	}

	ins = jump
	return
}
