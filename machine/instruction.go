package machine

import (
	"fmt"
)

// Operator is an arithmetic operation.
type Operator int

//go:generate go tool stringer -linecomment -type=Operator
const (
	OP_ADD = Operator(0) // +
	OP_SUB = Operator(1) // -
	OP_MUL = Operator(2) // *
	OP_DIV = Operator(3) // /
)

// Apply computes a op b with int32 wraparound.
// Division truncates toward zero.
func (op Operator) Apply(a, b int32) (value int32, err error) {
	switch op {
	case OP_ADD:
		value = a + b
	case OP_SUB:
		value = a - b
	case OP_MUL:
		value = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		value = a / b
	default:
		panic(fmt.Sprintf("unknown operator %d", int(op)))
	}
	return
}

// Relation is a comparison between two values.
type Relation int

//go:generate go tool stringer -linecomment -type=Relation
const (
	REL_LT = Relation(0) // <
	REL_LE = Relation(1) // <=
	REL_GT = Relation(2) // >
	REL_GE = Relation(3) // >=
	REL_EQ = Relation(4) // ==
	REL_NE = Relation(5) // !=
)

// Holds reports if a rel b.
func (rel Relation) Holds(a, b int32) bool {
	switch rel {
	case REL_LT:
		return a < b
	case REL_LE:
		return a <= b
	case REL_GT:
		return a > b
	case REL_GE:
		return a >= b
	case REL_EQ:
		return a == b
	case REL_NE:
		return a != b
	}
	panic(fmt.Sprintf("unknown relation %d", int(rel)))
}

// Instruction is either an *Arithmetic or a *ConditionalJump.
type Instruction interface {
	// Execute runs the instruction against memory. If jump is set,
	// target is the 1-based number of the next instruction.
	Execute(mem *Memory) (target uint32, jump bool, err error)
	String() string
	isInstruction()
}

// Arithmetic is `Target := Left Operator Right`.
type Arithmetic struct {
	Target   Register
	Left     Operand
	Operator Operator
	Right    Operand
}

// Value evaluates the right hand side.
func (ins *Arithmetic) Value(mem *Memory) (value int32, err error) {
	left, err := ins.Left.Evaluate(mem)
	if err != nil {
		return
	}
	right, err := ins.Right.Evaluate(mem)
	if err != nil {
		return
	}
	return ins.Operator.Apply(left, right)
}

// Execute stores the value into the target cell.
// Nothing is written unless every operand evaluated.
func (ins *Arithmetic) Execute(mem *Memory) (target uint32, jump bool, err error) {
	address, err := ins.Target.Resolve(mem)
	if err != nil {
		return
	}
	value, err := ins.Value(mem)
	if err != nil {
		return
	}
	mem.Set(address, value)
	return
}

func (ins *Arithmetic) String() string {
	return fmt.Sprintf("%v := %v %v %v;", ins.Target, ins.Left, ins.Operator, ins.Right)
}

func (*Arithmetic) isInstruction() {}

// ConditionalJump is `if Left Relation Right goto Target`.
type ConditionalJump struct {
	Left     Operand
	Relation Relation
	Right    Operand
	Target   uint32 // 1-based instruction number.
}

// Holds evaluates the condition.
func (ins *ConditionalJump) Holds(mem *Memory) (ok bool, err error) {
	left, err := ins.Left.Evaluate(mem)
	if err != nil {
		return
	}
	right, err := ins.Right.Evaluate(mem)
	if err != nil {
		return
	}
	ok = ins.Relation.Holds(left, right)
	return
}

// Execute jumps to Target if the condition holds.
func (ins *ConditionalJump) Execute(mem *Memory) (target uint32, jump bool, err error) {
	jump, err = ins.Holds(mem)
	if err != nil || !jump {
		return
	}
	target = ins.Target
	return
}

func (ins *ConditionalJump) String() string {
	return fmt.Sprintf("if %v %v %v goto %d;", ins.Left, ins.Relation, ins.Right, ins.Target)
}

func (*ConditionalJump) isInstruction() {}
