package machine

import (
	"strconv"
)

// Address is a memory location, either Raw or Indirect.
type Address interface {
	// Resolve computes the concrete cell address.
	Resolve(mem *Memory) (address uint32, err error)
	String() string
	isAddress()
}

// Raw is a literal cell address.
type Raw uint32

func (addr Raw) Resolve(mem *Memory) (address uint32, err error) {
	address = uint32(addr)
	return
}

func (addr Raw) String() string {
	return strconv.FormatUint(uint64(addr), 10)
}

func (Raw) isAddress() {}

// Indirect is the address held in the cell of Register.
// The stored int32 is reinterpreted as uint32, so -1 addresses 0xffffffff.
type Indirect struct {
	Register Register
}

func (addr Indirect) Resolve(mem *Memory) (address uint32, err error) {
	value, err := addr.Register.Evaluate(mem)
	if err != nil {
		return
	}
	address = uint32(value)
	return
}

func (addr Indirect) String() string {
	return addr.Register.String()
}

func (Indirect) isAddress() {}

// Register is a reference to a memory cell.
type Register struct {
	Address Address
}

// DirectRegister returns the register R[address].
func DirectRegister(address uint32) Register {
	return Register{Address: Raw(address)}
}

// IndirectRegister returns the register R[reg].
func IndirectRegister(reg Register) Register {
	return Register{Address: Indirect{Register: reg}}
}

// Resolve computes the cell address of the register.
func (reg Register) Resolve(mem *Memory) (address uint32, err error) {
	return reg.Address.Resolve(mem)
}

// Evaluate reads the cell of the register.
func (reg Register) Evaluate(mem *Memory) (value int32, err error) {
	address, err := reg.Resolve(mem)
	if err != nil {
		return
	}
	return mem.Get(address)
}

// Depth is the number of registers nested in the register, itself included.
func (reg Register) Depth() (depth int) {
	depth = 1
	for {
		ind, ok := reg.Address.(Indirect)
		if !ok {
			return
		}
		depth++
		reg = ind.Register
	}
}

func (reg Register) String() string {
	return "R[" + reg.Address.String() + "]"
}

func (Register) isOperand() {}

// Operand is an instruction argument, either Integer or Register.
type Operand interface {
	Evaluate(mem *Memory) (value int32, err error)
	String() string
	isOperand()
}

// Integer is a literal operand.
type Integer int32

func (value Integer) Evaluate(mem *Memory) (int32, error) {
	return int32(value), nil
}

func (value Integer) String() string {
	return strconv.FormatInt(int64(value), 10)
}

func (Integer) isOperand() {}
