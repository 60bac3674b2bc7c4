// Package seed reads and writes memory seed files.
//
// Each non-empty line holds one cell as `<address> : <value>`, where the
// address is an unsigned and the value a signed 32-bit decimal number.
// Whitespace around the fields is ignored. Later lines overwrite earlier
// lines for the same address.
package seed

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/regmach/internal"
)

// Parse reads memory seed text.
func Parse(input io.Reader) (cells map[uint32]int32, err error) {
	scanner := bufio.NewScanner(input)

	var lineno int

	cells = make(map[uint32]int32)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		lineno += 1

		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		address, value, lerr := parseLine(line)
		if lerr != nil {
			cells = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: lerr}
			return
		}

		cells[address] = value
	}

	err = scanner.Err()
	if err != nil {
		cells = nil
	}
	return
}

// parseLine parses a single `address : value` line.
func parseLine(line string) (address uint32, value int32, err error) {
	left, right, ok := strings.Cut(line, ":")
	if !ok {
		err = ErrSeparatorMissing
		return
	}

	a64, err := strconv.ParseUint(strings.TrimSpace(left), 10, 32)
	if err != nil {
		err = ErrAddressInvalid
		return
	}

	text := strings.TrimSpace(right)
	if strings.HasPrefix(text, "+") {
		err = ErrValueInvalid
		return
	}

	v64, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		err = ErrValueInvalid
		return
	}

	address = uint32(a64)
	value = int32(v64)
	return
}

// Write emits cells in ascending address order, in a form Parse accepts.
func Write(output io.Writer, cells map[uint32]int32) (err error) {
	w := bufio.NewWriter(output)
	for address, value := range internal.SortedSeq2(cells) {
		_, err = fmt.Fprintf(w, "%d: %d\n", address, value)
		if err != nil {
			return
		}
	}
	return w.Flush()
}
