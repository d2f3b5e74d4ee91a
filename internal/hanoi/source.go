package hanoi

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Verdict is the outcome of replaying a move list.
type Verdict int

const (
	// Solved means the moves end with every disk on rod 3.
	Solved Verdict = iota
	// Unsolved means every move was legal but the puzzle is not finished.
	Unsolved
	// Refused means a move was illegal; see Result.Move and Result.Err.
	Refused
)

func (v Verdict) String() string {
	switch v {
	case Solved:
		return "solved"
	case Unsolved:
		return "unsolved"
	case Refused:
		return "refused"
	}
	return "unknown"
}

// Result describes a validated move list.
type Result struct {
	Verdict Verdict
	Disks   int
	Moves   int    // Moves applied
	Move    string // Offending line when refused
	Err     error  // Reason when refused
}

// ErrBadSource is returned for a move list that cannot be parsed.
var ErrBadSource = errors.New("hanoi: malformed move list")

// Validate reads a move list and replays it. The first non-blank line is
// the disk count; every further line is "src->dst". A line without an
// arrow ends the list early.
func Validate(r io.Reader) (Result, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("hanoi: cannot read move list: %w", err)
	}
	if len(lines) == 0 {
		return Result{}, fmt.Errorf("%w: empty", ErrBadSource)
	}

	disks, err := strconv.Atoi(lines[0])
	if err != nil {
		return Result{}, fmt.Errorf("%w: expected a disk count, got %q", ErrBadSource, lines[0])
	}
	t, err := New(disks, nil)
	if err != nil {
		return Result{}, err
	}

	res := Result{Verdict: Unsolved, Disks: disks}
	for _, line := range lines[1:] {
		srcText, dstText, ok := strings.Cut(line, "->")
		if !ok {
			return res, nil
		}
		src, err1 := strconv.Atoi(strings.TrimSpace(srcText))
		dst, err2 := strconv.Atoi(strings.TrimSpace(dstText))
		if err1 != nil || err2 != nil {
			return Result{}, fmt.Errorf("%w: bad move %q", ErrBadSource, line)
		}

		solved, err := t.Move(src, dst)
		if err != nil {
			res.Verdict = Refused
			res.Move = line
			res.Err = err
			return res, nil
		}
		res.Moves++
		if solved {
			res.Verdict = Solved
		} else {
			res.Verdict = Unsolved
		}
	}
	return res, nil
}
