// pattern: Functional Core

package gitstatus

import (
	"bufio"
	"strconv"
	"strings"
)

// Parse reads the output of `git status --porcelain=v2 --branch`.
//
// Header lines carry the branch and upstream divergence; each entry line
// is counted as staged when its index column is set, and as changed when
// its worktree column is set. Unmerged entries count as changed.
func Parse(output string) *Status {
	st := &Status{}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		switch line[0] {
		case '#':
			parseHeader(st, line)
		case '1', '2':
			fields := strings.SplitN(line, " ", 3)
			if len(fields) < 2 || len(fields[1]) != 2 {
				continue
			}
			xy := fields[1]
			if xy[0] != '.' {
				st.Staged++
			}
			if xy[1] != '.' {
				st.Changed++
			}
		case 'u':
			st.Changed++
		case '?':
			st.Untracked++
		}
	}

	return st
}

func parseHeader(st *Status, line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}

	switch fields[1] {
	case "branch.head":
		if fields[2] != "(detached)" {
			st.Branch = fields[2]
		}
	case "branch.ab":
		if len(fields) < 4 {
			return
		}
		st.Ahead = atoiSigned(fields[2])
		st.Behind = atoiSigned(fields[3])
	}
}

// atoiSigned parses "+3" or "-2" as an unsigned count.
func atoiSigned(s string) int {
	s = strings.TrimLeft(s, "+-")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
