package testrun

import "strings"

type goTestCounts struct {
	run         int
	failures    int
	skipped     int
	failedTests []string
}

// parseGoTest counts pass/fail/skip lines in `go test -v` style output.
// Non-verbose runs still report package-level failures via "FAIL\t" lines.
func parseGoTest(output string) goTestCounts {
	var c goTestCounts
	seenResults := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "--- PASS:"):
			c.run++
			seenResults = true
		case strings.HasPrefix(trimmed, "--- FAIL:"):
			c.run++
			c.failures++
			seenResults = true
			c.failedTests = append(c.failedTests, testName(trimmed, "--- FAIL:"))
		case strings.HasPrefix(trimmed, "--- SKIP:"):
			c.run++
			c.skipped++
			seenResults = true
		}
	}
	if !seenResults {
		// Without -v there are no per-test lines; count failed packages.
		for _, line := range strings.Split(output, "\n") {
			if strings.HasPrefix(line, "FAIL\t") {
				c.failures++
			}
		}
	}
	return c
}

func testName(line, prefix string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if i := strings.IndexByte(rest, ' '); i > 0 {
		rest = rest[:i]
	}
	return rest
}
