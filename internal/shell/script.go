package shell

import (
	"bufio"
	"fmt"
	"os"

	"devconsole/internal/logger"
)

// ExecuteScript feeds every line of the file at path to the console, draining
// after each accepted line so later lines observe the effects of earlier
// ones. Rejected lines are logged by the console and counted; execution
// continues past them.
func ExecuteScript(h *Host, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer file.Close()

	logger.Debug("Starting script execution", "script", path)

	var submitted, failed int
	scanner := bufio.NewScanner(file)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		ok, err := processLine(h, scanner.Text())
		if !ok {
			continue
		}
		submitted++
		if err != nil {
			failed++
			logger.Debug("Script line rejected", "script", path, "line", lineNo, "error", err)
			continue
		}
		h.Registry().Update()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	logger.Debug("Script finished", "script", path, "lines", submitted, "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d script lines failed", failed, submitted)
	}
	return nil
}
