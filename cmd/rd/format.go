package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zulandar/relaydesk/internal/models"
)

// yesNo renders a flag column.
func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// orDash renders an optional column.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// endpoint renders one side of a route as "Team #channel".
func endpoint(teamName, teamID, channelID string) string {
	name := teamName
	if name == "" {
		name = teamID
	}
	return fmt.Sprintf("%s #%s", name, channelID)
}

// directionLabel renders a direction with its arrow, e.g. "↔ bidirectional".
func directionLabel(d models.Direction) string {
	return d.Icon() + " " + string(d)
}

// confirm asks a yes/no question on out and reads the answer from in. Only
// "y" or "yes" confirm.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
