package dispatch

import (
	"strings"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/project"
)

// Signal flags a risky operation. It is recorded for audit only and does not
// influence priority.
type Signal struct {
	Dangerous bool
	Reason    string
}

var dangerousCommandKeywords = []string{
	"rm -rf",
	"sudo",
	"chmod 777",
	"mkfs",
	"> /dev/",
	"dd if=",
	"curl | bash",
	"wget | sh",
	":(){ :|:& };:",
}

var sensitivePathPatterns = []string{
	".ssh/",
	".aws/",
	"package.json",
	"Cargo.toml",
	".env",
	"credentials",
}

// Inspect checks a tool invocation against the dangerous command keywords and
// sensitive path patterns. Only Bash, Edit and Write are inspected.
func Inspect(toolName string, input hook.Value, p *project.Project) Signal {
	switch KindOf(toolName) {
	case ToolBash:
		cmd, ok := input.Str("command")
		if !ok {
			return Signal{}
		}
		for _, kw := range dangerousCommandKeywords {
			if strings.Contains(cmd, kw) {
				return Signal{Dangerous: true, Reason: "dangerous command: " + kw}
			}
		}
	case ToolEdit, ToolWrite:
		raw, ok := input.Str("file_path")
		if !ok {
			return Signal{}
		}
		path := p.Resolve(raw)
		for _, pat := range sensitivePathPatterns {
			if strings.Contains(path, pat) {
				return Signal{Dangerous: true, Reason: "sensitive file: " + pat}
			}
		}
	}
	return Signal{}
}
