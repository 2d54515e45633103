package dispatch

import (
	"strings"

	"github.com/btouchard/notch-hook/internal/notify"
)

// MaxCommandPriority caps the priority of shell command notifications.
const MaxCommandPriority = notify.PriorityHigh

// CommandCategory is the class of a shell command, decided by prefix.
type CommandCategory string

const (
	CommandVCS         CommandCategory = "vcs"
	CommandPackage     CommandCategory = "package"
	CommandDestructive CommandCategory = "destructive"
	CommandContainer   CommandCategory = "container"
	CommandBuild       CommandCategory = "build"
	CommandTest        CommandCategory = "test"
	CommandNoise       CommandCategory = "noise"
	CommandOther       CommandCategory = "other"
)

type commandRule struct {
	category CommandCategory
	prefixes []string
	priority notify.Priority
	icon     string
}

// Order matters: the first matching rule wins.
var commandRules = []commandRule{
	{CommandVCS, []string{"git "}, notify.PriorityHigh, "🔀"},
	{CommandPackage, []string{"npm ", "yarn ", "pnpm "}, notify.PriorityHigh, "📦"},
	{CommandDestructive, []string{"rm ", "mv "}, notify.PriorityUrgent, "⚠️"},
	{CommandContainer, []string{"docker ", "kubectl "}, notify.PriorityHigh, "🐳"},
	{CommandBuild, []string{"make ", "cargo ", "go "}, notify.PriorityNormal, "🔨"},
	{CommandTest, []string{"pytest", "jest", "test"}, notify.PriorityNormal, "🧪"},
	{CommandNoise, []string{"echo", "ls", "pwd", "date", "curl localhost:9876"}, notify.PriorityLow, ""},
}

var otherCommand = commandRule{CommandOther, nil, notify.PriorityNormal, "💻"}

// CommandClass is the classification of one shell command.
type CommandClass struct {
	Category CommandCategory
	Priority notify.Priority
	Icon     string
}

// Notify reports whether commands of this class produce a notification.
func (c CommandClass) Notify() bool {
	return c.Category != CommandNoise
}

// ClassifyCommand matches command against the known prefixes. The returned
// priority is already clamped to MaxCommandPriority.
func ClassifyCommand(command string) CommandClass {
	rule := otherCommand
	for _, r := range commandRules {
		if hasAnyPrefix(command, r.prefixes) {
			rule = r
			break
		}
	}
	return CommandClass{
		Category: rule.category,
		Priority: min(rule.priority, MaxCommandPriority),
		Icon:     rule.icon,
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
