package dispatch

import "strings"

// ToolKind groups tool names that share extraction and formatting rules.
type ToolKind int

const (
	ToolUnknown ToolKind = iota
	ToolEdit
	ToolMultiEdit
	ToolWrite
	ToolIDEReplace
	ToolIDECreate
	ToolIDENavigate
	ToolIDERun
	ToolIDETerminal
	ToolBash
	ToolTask
	ToolReadOnly
	ToolWeb
	ToolTodo
	ToolIDEGeneric
)

// ideToolPrefix namespaces the JetBrains MCP integration tools.
const ideToolPrefix = "mcp__jetbrains__"

const (
	ideReplaceText     = ideToolPrefix + "replace_text_in_file"
	ideCreateFile      = ideToolPrefix + "create_new_file"
	ideNavigate        = ideToolPrefix + "navigate_to_definition"
	ideFindUsages      = ideToolPrefix + "find_usages"
	ideSearchAll       = ideToolPrefix + "search_everywhere"
	ideRunConfig       = ideToolPrefix + "run_configuration"
	ideDebugConfig     = ideToolPrefix + "debug_configuration"
	ideTerminalCommand = ideToolPrefix + "execute_terminal_command"
)

var toolKinds = map[string]ToolKind{
	"Edit":             ToolEdit,
	"MultiEdit":        ToolMultiEdit,
	"Write":            ToolWrite,
	"Bash":             ToolBash,
	"Task":             ToolTask,
	"Read":             ToolReadOnly,
	"Grep":             ToolReadOnly,
	"Glob":             ToolReadOnly,
	"LS":               ToolReadOnly,
	"WebFetch":         ToolWeb,
	"WebSearch":        ToolWeb,
	"TodoWrite":        ToolTodo,
	ideReplaceText:     ToolIDEReplace,
	ideCreateFile:      ToolIDECreate,
	ideNavigate:        ToolIDENavigate,
	ideFindUsages:      ToolIDENavigate,
	ideSearchAll:       ToolIDENavigate,
	ideRunConfig:       ToolIDERun,
	ideDebugConfig:     ToolIDERun,
	ideTerminalCommand: ToolIDETerminal,
}

// KindOf classifies a tool by exact name, then by integration prefix.
func KindOf(toolName string) ToolKind {
	if k, ok := toolKinds[toolName]; ok {
		return k
	}
	if strings.HasPrefix(toolName, ideToolPrefix) {
		return ToolIDEGeneric
	}
	return ToolUnknown
}

func (k ToolKind) String() string {
	switch k {
	case ToolEdit:
		return "edit"
	case ToolMultiEdit:
		return "multi_edit"
	case ToolWrite:
		return "write"
	case ToolIDEReplace:
		return "ide_replace"
	case ToolIDECreate:
		return "ide_create"
	case ToolIDENavigate:
		return "ide_navigate"
	case ToolIDERun:
		return "ide_run"
	case ToolIDETerminal:
		return "ide_terminal"
	case ToolBash:
		return "bash"
	case ToolTask:
		return "task"
	case ToolReadOnly:
		return "read_only"
	case ToolWeb:
		return "web"
	case ToolTodo:
		return "todo"
	case ToolIDEGeneric:
		return "ide_generic"
	default:
		return "unknown"
	}
}

// pathField is the argument carrying the target file for file-mutating tools.
func (k ToolKind) pathField() string {
	switch k {
	case ToolEdit, ToolMultiEdit, ToolWrite:
		return "file_path"
	case ToolIDEReplace, ToolIDECreate:
		return "pathInProject"
	default:
		return ""
	}
}

// fragmentFields names the before/after text arguments. An empty name means
// the tool never carries that fragment.
func (k ToolKind) fragmentFields() (oldField, newField string) {
	switch k {
	case ToolEdit:
		return "old_string", "new_string"
	case ToolWrite:
		return "", "content"
	case ToolIDEReplace:
		return "oldText", "newText"
	case ToolIDECreate:
		return "", "text"
	default:
		return "", ""
	}
}
