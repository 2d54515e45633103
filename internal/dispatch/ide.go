package dispatch

import (
	"strings"

	"github.com/btouchard/notch-hook/internal/hook"
	"github.com/btouchard/notch-hook/internal/notify"
)

type ideAction struct {
	icon     string
	label    string
	priority notify.Priority
}

var defaultIDEAction = ideAction{"🔧", "JetBrains action", notify.PriorityNormal}

var ideActions = map[string]ideAction{
	// project information
	ideToolPrefix + "get_run_configurations":   {"⚙️", "Get run configurations", notify.PriorityLow},
	ideToolPrefix + "get_project_modules":      {"📦", "Get project modules", notify.PriorityLow},
	ideToolPrefix + "get_project_dependencies": {"🔗", "Get project dependencies", notify.PriorityLow},
	ideToolPrefix + "get_project_problems":     {"⚠️", "Get project problems", notify.PriorityNormal},
	ideToolPrefix + "get_project_vcs_status":   {"🔀", "Get VCS status", notify.PriorityNormal},

	// files
	ideToolPrefix + "list_directory_tree":        {"🌳", "List directory tree", notify.PriorityLow},
	ideToolPrefix + "find_files_by_name_keyword": {"🔍", "Find files by name", notify.PriorityNormal},
	ideToolPrefix + "find_files_by_glob":         {"📁", "Find files by glob", notify.PriorityNormal},
	ideToolPrefix + "get_all_open_file_paths":    {"📂", "Get open files", notify.PriorityLow},
	ideToolPrefix + "open_file_in_editor":        {"📝", "Open file", notify.PriorityNormal},
	ideToolPrefix + "get_file_text_by_path":      {"📖", "Read file", notify.PriorityLow},
	ideToolPrefix + "get_file_problems":          {"🔴", "Get file problems", notify.PriorityNormal},
	ideToolPrefix + "reformat_file":              {"✨", "Reformat file", notify.PriorityHigh},

	// search and analysis
	ideToolPrefix + "search_in_files_by_text":  {"🔎", "Text search", notify.PriorityNormal},
	ideToolPrefix + "search_in_files_by_regex": {"🔍", "Regex search", notify.PriorityNormal},
	ideToolPrefix + "get_symbol_info":          {"ℹ️", "Get symbol info", notify.PriorityLow},
	ideToolPrefix + "rename_refactoring":       {"✏️", "Rename refactoring", notify.PriorityHigh},

	// execution
	ideToolPrefix + "execute_run_configuration": {"▶️", "Execute run configuration", notify.PriorityHigh},

	// vcs
	ideToolPrefix + "find_commit_by_message": {"📜", "Find commit", notify.PriorityNormal},
}

func (a ideAction) title() string {
	if strings.HasPrefix(a.label, "JetBrains") {
		return a.label
	}
	return "JetBrains " + a.label
}

func lookupIDEAction(toolName string) ideAction {
	if a, ok := ideActions[toolName]; ok {
		return a
	}
	return defaultIDEAction
}

// Candidate argument names for the detail line, tried group by group.
var (
	idePathFields    = []string{"directoryPath", "pathInProject", "filePath", "path"}
	idePatternFields = []string{"pattern", "globPattern", "nameKeyword", "searchText", "regexPattern", "text"}
	ideConfigFields  = []string{"configurationName"}
)

// ideDetail extracts the most useful argument for display. Within a group
// the first present field decides; a non-string one moves on to the next group.
func ideDetail(input hook.Value) string {
	if s, ok := input.FirstPresent(idePathFields...).Text(); ok {
		return truncate(s, shortExcerpt)
	}
	if s, ok := input.FirstPresent(idePatternFields...).Text(); ok {
		return truncate(s, shortExcerpt)
	}
	if s, ok := input.FirstPresent(ideConfigFields...).Text(); ok {
		return s
	}
	return ""
}

func navigateAction(toolName string) (icon, label string) {
	switch toolName {
	case ideNavigate:
		return "🎯", "Go to definition"
	case ideFindUsages:
		return "🔗", "Find usages"
	case ideSearchAll:
		return "🌐", "Search everywhere"
	default:
		return "🔍", "Search"
	}
}

func runAction(toolName string) (icon, label string) {
	if toolName == ideDebugConfig {
		return "🐞", "Debug"
	}
	return "▶️", "Run"
}
