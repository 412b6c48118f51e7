package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-games")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-games", "-threads", "-p0", "-p1", "-out"},
	},
	"set": {
		Args: []string{"depth", "variant", "threads"},
	},
	"hints": {
		Args: []string{"on", "off"},
	},
}

var commandNames = []string{
	"help", "new", "show", "play", "undo", "ai", "analyze", "hints",
	"moves", "set", "autoplay", "script", "exit",
}

var playerKinds = []string{"random", "greedy", "adversarial"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		// argPos is the position of the field being completed.
		argPos := len(fields)
		if !endsWithSpace {
			argPos--
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-p0" || lastCompleteField == "-p1":
			completions = playerKinds
		case cmdName == "set" && lastCompleteField == "variant":
			completions = []string{"greedy", "adversarial"}
		case cmdName == "set" && argPos > 1:
			completions = []string{}
		case cmdName == "play":
			// Suggest the legal moves for the side to move.
			b := c.sc.curBoard
			for _, m := range b.LegalMoves(b.Turn()) {
				completions = append(completions, m.String())
			}
		case cmdName == "help":
			if topics, err := helpTopics(); err == nil {
				completions = topics
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Return only the part that needs to be added.
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
