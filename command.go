package selftest

import (
	"strconv"
	"strings"

	"github.com/ethereum-optimism/infra/perf-selftest/types"
)

// Action is a unit of work requested on the command line
type Action int

const (
	ActionRunAll Action = iota
	ActionRunSome
	ActionList
)

func (a Action) String() string {
	switch a {
	case ActionRunAll:
		return "run-all"
	case ActionRunSome:
		return "run-some"
	case ActionList:
		return "list"
	default:
		return "unknown"
	}
}

// ParseEvent maps a single command token to its Action.
func ParseEvent(token string) (Action, error) {
	switch token {
	case "":
		return ActionRunAll, nil
	case "list":
		return ActionList, nil
	case "-s", "--skip":
		return ActionRunSome, nil
	default:
		return 0, &ParseError{Token: token}
	}
}

// Command is the parsed form of the positional command tokens
type Command struct {
	Actions []Action
	// Skip holds the top-level indices listed after "-s"/"--skip".
	Skip types.SkipSet
}

// ParseCommand interprets tokens left to right. Every token yields one
// Action, duplicates included. "-s"/"--skip" is terminal: all remaining
// tokens are read as skip indices and those that are not non-negative
// integers are dropped. No tokens at all means RunAll.
func ParseCommand(tokens []string) (*Command, error) {
	cmd := &Command{Skip: types.NewSkipSet()}
	if len(tokens) == 0 {
		cmd.Actions = []Action{ActionRunAll}
		return cmd, nil
	}
	for i, token := range tokens {
		action, err := ParseEvent(token)
		if err != nil {
			return nil, err
		}
		cmd.Actions = append(cmd.Actions, action)
		if action == ActionRunSome {
			for _, candidate := range tokens[i+1:] {
				if index, ok := parseSkipIndex(candidate); ok {
					cmd.Skip.Add(index)
				}
			}
			break
		}
	}
	return cmd, nil
}

func parseSkipIndex(token string) (int, bool) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "+")
	n, err := strconv.ParseUint(token, 10, strconv.IntSize-1)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
