package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeCheck   Type = "check"
	TypeUncheck Type = "uncheck"
	TypeToggle  Type = "toggle"
	TypeClear   Type = "clear"
	TypeReset   Type = "reset"
	TypeList    Type = "list"
)

var aliases = map[string]Type{
	"remove-checked": TypeClear,
	"clear-checked":  TypeClear,
	"done":           TypeCheck,
	"ls":             TypeList,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ItemArgs names the item an add/check/uncheck/toggle command targets.
type ItemArgs struct {
	Name string
}

type Command struct {
	Type Type
	Raw  string
	Item *ItemArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	kind := Type(head)
	if alias, ok := aliases[head]; ok {
		kind = alias
	}

	switch kind {
	case TypeAdd, TypeCheck, TypeUncheck, TypeToggle:
		return parseItem(input, kind, args)
	case TypeClear, TypeReset, TypeList:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", kind)}
		}
		return Command{Type: kind, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseItem(raw string, kind Type, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires an item name", kind)}
	}
	return Command{Type: kind, Raw: raw, Item: &ItemArgs{Name: name}}, nil
}
