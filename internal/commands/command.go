package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeTitle  Type = "title"
	TypeSet    Type = "set"
	TypeShare  Type = "share"
	TypeSubmit Type = "submit"
)

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

type AddArgs struct {
	Hour int
}

type TitleArgs struct {
	Title string
}

type SetArgs struct {
	Key   string
	Value string
}

type Command struct {
	Type  Type
	Raw   string
	Add   *AddArgs
	Title *TitleArgs
	Set   *SetArgs
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

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeTitle:
		return parseTitle(input, args)
	case TypeSet:
		return parseSet(input, args)
	case TypeShare, TypeSubmit:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd accepts a bare hour ("14") or a clock time ("14:00", "9am", "3pm").
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires an hour"}
	}
	text := strings.Join(args, "")
	hour, ok := parseHour(text)
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid hour: %s", text)}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Hour: hour}}, nil
}

func parseHour(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	meridiem := ""
	if strings.HasSuffix(s, "am") || strings.HasSuffix(s, "pm") {
		meridiem = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}
	s = strings.TrimSuffix(s, ":00")
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch meridiem {
	case "":
		return h, h >= 0 && h <= 23
	case "am":
		if h < 1 || h > 12 {
			return 0, false
		}
		return h % 12, true
	default:
		if h < 1 || h > 12 {
			return 0, false
		}
		return h%12 + 12, true
	}
}

func parseTitle(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "title requires text"}
	}
	return Command{Type: TypeTitle, Raw: raw, Title: &TitleArgs{Title: title}}, nil
}

func parseSet(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "set requires key and value"}
	}
	return Command{Type: TypeSet, Raw: raw, Set: &SetArgs{Key: strings.ToLower(args[0]), Value: strings.Join(args[1:], " ")}}, nil
}
