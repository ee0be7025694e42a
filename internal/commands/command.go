package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/todo/internal/model"
	"github.com/sandeepkv93/todo/internal/query"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeEdit     Type = "edit"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeSearch   Type = "search"
	TypeFilter   Type = "filter"
	TypeCategory Type = "category"
	TypeSort     Type = "sort"
)

var aliases = map[string]Type{
	"new":    TypeAdd,
	"update": TypeEdit,
	"toggle": TypeDone,
	"rm":     TypeDelete,
	"del":    TypeDelete,
	"find":   TypeSearch,
	"cat":    TypeCategory,
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

// Fields holds the optional cat:/pri:/due: options. Empty means unset.
type Fields struct {
	Category string
	Priority string
	DueDate  string
}

type AddArgs struct {
	Title string
	Fields
}

// EditArgs addresses a task by its 1-based position in the displayed list.
// An empty Title keeps the current one.
type EditArgs struct {
	Index int
	Title string
	Fields
}

type TargetArgs struct {
	Index int
}

type SearchArgs struct {
	Text string
}

type FilterArgs struct {
	Completion model.Completion
}

type CategoryArgs struct {
	Name string
}

type SortArgs struct {
	Mode query.SortMode
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Edit     *EditArgs
	Target   *TargetArgs
	Search   *SearchArgs
	Filter   *FilterArgs
	Category *CategoryArgs
	Sort     *SortArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, ":") {
		raw = strings.TrimSpace(raw[1:])
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDone, TypeDelete:
		return parseTarget(input, typ, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Text: strings.Join(args, " ")}}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeSort:
		return parseSort(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	words, fields := splitOptions(args)
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Fields: fields}}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task number"}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	words, fields := splitOptions(args[1:])
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" && fields == (Fields{}) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a new title or cat:/pri:/due: option"}
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Index: idx, Title: title, Fields: fields}}, nil
}

func parseTarget(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one task number", typ)}
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: typ, Raw: raw, Target: &TargetArgs{Index: idx}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires all, completed or pending"}
	}
	c, err := model.ParseCompletion(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Completion: c}}, nil
}

func parseCategory(raw string, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name or all"}
	}
	if strings.EqualFold(name, query.CategoryAll) {
		name = query.CategoryAll
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: name}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "sort requires recent, priority or date"}
	}
	mode, err := query.ParseSortMode(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown sort: %s", args[0])}
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Mode: mode}}, nil
}

func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid task number: %s", raw)}
	}
	return n, nil
}

func splitOptions(args []string) ([]string, Fields) {
	var fields Fields
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if !ok || value == "" {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "cat", "category":
			fields.Category = value
		case "pri", "priority":
			fields.Priority = value
		case "due":
			fields.DueDate = value
		default:
			words = append(words, arg)
		}
	}
	return words, fields
}
