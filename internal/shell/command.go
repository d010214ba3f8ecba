// Package shell implements the interactive inventory prompt: a parser that
// turns input lines into a closed set of commands, and the loop that runs them
// against the store.
package shell

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/erazemk/zaloga/internal/model"
)

// Command is one parsed input line. The set of implementations is closed.
type Command interface {
	command()
}

// Add creates an item.
type Add struct {
	Name        string
	Description string
	Location    string
	Quantity    int64
}

// List prints every item.
type List struct{}

// Search prints items whose name or description contains Term.
type Search struct {
	Term string
}

// Delete removes an item.
type Delete struct {
	ID int64
}

// Show prints all fields of one item.
type Show struct {
	ID int64
}

// Update changes some fields of an item.
type Update struct {
	ID      int64
	Changes model.ItemUpdate
}

// Help lists the commands, or describes Topic when set.
type Help struct {
	Topic string
}

// Quit ends the loop.
type Quit struct{}

func (Add) command()    {}
func (List) command()   {}
func (Search) command() {}
func (Delete) command() {}
func (Show) command()   {}
func (Update) command() {}
func (Help) command()   {}
func (Quit) command()   {}

// ErrUnknownCommand is returned by Parse for a line that names no command.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError is a malformed command. Its message is shown to the user as is.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usage(msg string) error { return &UsageError{Msg: msg} }

// Parse turns an input line into a Command. A leading "?" is shorthand for
// "help". Arguments a command does not take are ignored.
func Parse(line string) (Command, error) {
	name, arg := splitCommand(line)

	switch name {
	case "add":
		return parseAdd(arg)
	case "list":
		return List{}, nil
	case "search":
		if arg == "" {
			return nil, usage("Error: Search term is required")
		}
		return Search{Term: arg}, nil
	case "delete":
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		return Delete{ID: id}, nil
	case "show":
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		return Show{ID: id}, nil
	case "update":
		return parseUpdate(arg)
	case "help":
		return Help{Topic: arg}, nil
	case "quit":
		return Quit{}, nil
	default:
		return nil, ErrUnknownCommand
	}
}

// splitCommand separates the command name (a run of letters, digits and
// underscores) from the trimmed rest of the line.
func splitCommand(line string) (name, arg string) {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "?") {
		return "help", strings.TrimSpace(line[1:])
	}

	i := strings.IndexFunc(line, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func parseAdd(arg string) (Command, error) {
	fields := splitFields(arg, 4)
	if len(fields) == 0 {
		return nil, usage("Error: Item name is required")
	}

	cmd := Add{Name: fields[0], Quantity: model.DefaultQuantity}
	if len(fields) > 1 {
		cmd.Description = fields[1]
	}
	if len(fields) > 2 {
		cmd.Location = fields[2]
	}
	if len(fields) > 3 {
		if n, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64); err == nil {
			cmd.Quantity = n
		}
	}
	return cmd, nil
}

func parseUpdate(arg string) (Command, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return nil, usage("Error: Please provide a valid item ID")
	}

	id, err := parseID(fields[0])
	if err != nil {
		return nil, err
	}
	if len(fields) == 1 {
		return nil, usage("Error: At least one field=value pair is required")
	}

	cmd := Update{ID: id}
	for _, f := range fields[1:] {
		key, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, usage("Error: Expected field=value, got '" + f + "'")
		}
		switch key {
		case "name":
			if value == "" {
				return nil, usage("Error: Item name is required")
			}
			cmd.Changes.Name = &value
		case "description":
			cmd.Changes.Description = &value
		case "location":
			cmd.Changes.Location = &value
		case "quantity":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, usage("Error: Quantity must be an integer")
			}
			cmd.Changes.Quantity = &n
		default:
			return nil, usage("Error: Unknown field '" + key + "' (allowed: name, description, location, quantity)")
		}
	}
	return cmd, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, usage("Error: Please provide a valid item ID")
	}
	return id, nil
}

// splitFields splits s on whitespace into at most n fields. The last field
// keeps the remainder of s, inner whitespace included.
func splitFields(s string, n int) []string {
	var fields []string
	s = strings.TrimSpace(s)
	for s != "" {
		if len(fields) == n-1 {
			return append(fields, s)
		}
		i := strings.IndexFunc(s, unicode.IsSpace)
		if i < 0 {
			return append(fields, s)
		}
		fields = append(fields, s[:i])
		s = strings.TrimLeftFunc(s[i:], unicode.IsSpace)
	}
	return fields
}
