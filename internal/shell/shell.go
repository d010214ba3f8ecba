package shell

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/erazemk/zaloga/internal/store"
)

const (
	intro    = "Welcome to the Inventory Management System. Type help or ? to list commands."
	prompt   = "inventory> "
	farewell = "Goodbye!"
)

// Shell reads commands from an input stream and runs them against the store.
type Shell struct {
	db  *sql.DB
	in  *bufio.Reader
	out io.Writer
}

// New returns a shell that reads from in and writes to out.
func New(db *sql.DB, in io.Reader, out io.Writer) *Shell {
	return &Shell{db: db, in: bufio.NewReader(in), out: out}
}

// Run prints the intro and processes lines until quit or end of input.
// Input mistakes are reported to the user and the loop continues. A store
// failure ends the loop and is returned.
func (s *Shell) Run(ctx context.Context) error {
	s.println(intro)
	s.println()

	for {
		s.printf("%s", prompt)
		line, err := s.readLine()
		if err == io.EOF {
			s.println()
			s.println(farewell)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cmd, err := Parse(line)
		var usageErr *UsageError
		switch {
		case errors.Is(err, ErrUnknownCommand):
			s.println("*** Unknown syntax:", line)
			continue
		case errors.As(err, &usageErr):
			s.println(usageErr.Msg)
			continue
		case err != nil:
			return err
		}

		stop, err := s.Execute(ctx, cmd)
		if err != nil {
			slog.Debug("command failed", "line", line, "error", err)
			return err
		}
		if stop {
			return nil
		}
	}
}

// readLine returns the next input line of any length, without its newline.
// A final line without a newline is returned before io.EOF.
func (s *Shell) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// Execute runs a single command. It reports whether the loop should stop.
func (s *Shell) Execute(ctx context.Context, cmd Command) (bool, error) {
	slog.Debug("executing command", "command", fmt.Sprintf("%T", cmd))

	switch c := cmd.(type) {
	case Add:
		return false, s.add(ctx, c)
	case List:
		return false, s.list(ctx)
	case Search:
		return false, s.search(ctx, c)
	case Delete:
		return false, s.delete(ctx, c)
	case Show:
		return false, s.show(ctx, c)
	case Update:
		return false, s.update(ctx, c)
	case Help:
		s.help(c.Topic)
		return false, nil
	case Quit:
		s.println(farewell)
		return true, nil
	default:
		return false, fmt.Errorf("unhandled command %T", cmd)
	}
}

func (s *Shell) add(ctx context.Context, c Add) error {
	id, err := store.AddItem(ctx, s.db, c.Name, c.Description, c.Location, c.Quantity)
	if err != nil {
		return err
	}
	s.printf("Added item with ID: %d\n", id)
	return nil
}

func (s *Shell) list(ctx context.Context) error {
	items, err := store.ListItems(ctx, s.db)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.println("No items in inventory")
		return nil
	}
	writeTable(s.out, "Current Inventory:", items)
	return nil
}

func (s *Shell) search(ctx context.Context, c Search) error {
	items, err := store.SearchItems(ctx, s.db, c.Term)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		s.printf("No items found matching '%s'\n", c.Term)
		return nil
	}
	writeTable(s.out, fmt.Sprintf("Search results for '%s':", c.Term), items)
	return nil
}

func (s *Shell) delete(ctx context.Context, c Delete) error {
	ok, err := store.DeleteItem(ctx, s.db, c.ID)
	if err != nil {
		return err
	}
	if ok {
		s.printf("Deleted item %d\n", c.ID)
	} else {
		s.printf("No item found with ID %d\n", c.ID)
	}
	return nil
}

func (s *Shell) show(ctx context.Context, c Show) error {
	item, err := store.GetItem(ctx, s.db, c.ID)
	if err != nil {
		return err
	}
	if item == nil {
		s.printf("No item found with ID %d\n", c.ID)
		return nil
	}
	writeItem(s.out, item)
	return nil
}

func (s *Shell) update(ctx context.Context, c Update) error {
	ok, err := store.UpdateItem(ctx, s.db, c.ID, c.Changes)
	if err != nil {
		return err
	}
	if ok {
		s.printf("Updated item %d\n", c.ID)
	} else {
		s.printf("No item found with ID %d\n", c.ID)
	}
	return nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func (s *Shell) println(args ...any) {
	fmt.Fprintln(s.out, args...)
}
