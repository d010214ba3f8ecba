package shell

import "strings"

// commandHelp is the usage line of each command, in the order help lists them.
var commandHelp = []struct {
	name string
	doc  string
}{
	{"add", "Add a new item: add <name> [description] [location] [quantity]"},
	{"delete", "Delete an item: delete <item_id>"},
	{"help", `List available commands with "help" or detailed help with "help cmd".`},
	{"list", "List all items in inventory"},
	{"quit", "Exit the program"},
	{"search", "Search for items: search <term>"},
	{"show", "Show all fields of an item: show <item_id>"},
	{"update", "Update an item: update <item_id> <field>=<value>... (fields: name, description, location, quantity)"},
}

func (s *Shell) help(topic string) {
	if topic != "" {
		for _, c := range commandHelp {
			if c.name == topic {
				s.println(c.doc)
				return
			}
		}
		s.printf("*** No help on %s\n", topic)
		return
	}

	const header = "Documented commands (type help <topic>):"
	names := make([]string, 0, len(commandHelp))
	for _, c := range commandHelp {
		names = append(names, c.name)
	}

	s.println()
	s.println(header)
	s.println(strings.Repeat("=", len(header)))
	s.println(strings.Join(names, "  "))
	s.println()
}
