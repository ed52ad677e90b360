package editor

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"linestore/internal/lineio"
)

// Console drives a Session through the numbered text menu.
type Console struct {
	sess *Session
	in   *lineio.Reader
	out  io.Writer
}

// NewConsole binds a session to an input stream and an output writer.
func NewConsole(sess *Session, in io.Reader, out io.Writer) *Console {
	return &Console{sess: sess, in: lineio.NewReader(in), out: out}
}

// errAborted marks a prompt that hit end of input or was rejected.
var errAborted = errors.New("prompt aborted")

// Run shows the menu until the user quits or input ends.
func (c *Console) Run() error {
	for {
		c.printHeader()
		c.printMenu()

		input, err := c.prompt("Enter choice: ")
		if err != nil {
			c.printf("\nEnd of input detected. Exiting.\n")
			return nil
		}
		if input == "" {
			continue
		}

		choice, _ := strconv.Atoi(strings.TrimSpace(input))
		c.sess.logger.Info("command", "choice", choice)

		switch choice {
		case 1:
			c.view()
		case 2:
			c.insert()
		case 3:
			c.appendLine()
		case 4:
			c.edit()
		case 5:
			c.delete()
		case 6:
			c.search()
		case 7:
			c.save()
		case 8:
			c.saveAs()
		case 9:
			if c.sess.Modified && !c.confirmDiscard() {
				c.printf("Quit cancelled.\n")
				continue
			}
			c.printf("Goodbye.\n")
			return nil
		default:
			c.printf("Unknown command: %s\n", input)
		}
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) printHeader() {
	name := c.sess.Filename
	if name == "" {
		name = "<unnamed>"
	}
	status := "saved"
	if c.sess.Modified {
		status = "modified"
	}

	c.printf("\n================ Console Text Editor ================\n")
	c.printf("File    : %s\n", name)
	c.printf("Status  : %s\n", status)
	if !c.sess.SavedAt.IsZero() {
		c.printf("Saved   : %s\n", c.sess.SavedAt.Format("2006-01-02 15:04:05"))
	}
	c.printf("Lines   : %d\n", c.sess.Store.Len())
	c.printf("====================================================\n\n")
}

func (c *Console) printMenu() {
	c.printf("Commands:\n")
	c.printf(" 1) View buffer\n")
	c.printf(" 2) Insert line at position\n")
	c.printf(" 3) Append line\n")
	c.printf(" 4) Edit existing line\n")
	c.printf(" 5) Delete line\n")
	c.printf(" 6) Search text\n")
	c.printf(" 7) Save\n")
	c.printf(" 8) Save As\n")
	c.printf(" 9) Quit\n")
	c.printf("----------------------------------------------------\n")
}

func (c *Console) prompt(label string) (string, error) {
	c.printf("%s", label)
	return c.in.ReadLine()
}

// promptIndex asks for a 1-based position in [1, limit] and returns it 0-based.
func (c *Console) promptIndex(label string, limit int) (int, error) {
	input, err := c.prompt(fmt.Sprintf("%s (1-%d): ", label, limit))
	if err != nil {
		return 0, errAborted
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 || n > limit {
		c.printf("Invalid number.\n")
		return 0, errAborted
	}
	return n - 1, nil
}

func (c *Console) view() {
	_, _ = c.sess.Store.WriteTo(c.out)
}

func (c *Console) insert() {
	if c.sess.Store.Len() == 0 {
		c.printf("Buffer is empty; inserting as first line.\n")
	}
	idx, err := c.promptIndex("Enter position to insert at", c.sess.Store.Len()+1)
	if err != nil {
		return
	}
	text, err := c.prompt("Enter text: ")
	if err != nil {
		return
	}
	if err := c.sess.Insert(idx, text); err != nil {
		c.printf("Failed to insert line: %v\n", err)
	}
}

func (c *Console) appendLine() {
	text, err := c.prompt("Enter text to append: ")
	if err != nil {
		return
	}
	if err := c.sess.Append(text); err != nil {
		c.printf("Failed to append line: %v\n", err)
	}
}

func (c *Console) edit() {
	if c.sess.Store.Len() == 0 {
		c.printf("Buffer is empty. Nothing to edit.\n")
		return
	}
	idx, err := c.promptIndex("Enter line number to edit", c.sess.Store.Len())
	if err != nil {
		return
	}
	old, _ := c.sess.Store.Get(idx)
	c.printf("Current text: %s\n", old)

	text, err := c.prompt("Enter new text: ")
	if err != nil {
		return
	}
	if err := c.sess.Replace(idx, text); err != nil {
		c.printf("Failed to replace line: %v\n", err)
	}
}

func (c *Console) delete() {
	if c.sess.Store.Len() == 0 {
		c.printf("Buffer is empty. Nothing to delete.\n")
		return
	}
	idx, err := c.promptIndex("Enter line number to delete", c.sess.Store.Len())
	if err != nil {
		return
	}
	if err := c.sess.Delete(idx); err != nil {
		c.printf("Failed to delete line: %v\n", err)
	}
}

func (c *Console) search() {
	query, err := c.prompt("Enter search text: ")
	if err != nil {
		return
	}
	if query == "" {
		c.printf("Empty search string.\n")
		return
	}
	idx, ok := c.sess.Store.Find(query)
	if !ok {
		c.printf("No match found for '%s'.\n", query)
		return
	}
	line, _ := c.sess.Store.Get(idx)
	c.printf("First match at line %d: %s\n", idx+1, line)
}

func (c *Console) save() {
	if c.sess.Filename == "" {
		name, err := c.prompt("Enter filename to save as: ")
		if err != nil || name == "" {
			c.printf("Save cancelled.\n")
			return
		}
		c.performSave(name)
		return
	}
	c.performSave(c.sess.Filename)
}

func (c *Console) saveAs() {
	name, err := c.prompt("Enter new filename: ")
	if err != nil || name == "" {
		c.printf("Save As cancelled.\n")
		return
	}
	c.performSave(name)
}

func (c *Console) performSave(name string) {
	if err := c.sess.SaveAs(name); err != nil {
		c.printf("Failed to save file '%s': %v\n", name, err)
		return
	}
	c.printf("Saved to '%s'.\n", c.sess.Filename)
}

func (c *Console) confirmDiscard() bool {
	answer, err := c.prompt("You have unsaved changes. Quit anyway? (y/n): ")
	if err != nil {
		return false
	}
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}
