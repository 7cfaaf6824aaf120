package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	fail     map[string]error
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }

func (f *fakeExec) Exec(_ context.Context, name string, args []string) error {
	if name == "bogus" {
		return errUnknownCommand
	}
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	if name == "login" {
		f.loggedIn = true
	}
	return f.fail[name]
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{fail: map[string]error{"add": errors.New("Not enough stock available")}}
	input := strings.Join([]string{
		"help",
		"",
		"login",
		"products 2 shoes",
		"add prod-boot 5",
		"bogus",
		"exit",
		"cart",
	}, "\n")

	runREPL(context.Background(), exec, func() string { return "(online)" }, rdr(input))

	assert.Equal(t, []string{"login", "products 2 shoes", "add prod-boot 5"}, exec.calls)
	out := strings.Join(*lines, "\n")
	assert.Contains(t, out, "shop (online)> ")
	assert.Contains(t, out, "Error: Not enough stock available")
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("whoami"))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("cart\ncart\n"))

	assert.Equal(t, []string{"cart"}, exec.calls)
}

func TestHelpText(t *testing.T) {
	guest := helpText(false)
	assert.Contains(t, guest, "login")
	assert.Contains(t, guest, "add <id> [qty] [size] [color]")
	assert.NotContains(t, guest, "checkout")

	member := helpText(true)
	assert.Contains(t, member, "checkout")
	assert.Contains(t, member, "logout")
	assert.NotContains(t, member, "register")
}

func TestCommandOrderCoversTable(t *testing.T) {
	assert.Len(t, commandOrder, len(commands))
	for _, name := range commandOrder {
		_, ok := commands[name]
		assert.True(t, ok, name)
	}
}
