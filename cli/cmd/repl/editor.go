package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/kaleidoscope/lang"
	"github.com/ardnew/kaleidoscope/log"
)

const defaultEditor = "vi"

// editSessionCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop. It writes the session program to a temp file in native syntax, opens
// the user's editor, and re-parses the result. On parse error the user is
// prompted to re-edit; declining exits the program.
type editSessionCommand struct {
	session    *lang.Program
	ctxFunc    func() context.Context
	parseOpts  []lang.Option
	newSession *lang.Program
	logger     log.Logger
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editSessionCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editSessionCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editSessionCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. An emptied file cancels the edit
// and leaves newSession nil. If the user declines to re-edit after a parse
// error, Run returns [ErrEditDeclined].
func (c *editSessionCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := c.session.Format(ctx, &buf, false); err != nil {
		return fmt.Errorf("format session: %w", err)
	}

	f, err := os.CreateTemp(os.TempDir(), "kl-repl-*.k")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		content, err = os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}

		session, parseErr := lang.ParseString(ctx, string(content), c.parseOpts...)
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.newSession = session

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", parseErr)

		var perr *lang.ParseError
		if errors.As(parseErr, &perr) {
			fmt.Fprint(c.stderr, perr.Snippet())
		}

		if !confirm(c.stdin, c.stdout, "Re-edit? [Y/n] ") {
			return ErrEditDeclined
		}
	}
}

// confirm prints prompt and reports whether the reply is anything but no.
func confirm(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprint(w, prompt)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// editorCommand returns the editor to run, from $VISUAL or $EDITOR.
func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := strings.TrimSpace(os.Getenv(env)); editor != "" {
			return editor
		}
	}

	return defaultEditor
}

// runEditor runs the user's editor on the file at path. An editor command
// with arguments, such as "code --wait", is split on whitespace.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := strings.Fields(editorCommand())

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
