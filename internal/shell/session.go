// Package shell implements the interactive prompt layer: line input with
// cancellation, numbered menus, and the plain-text progress rendering used in
// sequential runs.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Session reads answers from one input stream. A background goroutine owns
// the reader so prompts can be abandoned on context cancellation (Ctrl-C
// lands as context cancellation from the signal handler).
type Session struct {
	out    io.Writer
	styles Styles
	lines  chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewSession starts reading from r. The reader goroutine exits when r hits
// EOF or an error.
func NewSession(r io.Reader, w io.Writer, styles Styles) *Session {
	s := &Session{
		out:    w,
		styles: styles,
		lines:  make(chan lineResult),
	}
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			s.lines <- lineResult{text: sc.Text()}
		}
		err := sc.Err()
		if err == nil {
			err = io.EOF
		}
		s.lines <- lineResult{err: err}
		close(s.lines)
	}()
	return s
}

// ReadLine prints the prompt and waits for one line of input, trimmed.
func (s *Session) ReadLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(s.out, s.styles.Info.Render(prompt))
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// ReadValidated re-prompts until valid accepts the answer.
func (s *Session) ReadValidated(ctx context.Context, prompt string, valid func(string) bool) (string, error) {
	for {
		answer, err := s.ReadLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if valid == nil || valid(answer) {
			return answer, nil
		}
		fmt.Fprintln(s.out, s.styles.Error.Render("Invalid input!"))
	}
}

// SelectMenu shows a numbered option list and returns the chosen 1-based
// index. Out-of-range or non-numeric answers re-prompt.
func (s *Session) SelectMenu(ctx context.Context, title string, options []string) (int, error) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, s.styles.Info.Render(title))
	for i, option := range options {
		fmt.Fprintln(s.out, s.styles.Option.Render(fmt.Sprintf("%2d. %s", i+1, option)))
	}
	for {
		answer, err := s.ReadLine(ctx, "\nSelection: ")
		if err != nil {
			return 0, err
		}
		choice, cerr := strconv.Atoi(answer)
		if cerr != nil {
			fmt.Fprintln(s.out, s.styles.Error.Render("Please enter a valid integer!"))
			continue
		}
		if choice < 1 || choice > len(options) {
			fmt.Fprintln(s.out, s.styles.Error.Render(fmt.Sprintf("Invalid option! Enter 1 to %d", len(options))))
			continue
		}
		return choice, nil
	}
}

// SelectYesNo asks a No/Yes menu and returns true for Yes.
func (s *Session) SelectYesNo(ctx context.Context, title string) (bool, error) {
	choice, err := s.SelectMenu(ctx, title, []string{"No", "Yes"})
	if err != nil {
		return false, err
	}
	return choice == 2, nil
}

// ReadCount prompts for an integer in [1, max].
func (s *Session) ReadCount(ctx context.Context, prompt string, max int) (int, error) {
	answer, err := s.ReadValidated(ctx, prompt, func(in string) bool {
		n, cerr := strconv.Atoi(in)
		return cerr == nil && n >= 1 && n <= max
	})
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// Println writes a styled line to the session output.
func (s *Session) Println(line string) {
	fmt.Fprintln(s.out, line)
}
