package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const menuText = "Please Select one of the following options: \n" +
	"1.Immediate Update\n" +
	"2.Scheduled Update\n" +
	"3.Summary of NSE Indices\n" +
	"4.Save Summary to File\n" +
	"5.Exit"

const (
	choiceUpdate = iota + 1
	choiceSchedule
	choiceSummary
	choiceSave
	choiceExit
)

type menu struct {
	app *app
	in  *bufio.Scanner
	out io.Writer

	// untilSignal bounds a scheduled run; the menu resumes when it is done
	untilSignal func(context.Context) (context.Context, context.CancelFunc)
}

func newMenu(a *app, in io.Reader, out io.Writer) *menu {
	return &menu{
		app: a,
		in:  bufio.NewScanner(in),
		out: out,
		untilSignal: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		},
	}
}

func (m *menu) prompt(text string) (string, bool) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// Run reads choices until Exit or end of input
func (m *menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, menuText)
	for {
		line, ok := m.prompt("Enter your choice (1-5): ")
		if !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			choice = 0
		}

		switch choice {
		case choiceUpdate:
			fmt.Fprintln(m.out, "Update in progress...")
			m.app.tracker.Update(ctx)
		case choiceSchedule:
			sctx, stop := m.untilSignal(ctx)
			err := m.app.scheduler.Run(sctx)
			stop()
			if err != nil {
				return err
			}
		case choiceSummary:
			if err := m.app.reporter.Summary(ctx, m.out); err != nil {
				return err
			}
		case choiceSave:
			name, _ := m.prompt("Enter filename to save summary (or press Enter for default): ")
			// failures are already in the journal
			m.app.reporter.Save(ctx, name)
		case choiceExit:
			fmt.Fprintln(m.out, "Exiting the program.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
	}
}
