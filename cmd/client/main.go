// Package main implements the interactive TaskMaster shell. It drives the
// same core library as the application server, against the same storage
// file; the store is single-writer, so run one of the two at a time.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/atinyakov/taskmaster/internal/kvstore"
	"github.com/atinyakov/taskmaster/internal/logger"
	"github.com/atinyakov/taskmaster/internal/models"
	"github.com/atinyakov/taskmaster/internal/repository"
	"github.com/atinyakov/taskmaster/internal/service"
	"golang.org/x/term"
)

var (
	version   string
	buildDate string
)

// app bundles the services the shell commands operate on.
type app struct {
	auth     *service.AuthService
	sessions *service.SessionManager
	tasks    *service.TaskService
	scanner  *bufio.Scanner
}

// prompt prints label and reads one line.
func (a *app) prompt(label string) string {
	fmt.Print(label)
	a.scanner.Scan()
	return strings.TrimSpace(a.scanner.Text())
}

// promptPassword reads a line with terminal echo disabled.
func promptPassword(label string) string {
	fmt.Print(label)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(pw)
}

// email returns the signed-in email or an empty string.
func (a *app) email() string {
	if p := a.sessions.Current(); p != nil {
		return p.Email
	}
	return ""
}

func (a *app) login() {
	email := a.prompt("Email: ")
	password := promptPassword("Password: ")
	profile, err := a.auth.Login(email, password)
	if err != nil {
		fmt.Println(err)
		return
	}
	tasks, err := a.sessions.Activate(*profile)
	if err != nil {
		fmt.Println("failed to activate session:", err)
		return
	}
	fmt.Printf("Welcome back, %s (%d tasks)\n", profile.Name, len(tasks))
}

func (a *app) signup() {
	name := a.prompt("Name: ")
	email := a.prompt("Email: ")
	password := promptPassword("Password: ")
	question := a.prompt("Security question (optional): ")
	answer := ""
	if question != "" {
		answer = a.prompt("Security answer: ")
	}
	profile, err := a.auth.Signup(name, email, password, question, answer)
	if err != nil {
		fmt.Println(err)
		return
	}
	if _, err := a.sessions.Activate(*profile); err != nil {
		fmt.Println("failed to activate session:", err)
		return
	}
	fmt.Printf("Welcome, %s\n", profile.Name)
}

func (a *app) reset() {
	email := a.prompt("Email: ")
	question, err := a.auth.SecurityQuestion(email)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(question)
	answer := a.prompt("Answer: ")
	password := promptPassword("New password: ")
	if err := a.auth.ResetPassword(email, answer, password); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Password updated")
}

// parseView maps a shell argument to a view and a selected day. A literal
// date selects that calendar day.
func parseView(arg string) (models.View, time.Time, error) {
	switch arg {
	case "", "all":
		return models.ViewAll, time.Now(), nil
	case "today":
		return models.ViewToday, time.Now(), nil
	case "important":
		return models.ViewImportant, time.Now(), nil
	}
	day, err := time.ParseInLocation("2006-01-02", arg, time.Local)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("unknown view %q (use today, important, all or 2006-01-02)", arg)
	}
	return models.ViewCalendar, day, nil
}

func (a *app) list(arg string) {
	view, selected, err := parseView(arg)
	if err != nil {
		fmt.Println(err)
		return
	}
	visible := service.Filter(a.tasks.List(a.email()), view, selected, time.Now())
	if len(visible) == 0 {
		fmt.Println("No tasks found")
		return
	}
	for _, t := range visible {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		star := " "
		if t.Important {
			star = "*"
		}
		fmt.Printf("[%s]%s %s  %s  (%s)\n", mark, star, t.ID, t.Title, t.Date.Format("Jan 2"))
		for _, sub := range t.Subtasks {
			mark = " "
			if sub.Completed {
				mark = "x"
			}
			fmt.Printf("    [%s] %s  %s\n", mark, sub.ID, sub.Title)
		}
	}
}

func (a *app) stats(arg string) {
	view, selected, err := parseView(arg)
	if err != nil {
		fmt.Println(err)
		return
	}
	completed, total := service.OverviewStats(a.tasks.List(a.email()), view, selected, time.Now())
	fmt.Printf("Completed: %d/%d (%.0f%%)\n", completed, total, service.Progress(completed, total))
}

func (a *app) profile() {
	p := a.sessions.Current()
	fmt.Printf("Name:  %s\nEmail: %s\n", p.Name, p.Email)
	if p.DOB != "" {
		fmt.Printf("DOB:   %s\n", p.DOB)
	}
	if p.Bio != "" {
		fmt.Printf("Bio:   %s\n", p.Bio)
	}
	if p.DailyQuote != "" {
		fmt.Printf("Quote: %s\n", p.DailyQuote)
	}
}

func (a *app) deleteAccount() {
	if a.prompt("Type the account email to confirm deletion: ") != a.email() {
		fmt.Println("Aborted")
		return
	}
	if err := a.auth.DeleteAccount(a.email()); err != nil {
		fmt.Println("failed to delete account:", err)
		return
	}
	_ = a.sessions.Clear()
	fmt.Println("Account deleted")
}

// repl runs the interactive shell loop, accepting commands to manage tasks.
func (a *app) repl() {
	if p := a.sessions.Restore(); p != nil {
		fmt.Printf("Signed in as %s\n", p.Email)
	}

	for {
		fmt.Print("taskmaster> ")
		if !a.scanner.Scan() {
			break
		}
		line := strings.TrimSpace(a.scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Println("Account: login, signup, reset, whoami, logout, profile, delete-account")
			fmt.Println("Tasks:   add <title>, list [view], toggle <id>, star <id>, rename <id> <title>, rm <id>")
			fmt.Println("         sub add <task> <title>, sub toggle <task> <sub>, sub rm <task> <sub>")
			fmt.Println("Other:   stats [view], exit   (view: today | important | all | 2006-01-02)")
		case "login":
			a.login()
		case "signup":
			a.signup()
		case "reset":
			a.reset()
		case "whoami":
			if p := a.sessions.Current(); p != nil {
				fmt.Println(p.Email)
			} else {
				fmt.Println("Not signed in")
			}
		case "logout":
			_ = a.sessions.Clear()
			fmt.Println("Signed out")
		case "exit":
			fmt.Println("Bye")
			return
		default:
			if a.email() == "" {
				fmt.Println("Sign in first: login or signup")
				continue
			}
			a.dispatch(args)
		}
	}
}

// dispatch handles the commands that need an active session.
func (a *app) dispatch(args []string) {
	email := a.email()
	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Println("Usage: add <title>")
			return
		}
		task, err := a.tasks.Add(email, strings.Join(args[1:], " "), models.ViewToday, time.Time{})
		if err != nil {
			fmt.Println("failed to save task:", err)
			return
		}
		fmt.Println("Added", task.ID)
	case "list":
		a.list(argAt(args, 1))
	case "toggle":
		if len(args) < 2 {
			fmt.Println("Usage: toggle <id>")
			return
		}
		if err := a.tasks.Toggle(email, args[1]); err != nil {
			fmt.Println("failed to save task:", err)
		}
	case "star":
		if len(args) < 2 {
			fmt.Println("Usage: star <id>")
			return
		}
		if err := a.tasks.ToggleImportant(email, args[1]); err != nil {
			fmt.Println("failed to save task:", err)
		}
	case "rename":
		if len(args) < 3 {
			fmt.Println("Usage: rename <id> <title>")
			return
		}
		if err := a.tasks.Rename(email, args[1], strings.Join(args[2:], " ")); err != nil {
			fmt.Println("failed to save task:", err)
		}
	case "rm":
		if len(args) < 2 {
			fmt.Println("Usage: rm <id>")
			return
		}
		if err := a.tasks.Delete(email, args[1]); err != nil {
			fmt.Println("failed to save task:", err)
		}
	case "sub":
		a.subcommand(args[1:])
	case "stats":
		a.stats(argAt(args, 1))
	case "profile":
		a.profile()
	case "delete-account":
		a.deleteAccount()
	default:
		fmt.Println("Unknown command. Type 'help' for a list of commands.")
	}
}

// subcommand handles sub-task operations: add, toggle, rm.
func (a *app) subcommand(args []string) {
	email := a.email()
	if len(args) < 2 {
		fmt.Println("Usage: sub add <task> <title> | sub toggle <task> <sub> | sub rm <task> <sub>")
		return
	}
	switch args[0] {
	case "add":
		if len(args) < 3 {
			fmt.Println("Usage: sub add <task> <title>")
			return
		}
		sub, err := a.tasks.AddSubtask(email, args[1], strings.Join(args[2:], " "))
		if err != nil {
			fmt.Println("failed to save task:", err)
			return
		}
		if sub == nil {
			fmt.Println("Nothing added")
			return
		}
		fmt.Println("Added", sub.ID)
	case "toggle":
		if len(args) < 3 {
			fmt.Println("Usage: sub toggle <task> <sub>")
			return
		}
		if err := a.tasks.ToggleSubtask(email, args[1], args[2]); err != nil {
			fmt.Println("failed to save task:", err)
		}
	case "rm":
		if len(args) < 3 {
			fmt.Println("Usage: sub rm <task> <sub>")
			return
		}
		if err := a.tasks.RemoveSubtask(email, args[1], args[2]); err != nil {
			fmt.Println("failed to save task:", err)
		}
	default:
		fmt.Println("Unknown sub command. Type 'help' for a list of commands.")
	}
}

// argAt returns args[i] or an empty string.
func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// main parses command-line flags and starts the interactive shell.
func main() {
	var (
		storePath string
		showVer   bool
	)

	flag.StringVar(&storePath, "s", "taskmaster.json", "path to the storage file")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("TaskMaster Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	store, err := kvstore.Open(storePath)
	if err != nil {
		fmt.Println("cannot open storage:", err)
		os.Exit(1)
	}

	directory := repository.NewDirectory(store, log.Log)
	taskRepo := repository.NewTaskRepository(store, log.Log)
	sessionRepo := repository.NewSessionRepository(store, log.Log)

	a := &app{
		auth:     service.NewAuthService(directory, taskRepo),
		sessions: service.NewSessionManager(directory, sessionRepo, taskRepo),
		tasks:    service.NewTaskService(taskRepo),
		scanner:  bufio.NewScanner(os.Stdin),
	}
	a.repl()
}
