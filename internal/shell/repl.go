package shell

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"courseforge/pkg/coursetypes"
)

// REPL is the interactive chat loop. Plain input goes to the orchestrator;
// lines starting with "/" are commands.
type REPL struct {
	svc    *Services
	out    *bufio.Writer
	in     *bufio.Scanner
	closed bool
}

// NewREPL creates a REPL over stdin/stdout.
func NewREPL(svc *Services) *REPL {
	return &REPL{
		svc: svc,
		out: bufio.NewWriter(os.Stdout),
		in:  bufio.NewScanner(os.Stdin),
	}
}

// Run reads and dispatches input until /quit or EOF.
func (r *REPL) Run() error {
	r.println("CourseForge - agentic curriculum authoring")
	r.println("Type /help for commands, /quit to exit.")
	r.drainNotifications()

	for !r.closed {
		r.printf("%s> ", r.svc.Context.GetMode())
		_ = r.out.Flush()
		if !r.in.Scan() {
			break
		}
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			r.dispatchCommand(line)
		} else {
			r.submit(line)
		}
		r.drainNotifications()
		_ = r.out.Flush()
	}
	return r.in.Err()
}

// submit sends an utterance to the orchestrator and prints the model replies
// it produced. Ctrl-C during generation cancels the in-flight request.
func (r *REPL) submit(text string) {
	mode := r.svc.Context.GetMode()
	before := len(r.svc.Context.GetMessages()[mode])

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	done := make(chan struct{})
	go func() {
		select {
		case <-interrupt:
			_ = r.svc.Orchestrator.CancelActive()
		case <-done:
		}
	}()

	err := r.svc.Orchestrator.Submit(text)
	close(done)
	signal.Stop(interrupt)
	if err != nil {
		r.printf("error: %v\n", err)
		return
	}

	messages := r.svc.Context.GetMessages()[mode]
	for _, msg := range messages[before:] {
		if msg.Role != coursetypes.RoleModel {
			continue
		}
		rendered, err := r.svc.Markdown.RenderForTheme(msg.Text, r.svc.Context.GetSettings().Theme)
		if err != nil || rendered == "" {
			r.println(msg.Text)
			continue
		}
		r.print(rendered)
	}
}

func (r *REPL) dispatchCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "/help":
		r.printHelp()
	case "/mode":
		r.cmdMode(args)
	case "/sessions":
		r.cmdSessions()
	case "/new":
		r.report(r.svc.Sessions.CreateSession())
	case "/switch":
		if len(args) != 1 {
			r.println("usage: /switch <session-id>")
			return
		}
		r.report(r.svc.Sessions.SwitchSession(args[0]))
	case "/delete":
		if len(args) != 1 {
			r.println("usage: /delete <session-id>")
			return
		}
		r.report(r.svc.Sessions.DeleteSession(args[0]))
	case "/rename":
		if len(args) == 0 {
			r.println("usage: /rename <title>")
			return
		}
		r.report(r.svc.Sessions.RenameSession(r.svc.Context.GetCurrentSessionID(), strings.Join(args, " ")))
	case "/cancel":
		r.report(r.svc.Orchestrator.CancelActive())
	case "/feedback":
		if len(args) != 2 || (args[1] != "up" && args[1] != "down") {
			r.println("usage: /feedback <message-id> up|down")
			return
		}
		r.report(r.svc.Sessions.SubmitFeedback(args[0], coursetypes.FeedbackVote(args[1])))
	case "/curriculum":
		r.cmdCurriculum()
	case "/assessments":
		r.cmdAssessments()
	case "/settings":
		r.cmdSettings(args)
	case "/register":
		if len(args) != 3 {
			r.println("usage: /register <name> <email> <password>")
			return
		}
		_, err := r.svc.Auth.Register(args[0], args[1], args[2])
		r.report(err)
	case "/login":
		if len(args) != 2 {
			r.println("usage: /login <email> <password>")
			return
		}
		_, err := r.svc.Auth.Login(args[0], args[1])
		r.report(err)
	case "/logout":
		r.report(r.svc.Auth.Logout())
	case "/reset":
		r.report(r.svc.Sessions.ResetAll())
	case "/quit", "/exit":
		r.closed = true
	default:
		r.printf("unknown command %s (try /help)\n", cmd)
	}
}

func (r *REPL) printHelp() {
	r.println("Commands:")
	r.println("  /mode [curriculum|assessment|adaptive|coach]  show or switch agent mode")
	r.println("  /sessions                                     list sessions")
	r.println("  /new                                          create a session")
	r.println("  /switch <id>                                  switch to a session")
	r.println("  /delete <id>                                  delete a session")
	r.println("  /rename <title>                               rename the active session")
	r.println("  /cancel                                       cancel the in-flight generation")
	r.println("  /feedback <message-id> up|down                rate a model reply")
	r.println("  /curriculum                                   show the current curriculum")
	r.println("  /assessments                                  list generated assessments")
	r.println("  /settings [key value]                         show or change display settings")
	r.println("  /register /login /logout                      account commands")
	r.println("  /reset                                        wipe all stored data")
	r.println("  /quit                                         exit")
}

func (r *REPL) cmdMode(args []string) {
	if len(args) == 0 {
		r.printf("mode: %s\n", r.svc.Context.GetMode())
		return
	}
	mode := coursetypes.Mode(args[0])
	if !mode.Valid() {
		r.printf("unknown mode %q\n", args[0])
		return
	}
	r.report(r.svc.Sessions.SetMode(mode))
}

func (r *REPL) cmdSessions() {
	current := r.svc.Context.GetCurrentSessionID()
	for id, session := range r.svc.Context.GetSessions() {
		marker := " "
		if id == current {
			marker = "*"
		}
		r.printf("%s %s  %s  (%s)\n", marker, id, session.Title, session.LastModified.Format("2006-01-02 15:04"))
	}
}

func (r *REPL) cmdCurriculum() {
	curriculum := r.svc.Context.GetCurriculum()
	if curriculum == nil {
		r.println("no curriculum yet; describe your course in curriculum mode")
		return
	}
	r.printf("%s (%s, %s)\n", curriculum.Title, curriculum.DifficultyLevel, curriculum.EstimatedTotalDuration)
	for i, module := range curriculum.Modules {
		r.printf("  %d. %s\n", i+1, module.Title)
		for _, lesson := range module.Lessons {
			r.printf("     - [%s] %s (%s)\n", lesson.Type, lesson.Title, lesson.Duration)
		}
	}
}

func (r *REPL) cmdAssessments() {
	assessments := r.svc.Context.GetAssessments()
	if len(assessments) == 0 {
		r.println("no assessments yet")
		return
	}
	for _, a := range assessments {
		r.printf("%s  %s (%s, %.0f pts) - %s\n", a.ID, a.Title, a.Type, a.TotalPoints, a.TargetContext)
	}
}

func (r *REPL) cmdSettings(args []string) {
	if len(args) == 0 {
		settings := r.svc.Context.GetSettings()
		r.printf("theme=%s color=%s font=%s icons=%s sidebar-collapsed=%t spacing=%s\n",
			settings.Theme, settings.PrimaryColor, settings.FontSize, settings.IconSize,
			settings.SidebarCollapsed, settings.LayoutSpacing)
		return
	}
	if len(args) != 2 {
		r.println("usage: /settings <key> <value>")
		return
	}

	var delta coursetypes.SettingsDelta
	switch args[0] {
	case "theme":
		theme := coursetypes.Theme(args[1])
		delta.Theme = &theme
	case "color":
		delta.PrimaryColor = &args[1]
	case "font":
		size := coursetypes.SizeTier(args[1])
		delta.FontSize = &size
	case "icons":
		size := coursetypes.SizeTier(args[1])
		delta.IconSize = &size
	case "sidebar":
		collapsed, err := strconv.ParseBool(args[1])
		if err != nil {
			r.println("usage: /settings sidebar true|false")
			return
		}
		delta.SidebarCollapsed = &collapsed
	case "spacing":
		delta.LayoutSpacing = &args[1]
	default:
		r.printf("unknown setting %q\n", args[0])
		return
	}
	r.report(r.svc.Settings.Update(delta))
}

// drainNotifications prints queued notifications.
func (r *REPL) drainNotifications() {
	for _, n := range r.svc.Notifications.Drain() {
		r.printf("[%s] %s\n", n.Type, n.Message)
	}
}

func (r *REPL) report(err error) {
	if err != nil {
		r.printf("error: %v\n", err)
	}
}

func (r *REPL) print(s string)   { _, _ = fmt.Fprint(r.out, s) }
func (r *REPL) println(s string) { _, _ = fmt.Fprintln(r.out, s) }
func (r *REPL) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
