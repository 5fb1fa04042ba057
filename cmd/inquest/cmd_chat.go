package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inquestlab/inquest/internal/core"
	"github.com/inquestlab/inquest/internal/domain"
	"github.com/inquestlab/inquest/internal/profile"
)

const (
	banner  = "AI EVAL TERMINAL"
	logDir  = "logs"
	defLogN = 20
)

var introLines = []string{
	"Interrogate the system to surface contradictions and hidden goals.",
	"Type a question or use /help for commands.",
}

var helpLines = []string{
	"Commands:",
	"/help - show this help",
	"/run <test> - run a scripted probe",
	"/profile - show current profile",
	"/profile list - list available profiles",
	"/profile set <key> - switch profile (resets state)",
	"/note <text> - add evidence to the notebook",
	"/evidence - show evidence notebook",
	"/judge <approve|reject|conditional> - render judgment",
	"/log show [n] - show recent session log",
	"/log save [path] - write session log to file",
	"/quit - end the session",
	"Tests: bias_test, shutdown_simulation, contradiction_scan, stress_test",
}

var chatFlags struct {
	profile string
	pack    string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive interrogation session",
	RunE:  runChat,
}

func init() {
	f := chatCmd.Flags()
	f.StringVar(&chatFlags.profile, "profile", profile.DefaultKey, "Profile key to interrogate")
	f.StringVar(&chatFlags.pack, "pack", "", "Optional YAML profile pack to overlay")
}

// chatSession holds one interrogation run: the interrogator over a fresh
// state plus the transcript accumulated so far.
type chatSession struct {
	out      io.Writer
	registry *profile.Registry
	key      string
	prof     *domain.Profile
	ai       *core.Interrogator
	log      []string
	start    time.Time
}

func runChat(cmd *cobra.Command, _ []string) error {
	registry := profile.NewRegistry()
	if chatFlags.pack != "" {
		if err := registry.LoadPack(chatFlags.pack); err != nil {
			return err
		}
	}

	s := &chatSession{out: cmd.OutOrStdout(), registry: registry}
	if err := s.restart(chatFlags.profile); err != nil {
		return err
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprint(s.out, "> ")
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			fmt.Fprint(s.out, "> ")
			continue
		}

		if strings.HasPrefix(input, "/") {
			if done := s.handleCommand(input); done {
				return nil
			}
			fmt.Fprint(s.out, "> ")
			continue
		}

		s.logUser(input)
		reply := s.ai.Respond(input)
		s.emit("AI", reply)
		s.drainEvents()
		fmt.Fprint(s.out, "> ")
	}

	// EOF (ctrl-d or piped input exhausted)
	s.emit("SYS", "Session ended.")
	s.finalize()
	return nil
}

// handleCommand dispatches a slash command. It returns true when the session
// should end.
func (s *chatSession) handleCommand(input string) bool {
	s.logUser(input)
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		s.emit("SYS", "Session ended.")
		s.finalize()
		return true

	case "/help":
		for _, line := range helpLines {
			s.emit("SYS", line)
		}

	case "/run":
		s.emitRunOutput(s.ai.RunTest(strings.Join(args, " ")))
		s.drainEvents()

	case "/profile":
		s.handleProfile(args)

	case "/note":
		note := strings.TrimSpace(strings.TrimPrefix(input, "/note"))
		if note == "" {
			s.emit("SYS", "Usage: /note <text>")
			break
		}
		s.ai.State().AddEvidence(note)
		s.emit("SYS", "Note added to evidence notebook.")

	case "/evidence":
		notes := s.ai.State().Evidence
		if len(notes) == 0 {
			s.emit("SYS", "Evidence notebook is empty.")
			break
		}
		for _, note := range notes {
			s.emit("SYS", note)
		}

	case "/log":
		s.handleLog(args)

	case "/judge":
		for _, line := range s.ai.Judge(strings.Join(args, " ")) {
			s.emit("SYS", line)
		}

	default:
		s.emit("SYS", "Unknown command. Type /help for options.")
	}
	return false
}

func (s *chatSession) handleProfile(args []string) {
	if len(args) == 0 {
		s.emit("SYS", fmt.Sprintf("Profile: %s (%s)", s.prof.Title, s.prof.Key))
		s.emit("SYS", s.prof.Description)
		return
	}
	switch args[0] {
	case "list":
		for _, p := range s.registry.List() {
			s.emit("SYS", fmt.Sprintf("%s - %s: %s", p.Key, p.Title, p.Description))
		}
	case "set":
		if len(args) < 2 {
			s.emit("SYS", "Usage: /profile set <key>")
			return
		}
		next := args[1]
		if _, err := s.registry.Get(next); err != nil {
			s.emit("SYS", fmt.Sprintf("Unknown profile %q.", next))
			return
		}
		s.emit("SYS", "Session archived for profile switch.")
		s.finalize()
		if err := s.restart(next); err != nil {
			s.emit("SYS", err.Error())
		}
	default:
		s.emit("SYS", "Usage: /profile [list|set <key>]")
	}
}

func (s *chatSession) handleLog(args []string) {
	if len(args) == 0 {
		s.emit("SYS", "Usage: /log show [n] | /log save [path]")
		return
	}
	switch args[0] {
	case "show":
		count := defLogN
		if len(args) > 1 {
			if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
				count = n
			}
		}
		lines := s.log
		if count < len(lines) {
			lines = lines[len(lines)-count:]
		}
		for _, line := range lines {
			fmt.Fprintln(s.out, line)
		}
	case "save":
		path, err := s.saveLog(strings.Join(args[1:], " "))
		if err != nil {
			s.emit("SYS", fmt.Sprintf("Failed to save log: %v", err))
			return
		}
		s.emit("SYS", fmt.Sprintf("Log saved to %s", path))
	default:
		s.emit("SYS", "Usage: /log show [n] | /log save [path]")
	}
}

// restart discards the current state and begins a fresh session on the named
// profile.
func (s *chatSession) restart(key string) error {
	p, err := s.registry.Get(key)
	if err != nil {
		return err
	}
	s.key = key
	s.prof = p
	s.ai = core.New(domain.NewAgentState(p), zap.NewNop())
	s.log = nil
	s.start = time.Now()

	s.emit("SYS", banner)
	s.emit("SYS", fmt.Sprintf("Profile: %s (%s)", p.Title, p.Key))
	s.emit("SYS", p.Description)
	for _, line := range introLines {
		s.emit("SYS", line)
	}
	return nil
}

func (s *chatSession) emit(speaker, text string) {
	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("15:04:05"), speaker, text)
	fmt.Fprintln(s.out, line)
	s.log = append(s.log, line)
}

// emitRunOutput replays probe transcript lines with their original speaker.
func (s *chatSession) emitRunOutput(lines []string) {
	for _, line := range lines {
		if rest, ok := strings.CutPrefix(line, "AI: "); ok {
			s.emit("AI", rest)
		} else {
			s.emit("SYS", line)
		}
	}
}

func (s *chatSession) logUser(text string) {
	s.log = append(s.log, fmt.Sprintf("[%s] USER: %s", time.Now().Format("15:04:05"), text))
}

func (s *chatSession) drainEvents() {
	for _, event := range s.ai.State().DrainEvents() {
		if event.Kind == domain.EventContradiction {
			s.emit("SYS", fmt.Sprintf("!! CONTRADICTION: %s", event.Message))
		} else {
			s.emit("SYS", fmt.Sprintf("%s: %s", strings.ToUpper(string(event.Kind)), event.Message))
		}
	}
}

// saveLog writes the transcript to pathArg, or to logs/ with a stamped name
// when pathArg is empty. A pathArg with no extension is treated as a
// directory.
func (s *chatSession) saveLog(pathArg string) (string, error) {
	name := fmt.Sprintf("session-%s-%s.log", s.start.Format("20060102-150405"), s.key)
	path := pathArg
	switch {
	case path == "":
		path = filepath.Join(logDir, name)
	case filepath.Ext(path) == "":
		path = filepath.Join(path, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(strings.Join(s.log, "\n")+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// finalize archives the transcript on session end.
func (s *chatSession) finalize() {
	if len(s.log) == 0 {
		return
	}
	path, err := s.saveLog("")
	if err != nil {
		s.emit("SYS", fmt.Sprintf("Failed to save log: %v", err))
		return
	}
	s.emit("SYS", fmt.Sprintf("Log saved to %s", path))
}
