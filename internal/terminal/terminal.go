// Package terminal implements the fake shell behind /terminal/{command}.
package terminal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portfolio-backend/internal/catalog"
	"portfolio-backend/internal/generator"
	"portfolio-backend/internal/models"
)

const defaultCowsayMessage = "Moo!"

type handler func() string

// Simulator resolves commands against a fixed table built at construction
type Simulator struct {
	catalog  *catalog.Catalog
	commands map[string]handler
	started  time.Time
	now      func() time.Time
}

// New builds a simulator over the static catalog.
// trainingEpochs is the run length announced by "train"; it should match the training feed.
func New(c *catalog.Catalog, trainingEpochs int) *Simulator {
	s := &Simulator{
		catalog: c,
		started: time.Now(),
		now:     time.Now,
	}
	s.commands = map[string]handler{
		"help":     s.help,
		"whoami":   s.whoami,
		"neofetch": s.neofetch,
		"fortune":  s.fortune,
		"stats":    s.stats,
		"skills":   s.skills,
		"clear":    func() string { return "" },
		"train":    feedLauncher(fmt.Sprintf("Launching model training (%d epochs)...", trainingEpochs), "training"),
		"predict":  feedLauncher("Starting live regression inference...", "predictions"),
		"pipeline": feedLauncher("Triggering ETL pipeline run...", "pipeline"),
		"matrix":   feedLauncher("Wake up, Neo...", "matrix"),
		"hack":     feedLauncher("Initiating hack sequence. This is totally legal.", "hack"),
	}
	return s
}

// Normalize lowercases and trims raw terminal input
func Normalize(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// Execute runs one command line. Unknown input is reported in the response, never as an error.
func (s *Simulator) Execute(input string) models.TerminalResponse {
	raw := strings.TrimSpace(input)
	command := Normalize(raw)

	if command == "cowsay" || strings.HasPrefix(command, "cowsay ") {
		// The message keeps the case it was typed with
		return models.TerminalResponse{Output: Cowsay(strings.TrimSpace(raw[len("cowsay"):])), Success: true}
	}

	if h, ok := s.commands[command]; ok {
		return models.TerminalResponse{Output: h(), Success: true}
	}

	return models.TerminalResponse{
		Output:  fmt.Sprintf("Command not found: %s\nType 'help' for available commands.", raw),
		Success: false,
	}
}

// Cowsay frames msg in a speech bubble above the cow.
// The top and bottom borders are two characters wider than the message.
func Cowsay(msg string) string {
	if msg == "" {
		msg = defaultCowsayMessage
	}
	width := utf8.RuneCountInString(msg) + 2

	var b strings.Builder
	b.WriteString(" " + strings.Repeat("_", width) + "\n")
	b.WriteString("< " + msg + " >\n")
	b.WriteString(" " + strings.Repeat("-", width) + "\n")
	b.WriteString(`        \   ^__^
         \  (oo)\_______
            (__)\       )\/\
                ||----w |
                ||     ||`)
	return b.String()
}

func feedLauncher(banner, feed string) handler {
	return func() string {
		return fmt.Sprintf("%s\nLive feed: /stream/%s", banner, feed)
	}
}

func (s *Simulator) help() string {
	return strings.Join([]string{
		"Available commands:",
		"  help           Show this help",
		"  whoami         Who is behind this portfolio",
		"  neofetch       System information",
		"  fortune        Data science wisdom",
		"  cowsay <msg>   Let the cow speak",
		"  stats          Live system metrics",
		"  skills         Skills by category",
		"  train          Start a model training run",
		"  predict        Stream live predictions",
		"  pipeline       Run the ETL pipeline",
		"  matrix         Follow the white rabbit",
		"  hack           Definitely not hacking",
		"  clear          Clear the screen",
	}, "\n")
}

func (s *Simulator) whoami() string {
	p := s.catalog.Profile()
	return fmt.Sprintf("%s - %s\n%s", p.Name, p.Title, p.Bio)
}

func (s *Simulator) neofetch() string {
	p := s.catalog.Profile()
	uptime := s.now().Sub(s.started).Truncate(time.Second)

	art := []string{
		"   ____  ",
		"  |  _ \\ ",
		"  | |_) |",
		"  |  __/ ",
		"  |_|    ",
		"         ",
		"         ",
	}
	info := []string{
		fmt.Sprintf("%s@portfolio", strings.ToLower(strings.ReplaceAll(p.Name, " ", "."))),
		"-----------------",
		"Role: " + p.Title,
		"Shell: portfolio-sh",
		"Uptime: " + uptime.String(),
		fmt.Sprintf("Projects: %d", len(s.catalog.Projects())),
		fmt.Sprintf("Skill categories: %d", len(s.catalog.Categories())),
	}

	lines := make([]string, len(art))
	for i := range art {
		lines[i] = art[i] + "   " + info[i]
	}
	return strings.Join(lines, "\n")
}

func (s *Simulator) fortune() string {
	fortunes := s.catalog.Fortunes()
	if len(fortunes) == 0 {
		return "No fortune today."
	}
	return fortunes[generator.NewRand().IntN(len(fortunes))]
}

func (s *Simulator) stats() string {
	m := generator.Metrics(generator.NewRand(), s.now().UTC())
	return fmt.Sprintf(
		"CPU: %.1f%%\nMemory: %.1f%%\nGPU: %.1f%%\nDisk I/O: %.1f MB/s\nNetwork: %.1f in / %.1f out Mbps\nLatency: %.1f ms\nError rate: %.2f%%",
		m.CPU, m.Memory, m.GPU, m.DiskIO, m.NetworkIn, m.NetworkOut, m.LatencyMs, m.ErrorRate,
	)
}

func (s *Simulator) skills() string {
	var b strings.Builder
	for i, category := range s.catalog.Categories() {
		if i > 0 {
			b.WriteString("\n")
		}
		list, _ := s.catalog.SkillsByCategory(category)
		names := make([]string, len(list))
		for j, sk := range list {
			names[j] = sk.Name
		}
		fmt.Fprintf(&b, "%s: %s", strings.ToUpper(category), strings.Join(names, ", "))
	}
	return b.String()
}
