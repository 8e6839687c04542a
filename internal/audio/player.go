package audio

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Player plays an audio file to completion
type Player interface {
	Play(ctx context.Context, file string) error
}

// ExecPlayer plays files with the platform's command line audio player
type ExecPlayer struct {
	lookPath func(string) (string, error)
	goos     string
}

// NewExecPlayer creates a player for the current platform
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
	}
}

type playerCommand struct {
	name string
	args []string
}

// linuxPlayers lists the players that can decode each format, in order of
// preference. mpg123 only handles MPEG audio and aplay/paplay only PCM.
func linuxPlayers(file string) map[string][]playerCommand {
	ffplay := playerCommand{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}}
	sox := playerCommand{"play", []string{"-q", file}}
	return map[string][]playerCommand{
		"wav": {
			{"paplay", []string{file}},
			{"aplay", []string{"-q", file}},
			ffplay,
			sox,
		},
		"mp3": {
			{"mpg123", []string{"-q", file}},
			ffplay,
			sox,
		},
	}
}

// command picks the player command for file based on its extension
func (p *ExecPlayer) command(file string) (string, []string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), "."))

	switch p.goos {
	case "darwin":
		return "afplay", []string{file}, nil
	case "linux":
		candidates, ok := linuxPlayers(file)[format]
		if !ok {
			return "", nil, fmt.Errorf("unsupported audio format: %q", format)
		}
		names := make([]string, 0, len(candidates))
		for _, c := range candidates {
			if _, err := p.lookPath(c.name); err == nil {
				return c.name, c.args, nil
			}
			names = append(names, c.name)
		}
		return "", nil, fmt.Errorf("no %s audio player found. Install one of: %s", format, strings.Join(names, ", "))
	case "windows":
		// Media.SoundPlayer only plays WAV
		if format == "wav" {
			return "powershell", []string{"-NoProfile", "-Command",
				fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", file)}, nil
		}
		if _, err := p.lookPath("ffplay"); err == nil {
			return "ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet", file}, nil
		}
		return "", nil, fmt.Errorf("no %s audio player found. Install ffplay", format)
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", p.goos)
	}
}

// Play blocks until playback finishes or ctx is cancelled
func (p *ExecPlayer) Play(ctx context.Context, file string) error {
	name, args, err := p.command(file)
	if err != nil {
		return err
	}

	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s failed: %w\nOutput: %s", name, err, string(output))
	}
	return nil
}
