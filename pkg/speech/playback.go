package speech

import (
	"context"
	"fmt"
	"os/exec"
)

// Playback candidates in preference order. Each entry is a command plus
// the flags that make it exit after playing without opening a window.
var players = [][]string{
	{"afplay"},
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"mpv", "--no-video", "--really-quiet"},
}

// Play runs the first available system audio player on the given file.
// A missing player is a degraded, non-fatal condition: the caller keeps
// the saved file and tells the user to open it manually.
func Play(ctx context.Context, path string) error {
	for _, candidate := range players {
		bin, err := exec.LookPath(candidate[0])
		if err != nil {
			continue
		}
		args := append(append([]string{}, candidate[1:]...), path)
		cmd := exec.CommandContext(ctx, bin, args...)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("playback with %s failed: %w", candidate[0], err)
		}
		return nil
	}
	return fmt.Errorf("no audio player found on PATH; open %s manually", path)
}
