package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Default returns the stock tuning of the game. Loaded files overlay it.
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  1600,
			ScreenHeight: 800,
			WindowScale:  0.75,
			Framerate:    60,
			Title:        "Salmon Run",
		},
		Player: PlayerConfig{
			StartX: 200,
			StartY: 400,
			Speed:  300,
			Scale:  0.7,
			Hitbox: HitboxScale{Width: 0.8, Height: 0.4},
			Sprite: SpriteConfig{
				FrameWidth:  267,
				FrameHeight: 78,
				Frames:      12,
				FrameRate:   8,
			},
			Tint: "#ff0000",
		},
		Obstacle: ObstacleConfig{
			SpawnX:         1700,
			MinY:           50,
			RangeY:         700,
			VelocityX:      -450,
			Width:          256,
			Height:         256,
			Scale:          0.3,
			Hitbox:         HitboxScale{Width: 0.6, Height: 0.6},
			IntervalMs:     400,
			FastIntervalMs: 200,
		},
		Goal: GoalConfig{
			X:      1500,
			Y:      400,
			Width:  256,
			Height: 256,
			Scale:  0.8,
		},
		Countdown: CountdownConfig{
			Seconds:       30,
			TickMs:        1000,
			FastThreshold: 15,
		},
		GameOver: GameOverConfig{
			DelayMs: 1000,
		},
		UI: UIConfig{
			ReadoutX:      50,
			ReadoutY:      50,
			ReadoutFormat: "낳기까지: %ds",
			ButtonX:       800,
			ButtonY:       650,
			ButtonWidth:   320,
			ButtonHeight:  80,
			ButtonColor:   "#86dff5",
			Labels: LabelConfig{
				Start:    "낳으러 가기",
				Retry:    "다시 낳기",
				Continue: "쌍둥이 낳기",
			},
		},
		Assets: AssetsConfig{
			TitleImage:    "title_image.png",
			Background:    "background.png",
			PlayerSheet:   "player_sheet.png",
			Obstacle:      "obstacle.png",
			Goal:          "goal.png",
			GameOverImage: "gameover_bg.png",
			ClearImage:    "clear.png",
			MoveSound:     []string{"move.ogg", "move.mp3"},
			DeadSound:     []string{"dead.ogg", "dead.mp3"},
		},
	}
}

// Validate rejects settings the game cannot run with.
func (c *GameConfig) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: display size %dx%d", ErrInvalid, c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Display.Framerate <= 0:
		return fmt.Errorf("%w: framerate %d", ErrInvalid, c.Display.Framerate)
	case c.Player.Speed < 0:
		return fmt.Errorf("%w: player speed %v", ErrInvalid, c.Player.Speed)
	case c.Player.Sprite.Frames <= 0 || c.Player.Sprite.FrameWidth <= 0 || c.Player.Sprite.FrameHeight <= 0:
		return fmt.Errorf("%w: player sprite %+v", ErrInvalid, c.Player.Sprite)
	case c.Obstacle.IntervalMs <= 0 || c.Obstacle.FastIntervalMs <= 0:
		return fmt.Errorf("%w: obstacle intervals %d/%d", ErrInvalid, c.Obstacle.IntervalMs, c.Obstacle.FastIntervalMs)
	case c.Countdown.Seconds <= 0 || c.Countdown.TickMs <= 0:
		return fmt.Errorf("%w: countdown %ds every %dms", ErrInvalid, c.Countdown.Seconds, c.Countdown.TickMs)
	case c.GameOver.DelayMs < 0:
		return fmt.Errorf("%w: game over delay %d", ErrInvalid, c.GameOver.DelayMs)
	case c.Obstacle.RangeY < 0:
		return fmt.Errorf("%w: obstacle rangeY %v", ErrInvalid, c.Obstacle.RangeY)
	case c.Countdown.FastThreshold <= 0 || c.Countdown.FastThreshold >= c.Countdown.Seconds:
		return fmt.Errorf("%w: fast threshold %d outside (0, %d)", ErrInvalid, c.Countdown.FastThreshold, c.Countdown.Seconds)
	}

	// repeating timers fire at most once per tick
	tick := c.Display.TickDuration()
	for _, p := range []struct {
		name string
		d    time.Duration
	}{
		{"obstacle interval", c.Obstacle.Interval()},
		{"obstacle fast interval", c.Obstacle.FastInterval()},
		{"countdown tick", c.Countdown.Tick()},
	} {
		if p.d < tick {
			return fmt.Errorf("%w: %s %s shorter than a %s tick", ErrInvalid, p.name, p.d, tick)
		}
	}
	if _, err := ParseHexColor(c.Player.Tint); err != nil {
		return fmt.Errorf("%w: player tint: %v", ErrInvalid, err)
	}
	if _, err := ParseHexColor(c.UI.ButtonColor); err != nil {
		return fmt.Errorf("%w: button color: %v", ErrInvalid, err)
	}
	return nil
}

func (c ObstacleConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

func (c ObstacleConfig) FastInterval() time.Duration {
	return time.Duration(c.FastIntervalMs) * time.Millisecond
}

func (c CountdownConfig) Tick() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c GameOverConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// TickDuration is the fixed simulation step for the configured framerate.
func (c DisplayConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Framerate)
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
