package config

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Player    PlayerConfig    `yaml:"player"`
	Obstacle  ObstacleConfig  `yaml:"obstacle"`
	Goal      GoalConfig      `yaml:"goal"`
	Countdown CountdownConfig `yaml:"countdown"`
	GameOver  GameOverConfig  `yaml:"gameOver"`
	UI        UIConfig        `yaml:"ui"`
	Assets    AssetsConfig    `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int     `yaml:"screenWidth"`
	ScreenHeight int     `yaml:"screenHeight"`
	WindowScale  float64 `yaml:"windowScale"` // Window size relative to the logical canvas
	Framerate    int     `yaml:"framerate"`
	Title        string  `yaml:"title"`
}

type PlayerConfig struct {
	StartX float64      `yaml:"startX"`
	StartY float64      `yaml:"startY"`
	Speed  float64      `yaml:"speed"` // Units per second on each axis
	Scale  float64      `yaml:"scale"`
	Hitbox HitboxScale  `yaml:"hitbox"`
	Sprite SpriteConfig `yaml:"sprite"`
	Tint   string       `yaml:"failTint"` // Hex color applied on collision
}

// HitboxScale sizes a hitbox relative to the unscaled sprite frame
type HitboxScale struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SpriteConfig struct {
	FrameWidth  int     `yaml:"frameWidth"`
	FrameHeight int     `yaml:"frameHeight"`
	Frames      int     `yaml:"frames"`
	FrameRate   float64 `yaml:"frameRate"`
}

type ObstacleConfig struct {
	SpawnX         float64     `yaml:"spawnX"`
	MinY           float64     `yaml:"minY"`
	RangeY         float64     `yaml:"rangeY"`
	VelocityX      float64     `yaml:"velocityX"`
	Width          int         `yaml:"width"`  // Source image width
	Height         int         `yaml:"height"` // Source image height
	Scale          float64     `yaml:"scale"`
	Hitbox         HitboxScale `yaml:"hitbox"`
	IntervalMs     int         `yaml:"intervalMs"`
	FastIntervalMs int         `yaml:"fastIntervalMs"`
}

type GoalConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
}

type CountdownConfig struct {
	Seconds       int `yaml:"seconds"`
	TickMs        int `yaml:"tickMs"`
	FastThreshold int `yaml:"fastThreshold"` // Remaining seconds at which spawning speeds up
}

type GameOverConfig struct {
	DelayMs int `yaml:"delayMs"`
}

type UIConfig struct {
	ReadoutX      float64     `yaml:"readoutX"`
	ReadoutY      float64     `yaml:"readoutY"`
	ReadoutFormat string      `yaml:"readoutFormat"`
	ButtonX       float64     `yaml:"buttonX"`
	ButtonY       float64     `yaml:"buttonY"`
	ButtonWidth   int         `yaml:"buttonWidth"`
	ButtonHeight  int         `yaml:"buttonHeight"`
	ButtonColor   string      `yaml:"buttonColor"`
	Labels        LabelConfig `yaml:"labels"`
}

type LabelConfig struct {
	Start    string `yaml:"start"`
	Retry    string `yaml:"retry"`
	Continue string `yaml:"continue"`
}

type AssetsConfig struct {
	TitleImage    string   `yaml:"titleImage"`
	Background    string   `yaml:"background"`
	PlayerSheet   string   `yaml:"playerSheet"`
	Obstacle      string   `yaml:"obstacle"`
	Goal          string   `yaml:"goal"`
	GameOverImage string   `yaml:"gameOverImage"`
	ClearImage    string   `yaml:"clearImage"`
	MoveSound     []string `yaml:"moveSound"` // Tried in order
	DeadSound     []string `yaml:"deadSound"`
}
