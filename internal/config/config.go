// Package config provides YAML-based game configuration loading and
// difficulty management for the doom simulation.
//
// All tunables that used to be scattered constants live here. Systems receive
// the relevant section at construction and never read package globals.
package config

// DoomConfig contains all configuration for the game.
type DoomConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Weapons    WeaponsConfig    `yaml:"weapons"`
	Items      ItemsConfig      `yaml:"items"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Waves      WavesConfig      `yaml:"waves"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines map-wide parameters.
type WorldConfig struct {
	TileSize float64 `yaml:"tile_size"` // World units per tile edge
}

// PlayerConfig defines player parameters. Speeds are in world units per second.
type PlayerConfig struct {
	Width            float64  `yaml:"width"`
	Height           float64  `yaml:"height"`
	Speed            float64  `yaml:"speed"`
	SprintMultiplier float64  `yaml:"sprint_multiplier"`
	MaxHealth        float64  `yaml:"max_health"`
	MaxArmor         float64  `yaml:"max_armor"`
	StartArmor       float64  `yaml:"start_armor"`
	AttackRate       float64  `yaml:"attack_rate"` // Seconds between trigger pulls
	ReloadTime       float64  `yaml:"reload_time"` // Seconds between reloads
	StartWeapons     []string `yaml:"start_weapons"`
	InventorySlots   int      `yaml:"inventory_slots"`
}

// EnemiesConfig defines shared AI parameters plus the per-type stat table.
type EnemiesConfig struct {
	Width           float64               `yaml:"width"`
	Height          float64               `yaml:"height"`
	SightRange      float64               `yaml:"sight_range"`
	PatrolTolerance float64               `yaml:"patrol_tolerance"`
	IdleMin         float64               `yaml:"idle_min"`
	IdleMax         float64               `yaml:"idle_max"`
	PatrolRadiusMin float64               `yaml:"patrol_radius_min"`
	PatrolRadiusMax float64               `yaml:"patrol_radius_max"`
	PatrolPointsMin int                   `yaml:"patrol_points_min"`
	PatrolPointsMax int                   `yaml:"patrol_points_max"`
	HurtDuration    float64               `yaml:"hurt_duration"`
	DeathDuration   float64               `yaml:"death_duration"`
	Knockback       float64               `yaml:"knockback"` // Impulse applied on projectile hit
	DefaultType     string                `yaml:"default_type"`
	Types           map[string]EnemyStats `yaml:"types"`
}

// EnemyStats is one row of the enemy stat table.
type EnemyStats struct {
	Health      float64 `yaml:"health"`
	Speed       float64 `yaml:"speed"`
	Damage      float64 `yaml:"damage"`
	AttackRange float64 `yaml:"attack_range"`
	AttackRate  float64 `yaml:"attack_rate"`
}

// WeaponsConfig holds the weapon stat table.
type WeaponsConfig struct {
	DefaultType string                 `yaml:"default_type"`
	Types       map[string]WeaponStats `yaml:"types"`
}

// WeaponStats is one row of the weapon stat table.
type WeaponStats struct {
	Damage          float64 `yaml:"damage"`
	FireRate        float64 `yaml:"fire_rate"` // Seconds of cooldown after a shot
	Range           float64 `yaml:"range"`
	Ammo            int     `yaml:"ammo"`
	MaxAmmo         int     `yaml:"max_ammo"`
	Pellets         int     `yaml:"pellets"`
	SpreadDeg       float64 `yaml:"spread_deg"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ReloadAmount    int     `yaml:"reload_amount"`
}

// ItemsConfig defines pickup sizes and effect magnitudes.
type ItemsConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	HealthAmount float64 `yaml:"health_amount"`
	AmmoAmount   int     `yaml:"ammo_amount"`
	ArmorAmount  float64 `yaml:"armor_amount"`
	WeaponType   string  `yaml:"weapon_type"` // Granted by weapon pickups without an explicit type
}

// PhysicsConfig defines integrator parameters.
type PhysicsConfig struct {
	Friction       float64 `yaml:"friction"`
	Gravity        float64 `yaml:"gravity"`
	GravityEnabled bool    `yaml:"gravity_enabled"`
	StopThreshold  float64 `yaml:"stop_threshold"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// WavesConfig defines survival mode wave pacing.
type WavesConfig struct {
	BaseCount   int     `yaml:"base_count"`
	Increment   int     `yaml:"increment"`
	BreakTime   float64 `yaml:"break_time"`   // Seconds between waves
	SpawnMargin float64 `yaml:"spawn_margin"` // Minimum spawn distance from the player
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
	WaveBonus       int     `yaml:"wave_bonus"`       // Extra enemies per wave at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy      DifficultyPreset = "easy"
	DifficultyNormal    DifficultyPreset = "normal"
	DifficultyHard      DifficultyPreset = "hard"
	DifficultyNightmare DifficultyPreset = "nightmare"
	DifficultyFixed     DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyNightmare, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// Multipliers scale the enemy stat table for a preset.
type Multipliers struct {
	EnemyHealth float64
	EnemyDamage float64
	EnemySpeed  float64
}

var presetMultipliers = map[DifficultyPreset]Multipliers{
	DifficultyEasy:      {EnemyHealth: 0.75, EnemyDamage: 0.75, EnemySpeed: 0.75},
	DifficultyNormal:    {EnemyHealth: 1.0, EnemyDamage: 1.0, EnemySpeed: 1.0},
	DifficultyHard:      {EnemyHealth: 1.25, EnemyDamage: 1.25, EnemySpeed: 1.25},
	DifficultyNightmare: {EnemyHealth: 1.5, EnemyDamage: 1.5, EnemySpeed: 1.5},
}

// MultipliersFor returns the stat multipliers of a preset.
// Unknown and fixed presets play at normal strength.
func MultipliersFor(preset DifficultyPreset) Multipliers {
	if m, ok := presetMultipliers[preset]; ok {
		return m
	}
	return presetMultipliers[DifficultyNormal]
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.6
	case DifficultyNightmare:
		return 0.9
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
