package config

import (
	_ "embed"
)

//go:embed defaults/doom.yaml
var defaultDoomYAML []byte

// DefaultDoomConfig returns the built-in configuration.
// Speeds are per second; the values match 60 Hz per-frame tuning.
func DefaultDoomConfig() DoomConfig {
	return DoomConfig{
		World: WorldConfig{
			TileSize: 64,
		},
		Player: PlayerConfig{
			Width:            32,
			Height:           32,
			Speed:            300,
			SprintMultiplier: 1.6,
			MaxHealth:        100,
			MaxArmor:         100,
			StartArmor:       0,
			AttackRate:       0.1,
			ReloadTime:       1.0,
			StartWeapons:     []string{"pistol", "shotgun"},
			InventorySlots:   4,
		},
		Enemies: EnemiesConfig{
			Width:           32,
			Height:          32,
			SightRange:      500,
			PatrolTolerance: 5,
			IdleMin:         1,
			IdleMax:         3,
			PatrolRadiusMin: 50,
			PatrolRadiusMax: 150,
			PatrolPointsMin: 2,
			PatrolPointsMax: 5,
			HurtDuration:    0.3,
			DeathDuration:   2.0,
			Knockback:       60,
			DefaultType:     "basic",
			Types: map[string]EnemyStats{
				"basic": {Health: 50, Speed: 90, Damage: 10, AttackRange: 50, AttackRate: 1.0},
				"fast":  {Health: 35, Speed: 135, Damage: 8, AttackRange: 40, AttackRate: 0.7},
				"heavy": {Health: 100, Speed: 63, Damage: 15, AttackRange: 60, AttackRate: 1.3},
			},
		},
		Weapons: WeaponsConfig{
			DefaultType: "pistol",
			Types: map[string]WeaponStats{
				"pistol": {
					Damage: 10, FireRate: 0.5, Range: 500, Ammo: 30, MaxAmmo: 100,
					Pellets: 1, ProjectileSpeed: 900, ReloadAmount: 10,
				},
				"shotgun": {
					Damage: 25, FireRate: 1.0, Range: 300, Ammo: 10, MaxAmmo: 50,
					Pellets: 5, SpreadDeg: 15, ProjectileSpeed: 800, ReloadAmount: 4,
				},
				"rifle": {
					Damage: 15, FireRate: 0.2, Range: 700, Ammo: 50, MaxAmmo: 200,
					Pellets: 1, ProjectileSpeed: 1200, ReloadAmount: 20,
				},
			},
		},
		Items: ItemsConfig{
			Width:        20,
			Height:       20,
			HealthAmount: 25,
			AmmoAmount:   20,
			ArmorAmount:  25,
			WeaponType:   "shotgun",
		},
		Physics: PhysicsConfig{
			Friction:       0.9,
			Gravity:        0,
			GravityEnabled: false,
			StopThreshold:  0.1,
			MaxSpeed:       500,
		},
		Waves: WavesConfig{
			BaseCount:   5,
			Increment:   2,
			BreakTime:   15,
			SpawnMargin: 256,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				WaveBonus:       6,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDoomYAML
}

// Normalize fills zero or missing values from the built-in defaults and
// makes sure the fallback enemy and weapon types exist in their tables.
// A partial user config therefore never leaves a system without data.
func (c *DoomConfig) Normalize() {
	d := DefaultDoomConfig()

	orF(&c.World.TileSize, d.World.TileSize)

	orF(&c.Player.Width, d.Player.Width)
	orF(&c.Player.Height, d.Player.Height)
	orF(&c.Player.Speed, d.Player.Speed)
	orF(&c.Player.SprintMultiplier, d.Player.SprintMultiplier)
	orF(&c.Player.MaxHealth, d.Player.MaxHealth)
	orF(&c.Player.MaxArmor, d.Player.MaxArmor)
	orF(&c.Player.AttackRate, d.Player.AttackRate)
	orF(&c.Player.ReloadTime, d.Player.ReloadTime)
	orI(&c.Player.InventorySlots, d.Player.InventorySlots)
	if len(c.Player.StartWeapons) == 0 {
		c.Player.StartWeapons = d.Player.StartWeapons
	}

	e := &c.Enemies
	orF(&e.Width, d.Enemies.Width)
	orF(&e.Height, d.Enemies.Height)
	orF(&e.SightRange, d.Enemies.SightRange)
	orF(&e.PatrolTolerance, d.Enemies.PatrolTolerance)
	orF(&e.IdleMin, d.Enemies.IdleMin)
	orF(&e.IdleMax, d.Enemies.IdleMax)
	orF(&e.PatrolRadiusMin, d.Enemies.PatrolRadiusMin)
	orF(&e.PatrolRadiusMax, d.Enemies.PatrolRadiusMax)
	orI(&e.PatrolPointsMin, d.Enemies.PatrolPointsMin)
	orI(&e.PatrolPointsMax, d.Enemies.PatrolPointsMax)
	orF(&e.HurtDuration, d.Enemies.HurtDuration)
	orF(&e.DeathDuration, d.Enemies.DeathDuration)
	orF(&e.Knockback, d.Enemies.Knockback)
	if e.IdleMax < e.IdleMin {
		e.IdleMax = e.IdleMin
	}
	if e.PatrolRadiusMax < e.PatrolRadiusMin {
		e.PatrolRadiusMax = e.PatrolRadiusMin
	}
	if e.PatrolPointsMax < e.PatrolPointsMin {
		e.PatrolPointsMax = e.PatrolPointsMin
	}
	if e.Types == nil {
		e.Types = make(map[string]EnemyStats)
	}
	if e.DefaultType == "" {
		e.DefaultType = d.Enemies.DefaultType
	}
	if _, ok := e.Types[e.DefaultType]; !ok {
		if stats, builtin := d.Enemies.Types[e.DefaultType]; builtin {
			e.Types[e.DefaultType] = stats
		} else {
			e.DefaultType = d.Enemies.DefaultType
			e.Types[e.DefaultType] = d.Enemies.Types[e.DefaultType]
		}
	}

	w := &c.Weapons
	if w.Types == nil {
		w.Types = make(map[string]WeaponStats)
	}
	if w.DefaultType == "" {
		w.DefaultType = d.Weapons.DefaultType
	}
	if _, ok := w.Types[w.DefaultType]; !ok {
		if stats, builtin := d.Weapons.Types[w.DefaultType]; builtin {
			w.Types[w.DefaultType] = stats
		} else {
			w.DefaultType = d.Weapons.DefaultType
			w.Types[w.DefaultType] = d.Weapons.Types[w.DefaultType]
		}
	}
	for name, stats := range w.Types {
		if stats.Pellets <= 0 {
			stats.Pellets = 1
		}
		if stats.ProjectileSpeed <= 0 {
			stats.ProjectileSpeed = d.Weapons.Types[d.Weapons.DefaultType].ProjectileSpeed
		}
		if stats.MaxAmmo < stats.Ammo {
			stats.MaxAmmo = stats.Ammo
		}
		w.Types[name] = stats
	}

	orF(&c.Items.Width, d.Items.Width)
	orF(&c.Items.Height, d.Items.Height)
	orF(&c.Items.HealthAmount, d.Items.HealthAmount)
	orI(&c.Items.AmmoAmount, d.Items.AmmoAmount)
	orF(&c.Items.ArmorAmount, d.Items.ArmorAmount)
	if c.Items.WeaponType == "" {
		c.Items.WeaponType = d.Items.WeaponType
	}

	// Friction and gravity may legitimately be zero.
	orF(&c.Physics.StopThreshold, d.Physics.StopThreshold)
	orF(&c.Physics.MaxSpeed, d.Physics.MaxSpeed)

	orI(&c.Waves.BaseCount, d.Waves.BaseCount)
	orF(&c.Waves.BreakTime, d.Waves.BreakTime)
	orF(&c.Waves.SpawnMargin, d.Waves.SpawnMargin)
	if c.Waves.Increment < 0 {
		c.Waves.Increment = 0
	}
}

func orF(v *float64, def float64) {
	if *v <= 0 {
		*v = def
	}
}

func orI(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
