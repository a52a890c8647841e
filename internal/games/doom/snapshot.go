package doom

import "math"

// Snapshot captures the simulation state for determinism testing.
// Positions are kept as exact float64 values.
type Snapshot struct {
	Tick   uint64
	Scene  string
	Mode   int // 0=Campaign, 1=Survival
	State  string
	Score  int
	Kills  int
	Wave   int
	NextID uint32

	PlayerX      float64
	PlayerY      float64
	PlayerDir    float64
	PlayerHealth float64
	PlayerArmor  float64
	Weapon       string
	Ammo         int

	// Each enemy is 5 values: X, Y, Health, State, PatrolIndex
	EnemyCount int
	EnemyData  []float64

	// Each projectile is 3 values: X, Y, Travelled
	ProjectileCount int
	ProjectileData  []float64

	ItemsActive int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.scene
	p := s.Player()

	enemyData := make([]float64, 0, len(s.enemies)*5)
	for _, e := range s.enemies {
		enemyData = append(enemyData, e.X, e.Y, e.Health, float64(e.State), float64(e.PatrolIndex))
	}

	projectileData := make([]float64, 0, len(s.projectiles)*3)
	for _, pr := range s.projectiles {
		projectileData = append(projectileData, pr.X, pr.Y, pr.Travelled)
	}

	snap := Snapshot{
		Tick:   s.Ticks(),
		Scene:  g.sceneID(),
		Mode:   int(g.mode),
		State:  g.state,
		Score:  g.score,
		Kills:  g.kills + s.Kills(),
		NextID: uint32(s.nextID),

		PlayerX:      p.X,
		PlayerY:      p.Y,
		PlayerDir:    p.Direction,
		PlayerHealth: p.Health,
		PlayerArmor:  p.Armor,

		EnemyCount:      len(s.enemies),
		EnemyData:       enemyData,
		ProjectileCount: len(s.projectiles),
		ProjectileData:  projectileData,
		ItemsActive:     len(s.items),
	}
	if w := p.CurrentWeapon(); w != nil {
		snap.Weapon = w.Type
		snap.Ammo = w.Ammo
	}
	if g.waves != nil {
		snap.Wave = g.waves.Wave
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + hashString(snap.Scene)
	h = h*31 + uint64(snap.Mode) //#nosec G115 -- hash computation
	h = h*31 + hashString(snap.State)
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Wave)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextID)

	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.PlayerDir)
	h = h*31 + math.Float64bits(snap.PlayerHealth)
	h = h*31 + math.Float64bits(snap.PlayerArmor)
	h = h*31 + hashString(snap.Weapon)
	h = h*31 + uint64(snap.Ammo) //#nosec G115 -- hash computation

	h = h*31 + uint64(snap.EnemyCount) //#nosec G115 -- hash computation
	for _, v := range snap.EnemyData {
		h = h*31 + math.Float64bits(v)
	}
	h = h*31 + uint64(snap.ProjectileCount) //#nosec G115 -- hash computation
	for _, v := range snap.ProjectileData {
		h = h*31 + math.Float64bits(v)
	}
	h = h*31 + uint64(snap.ItemsActive) //#nosec G115 -- hash computation

	return h
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
