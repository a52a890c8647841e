package entity

import "github.com/vovakirdan/tui-doom/internal/config"

// Stats used when neither the requested type nor the fallback is in the table.
var (
	baseEnemy  = config.EnemyStats{Health: 50, Speed: 90, Damage: 10, AttackRange: 50, AttackRate: 1.0}
	baseWeapon = config.WeaponStats{
		Damage: 10, FireRate: 0.5, Range: 500, Ammo: 30, MaxAmmo: 100,
		Pellets: 1, ProjectileSpeed: 900, ReloadAmount: 10,
	}
)

// Classic monster names map onto the three base rows.
var enemyAliases = map[string]string{
	"zombie": "basic",
	"imp":    "fast",
	"demon":  "heavy",
}

// ResolveEnemyType returns the table row name for name, following aliases.
// It reports false when neither name nor its alias target is in the table.
func ResolveEnemyType(table map[string]config.EnemyStats, name string) (string, bool) {
	if _, ok := table[name]; ok {
		return name, true
	}
	if base, ok := enemyAliases[name]; ok {
		if _, ok := table[base]; ok {
			return base, true
		}
	}
	return "", false
}

// LookupEnemy returns the stat row for name, or the fallback row when name is
// unknown. The returned name is the row actually used.
func LookupEnemy(table map[string]config.EnemyStats, name, fallback string) (string, config.EnemyStats) {
	if row, ok := ResolveEnemyType(table, name); ok {
		return row, table[row]
	}
	if s, ok := table[fallback]; ok {
		return fallback, s
	}
	return fallback, baseEnemy
}

// LookupWeapon returns the stat row for name, or the fallback row when name
// is unknown.
func LookupWeapon(table map[string]config.WeaponStats, name, fallback string) (string, config.WeaponStats) {
	if s, ok := table[name]; ok {
		return name, s
	}
	if s, ok := table[fallback]; ok {
		return fallback, s
	}
	return fallback, baseWeapon
}
