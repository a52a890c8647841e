package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Save slots are numbered 1..MaxSlots.
const MaxSlots = 5

var (
	// ErrInvalidSlot is returned for slot numbers outside 1..MaxSlots.
	ErrInvalidSlot = errors.New("storage: invalid save slot")
	// ErrNoSave is returned when a slot is empty.
	ErrNoSave = errors.New("storage: no save in slot")
)

// PlayerRecord is the persisted part of the player.
type PlayerRecord struct {
	X             float64
	Y             float64
	Health        float64
	Armor         float64
	CurrentWeapon string
}

// WeaponRecord is one owned weapon with its ammo.
type WeaponRecord struct {
	Type string
	Ammo int
}

// SaveRecord is one saved game. Weapons keep inventory order.
type SaveRecord struct {
	Slot      int
	SaveID    string
	Scene     string
	Score     int
	Player    PlayerRecord
	Weapons   []WeaponRecord
	CreatedAt time.Time
}

func validSlot(slot int) error {
	if slot < 1 || slot > MaxSlots {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, slot)
	}
	return nil
}

// SaveGame writes rec into its slot, replacing any previous save there.
// A fresh SaveID is assigned and written back into rec, as is CreatedAt when
// it is zero.
func (s *Store) SaveGame(rec *SaveRecord) error {
	if err := validSlot(rec.Slot); err != nil {
		return err
	}
	rec.SaveID = uuid.NewString()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO saves (slot, save_id, scene, score, player_x, player_y, health, armor, current_weapon, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			save_id = excluded.save_id,
			scene = excluded.scene,
			score = excluded.score,
			player_x = excluded.player_x,
			player_y = excluded.player_y,
			health = excluded.health,
			armor = excluded.armor,
			current_weapon = excluded.current_weapon,
			created_at = excluded.created_at`,
		rec.Slot, rec.SaveID, rec.Scene, rec.Score,
		rec.Player.X, rec.Player.Y, rec.Player.Health, rec.Player.Armor, rec.Player.CurrentWeapon,
		rec.CreatedAt.Format(sqliteTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM save_weapons WHERE slot = ?", rec.Slot); err != nil {
		return fmt.Errorf("storage: cannot clear weapons: %w", err)
	}
	for i, w := range rec.Weapons {
		_, err := tx.Exec(
			"INSERT INTO save_weapons (slot, position, weapon_type, ammo) VALUES (?, ?, ?, ?)",
			rec.Slot, i, w.Type, w.Ammo,
		)
		if err != nil {
			return fmt.Errorf("storage: cannot save weapon %s: %w", w.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit save: %w", err)
	}
	return nil
}

// LoadGame reads the save in slot.
func (s *Store) LoadGame(slot int) (*SaveRecord, error) {
	if err := validSlot(slot); err != nil {
		return nil, err
	}

	rec, err := scanSave(s.db.QueryRow(
		`SELECT slot, save_id, scene, score, player_x, player_y, health, armor, current_weapon, created_at
		 FROM saves WHERE slot = ?`,
		slot,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNoSave, slot)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game: %w", err)
	}

	if rec.Weapons, err = s.saveWeapons(slot); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListSaves returns every occupied slot in slot order.
func (s *Store) ListSaves() ([]SaveRecord, error) {
	rows, err := s.db.Query(
		`SELECT slot, save_id, scene, score, player_x, player_y, health, armor, current_weapon, created_at
		 FROM saves ORDER BY slot`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveRecord
	for rows.Next() {
		rec, err := scanSave(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan save: %w", err)
		}
		saves = append(saves, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	rows.Close()

	for i := range saves {
		if saves[i].Weapons, err = s.saveWeapons(saves[i].Slot); err != nil {
			return nil, err
		}
	}
	return saves, nil
}

// DeleteSave empties slot. Deleting an empty slot is not an error.
func (s *Store) DeleteSave(slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	if _, err := tx.Exec("DELETE FROM save_weapons WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete weapons: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

func (s *Store) saveWeapons(slot int) ([]WeaponRecord, error) {
	rows, err := s.db.Query(
		"SELECT weapon_type, ammo FROM save_weapons WHERE slot = ? ORDER BY position",
		slot,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query weapons: %w", err)
	}
	defer rows.Close()

	var weapons []WeaponRecord
	for rows.Next() {
		var w WeaponRecord
		if err := rows.Scan(&w.Type, &w.Ammo); err != nil {
			return nil, fmt.Errorf("storage: cannot scan weapon: %w", err)
		}
		weapons = append(weapons, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return weapons, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSave(row rowScanner) (*SaveRecord, error) {
	var rec SaveRecord
	var createdAt any
	err := row.Scan(
		&rec.Slot,
		&rec.SaveID,
		&rec.Scene,
		&rec.Score,
		&rec.Player.X,
		&rec.Player.Y,
		&rec.Player.Health,
		&rec.Player.Armor,
		&rec.Player.CurrentWeapon,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = parseTime(createdAt)
	return &rec, nil
}
