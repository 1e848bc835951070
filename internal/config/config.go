// internal/config/config.go
package config

const (
	MaxDeltaTime  = 0.06       // upper bound for one simulation step, seconds
	FixedTimeStep = 1.0 / 60.0 // step used by headless drivers

	WaypointThreshold   = 0.05 // world units; a mover this close to a waypoint has reached it
	ProjectileHitRadius = 0.15 // world units
	MinEnemiesPerWave   = 3
	MaxEnemiesPerWave   = 25
	BaseEnemiesPerWave  = 3

	DefaultRepairTime      = 3.0 // seconds
	DefaultRepairCostPerHP = 0.5 // gold per missing HP
	DefaultTowerHealth     = 100.0
	DefaultProjectileSpeed = 8.0 // world units per second

	ScreenWidth  = 960
	ScreenHeight = 720
)
