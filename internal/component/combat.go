package component

// Combat is attached to every armed tower (see SyncCombat).
type Combat struct {
	FireCooldown float64 // seconds until the tower may fire again; 0 = ready
}
